package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implementación del registro de terceros sobre PostgreSQL.
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

const partyColumns = `code, type, name, vat_number, email, phone, note, created_at, updated_at`

// Create persiste un tercero; código duplicado aflora como tal.
func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.Code, p.Type, p.Name, p.VATNumber, p.Email, p.Phone, p.Note,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create party: %w", err)
	}
	return nil
}

// GetByCode obtiene un tercero por código; (nil, nil) si no existe.
func (r *PartyRepo) GetByCode(ctx context.Context, code string) (*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE code = $1`
	var p entity.Party
	err := r.q.QueryRow(ctx, query, code).Scan(
		&p.Code, &p.Type, &p.Name, &p.VATNumber, &p.Email, &p.Phone, &p.Note,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return &p, nil
}

// List devuelve los terceros de un tipo ordenados por código.
func (r *PartyRepo) List(ctx context.Context, partyType string) ([]*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE type = $1 ORDER BY code`
	rows, err := r.q.Query(ctx, query, partyType)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var out []*entity.Party
	for rows.Next() {
		var p entity.Party
		if err := rows.Scan(&p.Code, &p.Type, &p.Name, &p.VATNumber, &p.Email,
			&p.Phone, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza los datos descriptivos; el código es inmutable.
func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	query := `
		UPDATE parties SET name = $2, vat_number = $3, email = $4, phone = $5,
			note = $6, updated_at = $7
		WHERE code = $1`
	tag, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.VATNumber, p.Email, p.Phone, p.Note, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
