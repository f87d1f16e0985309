package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Sólo INSERT y SELECT: el libro es append-only y
// ninguna operación del sistema muta ni borra entradas.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, item_code, kind, quantity_delta, actor, occurred_at, note,
	linked_job, linked_client, created_at`

// Create persiste una entrada del libro, asignando ID si no lo trae.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemCode, m.Kind, m.QuantityDelta, m.Actor, m.OccurredAt,
		m.Note, m.LinkedJob, m.LinkedClient, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByItem devuelve el historial de una unidad, más recientes primero.
// Consulta nueva en cada llamada.
func (r *MovementRepo) ListByItem(ctx context.Context, itemCode string) ([]*entity.Movement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM movements WHERE item_code = $1
		ORDER BY occurred_at DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, itemCode)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListRecent lista movimientos en un rango de fechas, más recientes primero.
func (r *MovementRepo) ListRecent(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemCode, &m.Kind, &m.QuantityDelta,
			&m.Actor, &m.OccurredAt, &m.Note, &m.LinkedJob, &m.LinkedClient,
			&m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
