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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de pedidos de compra sobre PostgreSQL
// (usable con pool o tx). El par (year, seq) lleva índice único: ahí muere
// la colisión de numeración anual.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `
	number, seq, year, supplier_code, item_code, description, quantity,
	unit, note, created_by, created_at`

// Create persiste un pedido; número duplicado aflora como código duplicado.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.Number, o.Seq, o.Year, o.SupplierCode, o.ItemCode, o.Description,
		o.Quantity, o.Unit, o.Note, o.CreatedBy, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// Get obtiene un pedido por año y secuencia; (nil, nil) si no existe.
func (r *PurchaseOrderRepo) Get(ctx context.Context, year int, seq int64) (*entity.PurchaseOrder, error) {
	query := `SELECT` + orderColumns + ` FROM purchase_orders WHERE year = $1 AND seq = $2`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, year, seq).Scan(
		&o.Number, &o.Seq, &o.Year, &o.SupplierCode, &o.ItemCode,
		&o.Description, &o.Quantity, &o.Unit, &o.Note, &o.CreatedBy, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// ListByYear lista los pedidos de un año, más recientes primero.
func (r *PurchaseOrderRepo) ListByYear(ctx context.Context, year int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT` + orderColumns + ` FROM purchase_orders WHERE year = $1 ORDER BY seq DESC`
	rows, err := r.q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.Number, &o.Seq, &o.Year, &o.SupplierCode,
			&o.ItemCode, &o.Description, &o.Quantity, &o.Unit, &o.Note,
			&o.CreatedBy, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
