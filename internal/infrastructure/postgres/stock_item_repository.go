package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de la fachada de stock sobre PostgreSQL
// (usable con pool o tx). La etapa es una columna con variante etiquetada:
// el movimiento entre etapas es un UPDATE condicionado, atómico por fila.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `
	code, category, description, quantity, unit, available, stage,
	threshold, supplier_code, client_code, job_ref, format, yield,
	ordered_qty, supplier_confirmed, delivery_date, ddt, location,
	created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		it        entity.StockItem
		stage     *string
		threshold decimal.NullDecimal
		yield     decimal.NullDecimal
	)
	err := row.Scan(
		&it.Code, &it.Category, &it.Description, &it.QuantityOnHand, &it.Unit,
		&it.Available, &stage, &threshold, &it.SupplierCode, &it.ClientCode,
		&it.JobRef, &it.Format, &yield, &it.OrderedQty, &it.SupplierConfirmed,
		&it.DeliveryDate, &it.DDT, &it.Location, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if stage != nil {
		it.Stage = entity.Stage(*stage)
	}
	if threshold.Valid {
		it.Threshold = &threshold.Decimal
	}
	if yield.Valid {
		it.Yield = &yield.Decimal
	}
	return &it, nil
}

func nullStage(s entity.Stage) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

func nullDec(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// GetByCode obtiene una unidad por código; (nil, nil) si no existe.
func (r *StockItemRepo) GetByCode(ctx context.Context, code string) (*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + ` FROM stock_items WHERE code = $1`
	it, err := scanStockItem(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene la unidad y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, code string) (*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + ` FROM stock_items WHERE code = $1 FOR UPDATE`
	it, err := scanStockItem(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return it, nil
}

// List devuelve las unidades de una categoría ordenadas por código.
func (r *StockItemRepo) List(ctx context.Context, category entity.Category) ([]*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + ` FROM stock_items WHERE category = $1 ORDER BY code`
	return r.list(ctx, query, string(category))
}

// ListByStage devuelve las unidades de una categoría en una etapa.
func (r *StockItemRepo) ListByStage(ctx context.Context, category entity.Category, stage entity.Stage) ([]*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + ` FROM stock_items WHERE category = $1 AND stage = $2 ORDER BY code`
	return r.list(ctx, query, string(category), string(stage))
}

func (r *StockItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Insert persiste una unidad nueva. Una violación del índice único de código
// se traduce a código duplicado (colisión de secuencia).
func (r *StockItemRepo) Insert(ctx context.Context, it *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		it.Code, string(it.Category), it.Description, it.QuantityOnHand, it.Unit,
		it.Available, nullStage(it.Stage), nullDec(it.Threshold), it.SupplierCode,
		it.ClientCode, it.JobRef, it.Format, nullDec(it.Yield), it.OrderedQty,
		it.SupplierConfirmed, it.DeliveryDate, it.DDT, it.Location,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// Update actualiza cantidad, disponibilidad y campos descriptivos. La etapa
// no se toca aquí: los movimientos entre etapas pasan por UpdateStage.
func (r *StockItemRepo) Update(ctx context.Context, it *entity.StockItem) error {
	query := `
		UPDATE stock_items SET
			description = $2, quantity = $3, unit = $4, available = $5,
			threshold = $6, supplier_code = $7, client_code = $8, job_ref = $9,
			format = $10, yield = $11, ordered_qty = $12, supplier_confirmed = $13,
			delivery_date = $14, ddt = $15, location = $16, updated_at = $17
		WHERE code = $1`
	tag, err := r.q.Exec(ctx, query,
		it.Code, it.Description, it.QuantityOnHand, it.Unit, it.Available,
		nullDec(it.Threshold), it.SupplierCode, it.ClientCode, it.JobRef,
		it.Format, nullDec(it.Yield), it.OrderedQty, it.SupplierConfirmed,
		it.DeliveryDate, it.DDT, it.Location, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStage mueve la unidad entre etapas en una sola llamada atómica.
// El WHERE condicionado por la etapa de origen falla si otra sesión la
// movió antes.
func (r *StockItemRepo) UpdateStage(ctx context.Context, code string, from, to entity.Stage) error {
	query := `UPDATE stock_items SET stage = $3, updated_at = now() WHERE code = $1 AND stage = $2`
	tag, err := r.q.Exec(ctx, query, code, string(from), string(to))
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidStage
	}
	return nil
}

// Delete elimina la unidad. El libro de movimientos referencia por código y
// no se borra con ella.
func (r *StockItemRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
