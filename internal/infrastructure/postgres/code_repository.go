package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.CodeRepository = (*CodeRepo)(nil)

// CodeRepo escanea los códigos persistidos para sembrar el secuenciador.
// Los códigos PREFIX-NNN viven en stock_items y en parties, así que el
// máximo se busca en ambas tablas.
type CodeRepo struct {
	q Querier
}

// NewCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCodeRepository(q Querier) *CodeRepo {
	return &CodeRepo{q: q}
}

// MaxCodeNumber devuelve el mayor sufijo numérico de los códigos del
// prefijo (0 si no hay ninguno).
func (r *CodeRepo) MaxCodeNumber(ctx context.Context, prefix string) (int64, error) {
	query := `
		SELECT COALESCE(MAX(n), 0) FROM (
			SELECT (split_part(code, '-', 2))::bigint AS n
			FROM stock_items WHERE code LIKE $1 || '-%'
			UNION ALL
			SELECT (split_part(code, '-', 2))::bigint
			FROM parties WHERE code LIKE $1 || '-%'
		) t`
	var max int64
	if err := r.q.QueryRow(ctx, query, prefix).Scan(&max); err != nil {
		return 0, fmt.Errorf("max code number %s: %w", prefix, err)
	}
	return max, nil
}

// MaxOrderNumber devuelve la mayor secuencia de pedido del año (0 si no hay).
func (r *CodeRepo) MaxOrderNumber(ctx context.Context, year int) (int64, error) {
	query := `SELECT COALESCE(MAX(seq), 0) FROM purchase_orders WHERE year = $1`
	var max int64
	if err := r.q.QueryRow(ctx, query, year).Scan(&max); err != nil {
		return 0, fmt.Errorf("max order number %d: %w", year, err)
	}
	return max, nil
}
