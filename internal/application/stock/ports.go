package stock

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura de stock y la
// entrada del libro de movimientos se confirman o revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		codes repository.CodeRepository,
	) error) error
}
