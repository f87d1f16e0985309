package repository

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// StockItemRepository es la fachada de persistencia de unidades de stock.
// El motor de ciclo de vida depende sólo de este contrato, nunca del
// almacén subyacente. GetByCode devuelve (nil, nil) si el código no existe.
type StockItemRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); usar
	// dentro de una transacción para evitar lecturas concurrentes perdidas.
	GetForUpdate(ctx context.Context, code string) (*entity.StockItem, error)
	List(ctx context.Context, category entity.Category) ([]*entity.StockItem, error)
	ListByStage(ctx context.Context, category entity.Category, stage entity.Stage) ([]*entity.StockItem, error)
	Insert(ctx context.Context, item *entity.StockItem) error
	Update(ctx context.Context, item *entity.StockItem) error
	// UpdateStage mueve la unidad de una etapa a otra en una sola llamada
	// atómica; falla si la unidad ya no está en la etapa de origen.
	UpdateStage(ctx context.Context, code string, from, to entity.Stage) error
	Delete(ctx context.Context, code string) error
}
