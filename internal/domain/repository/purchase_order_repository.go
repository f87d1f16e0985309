package repository

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia de pedidos de compra.
// Get devuelve (nil, nil) si el pedido no existe.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	Get(ctx context.Context, year int, seq int64) (*entity.PurchaseOrder, error)
	ListByYear(ctx context.Context, year int) ([]*entity.PurchaseOrder, error)
}
