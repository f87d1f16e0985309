package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// MovementRepository es el puerto de persistencia del libro de movimientos.
// Sólo inserta y consulta: las entradas nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// ListByItem devuelve el historial de una unidad, más recientes primero.
	// Cada llamada es una consulta nueva, no un cursor vivo.
	ListByItem(ctx context.Context, itemCode string) ([]*entity.Movement, error)
	ListRecent(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
