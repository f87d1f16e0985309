package repository

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// PartyRepository puerto de persistencia del registro de terceros
// (proveedores y clientes). GetByCode devuelve (nil, nil) si no existe.
type PartyRepository interface {
	Create(ctx context.Context, p *entity.Party) error
	GetByCode(ctx context.Context, code string) (*entity.Party, error)
	List(ctx context.Context, partyType string) ([]*entity.Party, error)
	Update(ctx context.Context, p *entity.Party) error
}
