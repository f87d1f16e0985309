package repository

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// ChangeSubscriber es el canal push de invalidación de la fachada: entrega
// avisos "algo cambió" por categoría, at-least-once y sin garantía de payload
// (puede haber avisos duplicados o atrasados). El suscriptor debe tratar cada
// aviso como "vuelve a consultar", nunca como un delta a aplicar. fn se
// invoca hasta que ctx termina.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, category entity.Category, fn func()) error
}
