package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// Construcción y validación de entradas del libro de movimientos. La entrada
// se crea exactamente una vez por evento y no se muta después.

// Entry datos para construir una entrada del libro.
type Entry struct {
	ItemCode     string
	Kind         string
	Delta        decimal.Decimal
	Actor        string
	Note         string
	LinkedJob    string
	LinkedClient string
}

// ValidateSign comprueba que el signo del delta corresponde al tipo:
// LOAD => >= 0, UNLOAD => <= 0, tipos sin cantidad => exactamente 0.
func ValidateSign(kind string, delta decimal.Decimal) error {
	switch kind {
	case entity.MovementKindLoad:
		if delta.IsNegative() {
			return domain.ErrInvalidQuantity
		}
	case entity.MovementKindUnload:
		if delta.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	case entity.MovementKindCreated, entity.MovementKindModified, entity.MovementKindStatusChanged:
		if !delta.IsZero() {
			return domain.ErrInvalidQuantity
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// New construye una entrada validada del libro, fechada en occurredAt.
// El ID lo asigna el adaptador de persistencia al insertar.
func New(e Entry, occurredAt time.Time) (*entity.Movement, error) {
	if e.ItemCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ValidateSign(e.Kind, e.Delta); err != nil {
		return nil, err
	}
	return &entity.Movement{
		ItemCode:      e.ItemCode,
		Kind:          e.Kind,
		QuantityDelta: e.Delta,
		Actor:         e.Actor,
		OccurredAt:    occurredAt,
		Note:          e.Note,
		LinkedJob:     e.LinkedJob,
		LinkedClient:  e.LinkedClient,
		CreatedAt:     occurredAt,
	}, nil
}
