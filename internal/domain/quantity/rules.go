package quantity

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
)

// Reglas de cantidad: funciones puras, sin efectos, testeables por separado.

// ApplyDelta aplica un delta firmado a la cantidad actual. Si el resultado
// quedaría negativo devuelve InsufficientStockError con el faltante; nunca
// devuelve una cantidad negativa.
func ApplyDelta(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, &domain.InsufficientStockError{
			Available: current,
			Requested: delta.Neg(),
		}
	}
	return next, nil
}

// YieldDivide calcula floor(raw / ratio): hojas consumidas entre hojas por
// corte = unidades reales extraídas. El resto fraccionario siempre se trunca,
// nunca se redondea. Rechaza ratio <= 0 y resultados truncados menores que 1.
func YieldDivide(raw, ratio decimal.Decimal) (decimal.Decimal, error) {
	if ratio.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	units := raw.Div(ratio).Floor()
	if units.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return units, nil
}

// IsBelowThreshold indica si la cantidad está en o por debajo del mínimo de
// reposición. Sin mínimo configurado (nil) nunca avisa; la igualdad sí avisa
// (límite inclusivo).
func IsBelowThreshold(qty decimal.Decimal, threshold *decimal.Decimal) bool {
	if threshold == nil {
		return false
	}
	return qty.LessThanOrEqual(*threshold)
}
