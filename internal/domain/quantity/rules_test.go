package quantity_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/quantity"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ApplyDelta falla si y sólo si current + delta < 0; si no, devuelve
// exactamente current + delta.
func TestApplyDelta(t *testing.T) {
	cases := []struct {
		name    string
		current string
		delta   string
		want    string
		wantErr bool
	}{
		{"carga simple", "100", "50", "150", false},
		{"descarga parcial", "500", "-200", "300", false},
		{"descarga exacta a cero", "500", "-500", "0", false},
		{"descarga excesiva", "400", "-401", "", true},
		{"desde cero en negativo", "0", "-1", "", true},
		{"delta cero", "0", "0", "0", false},
		{"decimales", "10.5", "-0.5", "10", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := quantity.ApplyDelta(d(tc.current), d(tc.delta))
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
					"el error debe ser de stock insuficiente")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tc.want)), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

// El error de stock insuficiente debe llevar el faltante para que el operario
// vea cuánto hay disponible realmente.
func TestApplyDelta_ErrorConFaltante(t *testing.T) {
	_, err := quantity.ApplyDelta(d("400"), d("-1000"))
	require.Error(t, err)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.True(t, insErr.Available.Equal(d("400")))
	assert.True(t, insErr.Requested.Equal(d("1000")))
	assert.True(t, insErr.Shortfall().Equal(d("600")))
}

// División por rendimiento: siempre floor, nunca redondeo.
func TestYieldDivide(t *testing.T) {
	got, err := quantity.YieldDivide(d("1000"), d("3"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("333")), "1000/3 debe truncar a 333, obtenido %s", got)

	got, err = quantity.YieldDivide(d("250"), d("1"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("250")))
}

func TestYieldDivide_Rechazos(t *testing.T) {
	// Ratio no positivo
	_, err := quantity.YieldDivide(d("100"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = quantity.YieldDivide(d("100"), d("-2"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Resultado truncado menor que 1
	_, err = quantity.YieldDivide(d("2"), d("3"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Umbral de reposición: nil nunca avisa; la igualdad sí (límite inclusivo).
func TestIsBelowThreshold(t *testing.T) {
	five := d("5")

	assert.True(t, quantity.IsBelowThreshold(d("5"), &five),
		"cantidad igual al umbral debe avisar")
	assert.True(t, quantity.IsBelowThreshold(d("4"), &five))
	assert.False(t, quantity.IsBelowThreshold(d("6"), &five))
	assert.False(t, quantity.IsBelowThreshold(d("5"), nil),
		"sin umbral configurado nunca debe avisar")
}
