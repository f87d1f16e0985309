package sequence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/domain/sequence"
)

// fakeScanner devuelve máximos fijos por prefijo/año.
type fakeScanner struct {
	byPrefix map[string]int64
	byYear   map[int]int64
	err      error
}

func (f *fakeScanner) MaxCodeNumber(_ context.Context, prefix string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.byPrefix[prefix], nil
}

func (f *fakeScanner) MaxOrderNumber(_ context.Context, year int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.byYear[year], nil
}

// Tras observar el máximo CTN-007, tres Next consecutivos deben emitir
// CTN-008, CTN-009 y CTN-010.
func TestState_NextDesdeMaximoObservado(t *testing.T) {
	sc := &fakeScanner{byPrefix: map[string]int64{"CTN": 7}}
	st, err := sequence.Initialize(context.Background(), sc, "CTN")
	require.NoError(t, err)

	assert.Equal(t, "CTN-008", st.Next())
	assert.Equal(t, "CTN-009", st.Next())
	assert.Equal(t, "CTN-010", st.Next())
	assert.Equal(t, int64(10), st.Last())
}

// Sin códigos persistidos la secuencia arranca en 1.
func TestState_SinCodigosPrevios(t *testing.T) {
	sc := &fakeScanner{byPrefix: map[string]int64{}}
	st, err := sequence.Initialize(context.Background(), sc, "PLM")
	require.NoError(t, err)
	assert.Equal(t, "PLM-001", st.Next())
}

// Dos estados del mismo prefijo son independientes: el contador es del flujo
// que lo posee, no global del proceso.
func TestState_EstadosIndependientes(t *testing.T) {
	sc := &fakeScanner{byPrefix: map[string]int64{"TIN": 3}}
	a, err := sequence.Initialize(context.Background(), sc, "TIN")
	require.NoError(t, err)
	b, err := sequence.Initialize(context.Background(), sc, "TIN")
	require.NoError(t, err)

	// Ambos parten del mismo máximo: la colisión la corta el índice único
	// al persistir, no el secuenciador.
	assert.Equal(t, "TIN-004", a.Next())
	assert.Equal(t, "TIN-004", b.Next())
}

func TestState_RellenoTresDigitos(t *testing.T) {
	assert.Equal(t, "CLI-001", sequence.Format("CLI", 1))
	assert.Equal(t, "CLI-099", sequence.Format("CLI", 99))
	assert.Equal(t, "CLI-100", sequence.Format("CLI", 100))
	// Más de tres dígitos no se trunca
	assert.Equal(t, "CLI-1000", sequence.Format("CLI", 1000))
}

func TestInitialize_PropagaErrorDelScanner(t *testing.T) {
	sc := &fakeScanner{err: errors.New("sin conexión")}
	_, err := sequence.Initialize(context.Background(), sc, "CTN")
	require.Error(t, err)
}

// Números de pedido: secuencia anual con formato N/YY.
func TestOrderState_FormatoAnual(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sc := &fakeScanner{byYear: map[int]int64{2025: 11}}

	st, err := sequence.InitializeOrders(context.Background(), sc, now)
	require.NoError(t, err)
	assert.Equal(t, 2025, st.Year())

	seq, num := st.Next()
	assert.Equal(t, int64(12), seq)
	assert.Equal(t, "12/25", num)

	seq, num = st.Next()
	assert.Equal(t, int64(13), seq)
	assert.Equal(t, "13/25", num)
}

// Año nuevo: la secuencia reinicia porque el máximo del año es 0.
func TestOrderState_ReinicioPorAnio(t *testing.T) {
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	sc := &fakeScanner{byYear: map[int]int64{2025: 41}}

	st, err := sequence.InitializeOrders(context.Background(), sc, now)
	require.NoError(t, err)

	_, num := st.Next()
	assert.Equal(t, "1/26", num)
}
