package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/stock"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

func addTinta(t *testing.T, f *fixture, qty string) *entity.StockItem {
	t.Helper()
	item, err := f.stock.Add(context.Background(), stock.AddStockInput{
		Category:    entity.CategoryInk,
		Description: "tinta magenta",
		InitialQty:  dec(qty),
		Actor:       "operario-1",
	})
	require.NoError(t, err)
	return item
}

func TestStock_AltaConCargaInicial(t *testing.T) {
	f := newFixture()

	item := addTinta(t, f, "10")

	assert.Equal(t, "TIN-001", item.Code)
	assert.Equal(t, "kg", item.Unit, "la tinta usa kg por defecto")
	assert.True(t, item.Available)
	assert.Equal(t, entity.Stage(""), item.Stage, "sin ciclo de vida, sin etapa")
	assert.True(t, item.QuantityOnHand.Equal(dec("10")))

	require.Len(t, f.movs.byKind(entity.MovementKindCreated), 1)
	loads := f.movs.byKind(entity.MovementKindLoad)
	require.Len(t, loads, 1, "la cantidad inicial positiva deja su carga")
	assert.True(t, loads[0].QuantityDelta.Equal(dec("10")))
}

func TestStock_AltaACeroNoRegistraCarga(t *testing.T) {
	f := newFixture()

	item := addTinta(t, f, "0")

	assert.True(t, item.QuantityOnHand.IsZero())
	assert.Empty(t, f.movs.byKind(entity.MovementKindLoad),
		"sin cantidad inicial no hay entrada LOAD")
}

func TestStock_AltaDeCartonPorEstaViaRechazada(t *testing.T) {
	f := newFixture()

	_, err := f.stock.Add(context.Background(), stock.AddStockInput{
		Category:    entity.CategoryCardboard,
		Description: "no corresponde aquí",
		Actor:       "operario-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el cartón tiene su propio ciclo y su propia alta")
}

func TestStock_DisponibilidadIdempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := addTinta(t, f, "10")

	primera, err := f.stock.SetAvailability(ctx, entity.CategoryInk, item.Code, false, "operario-1")
	require.NoError(t, err)
	assert.False(t, primera.Available)

	segunda, err := f.stock.SetAvailability(ctx, entity.CategoryInk, item.Code, false, "operario-1")
	require.NoError(t, err, "repetir el mismo valor no es un error")
	assert.False(t, segunda.Available)

	cambios := f.movs.byKind(entity.MovementKindStatusChanged)
	assert.Len(t, cambios, 2, "cada llamada deja su entrada aunque no cambie nada")
	assert.True(t, segunda.QuantityOnHand.Equal(dec("10")),
		"la disponibilidad no toca la cantidad")
}

func TestStock_RetiradaConservaCantidad(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := addTinta(t, f, "7")

	retirada, err := f.stock.SetAvailability(ctx, entity.CategoryInk, item.Code, false, "operario-1")
	require.NoError(t, err)

	// Retirada con stock: estados ortogonales
	assert.False(t, retirada.Available)
	assert.True(t, retirada.QuantityOnHand.Equal(dec("7")))

	// Y se puede seguir cargando estando retirada
	cargada, err := f.stock.Load(ctx, entity.CategoryInk, item.Code, stock.LoadInput{
		Quantity: dec("3"), Actor: "operario-1",
	})
	require.NoError(t, err)
	assert.True(t, cargada.QuantityOnHand.Equal(dec("10")))
	assert.False(t, cargada.Available)
}

func TestStock_DescargaInsuficienteRechazada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := addTinta(t, f, "5")

	_, err := f.stock.Unload(ctx, entity.CategoryInk, item.Code, stock.LoadInput{
		Quantity: dec("8"), Actor: "operario-1",
	})
	require.Error(t, err)

	var faltante *domain.InsufficientStockError
	require.ErrorAs(t, err, &faltante)
	assert.True(t, faltante.Shortfall().Equal(dec("3")))

	actual, err := f.stock.Get(ctx, entity.CategoryInk, item.Code)
	require.NoError(t, err)
	assert.True(t, actual.QuantityOnHand.Equal(dec("5")))
	assert.Empty(t, f.movs.byKind(entity.MovementKindUnload))
}

func TestStock_DescargaExactaACeroPermitida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := addTinta(t, f, "5")

	vaciada, err := f.stock.Unload(ctx, entity.CategoryInk, item.Code, stock.LoadInput{
		Quantity: dec("5"), Actor: "operario-1",
	})
	require.NoError(t, err)
	assert.True(t, vaciada.QuantityOnHand.IsZero())
	assert.True(t, vaciada.Available, "cantidad cero no retira la unidad")
}

func TestStock_BelowThresholdInclusivo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	justo, err := f.stock.Add(ctx, stock.AddStockInput{
		Category:    entity.CategoryPolymer,
		Description: "polímero en el mínimo",
		InitialQty:  dec("5"),
		Threshold:   decPtr("5"),
		Actor:       "operario-1",
	})
	require.NoError(t, err)

	_, err = f.stock.Add(ctx, stock.AddStockInput{
		Category:    entity.CategoryPolymer,
		Description: "polímero sobrado",
		InitialQty:  dec("50"),
		Threshold:   decPtr("5"),
		Actor:       "operario-1",
	})
	require.NoError(t, err)

	_, err = f.stock.Add(ctx, stock.AddStockInput{
		Category:    entity.CategoryPolymer,
		Description: "sin mínimo configurado",
		InitialQty:  dec("0"),
		Actor:       "operario-1",
	})
	require.NoError(t, err)

	bajos, err := f.stock.BelowThreshold(ctx, entity.CategoryPolymer)
	require.NoError(t, err)
	require.Len(t, bajos, 1, "el mínimo es inclusivo y sin mínimo no hay aviso")
	assert.Equal(t, justo.Code, bajos[0].Code)
}

func TestStock_CodigosPorCategoria(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tinta := addTinta(t, f, "1")
	troquel, err := f.stock.Add(ctx, stock.AddStockInput{
		Category:    entity.CategoryDie,
		Description: "troquel caja 40x30",
		Actor:       "operario-1",
	})
	require.NoError(t, err)
	polimero, err := f.stock.Add(ctx, stock.AddStockInput{
		Category:    entity.CategoryPolymer,
		Description: "polímero cliché",
		Actor:       "operario-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "TIN-001", tinta.Code)
	assert.Equal(t, "TRQ-001", troquel.Code)
	assert.Equal(t, "PLM-001", polimero.Code)
	assert.Equal(t, "uds", troquel.Unit)
}

func TestStock_EliminarDejaConstancia(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := addTinta(t, f, "2")

	require.NoError(t, f.stock.Remove(ctx, entity.CategoryInk, item.Code, "admin"))

	_, err := f.stock.Get(ctx, entity.CategoryInk, item.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El libro conserva el historial de la unidad eliminada
	movs, err := f.movs.ListByItem(ctx, item.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindStatusChanged, movs[0].Kind)
	assert.Contains(t, movs[0].Note, "eliminada")
}
