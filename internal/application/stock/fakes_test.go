package stock_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/almacen-pro/internal/application/stock"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Fakes en memoria para los casos de uso. Reproducen la semántica relevante
// del adaptador real: GetByCode (nil, nil) si no existe, Update que no toca
// la etapa, UpdateStage condicionado a la etapa de origen.

type fakeItems struct {
	byCode map[string]*entity.StockItem
}

func newFakeItems() *fakeItems {
	return &fakeItems{byCode: make(map[string]*entity.StockItem)}
}

func (f *fakeItems) GetByCode(_ context.Context, code string) (*entity.StockItem, error) {
	it, ok := f.byCode[code]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) GetForUpdate(ctx context.Context, code string) (*entity.StockItem, error) {
	return f.GetByCode(ctx, code)
}

func (f *fakeItems) List(_ context.Context, category entity.Category) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range f.byCode {
		if it.Category == category {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeItems) ListByStage(ctx context.Context, category entity.Category, stage entity.Stage) ([]*entity.StockItem, error) {
	all, _ := f.List(ctx, category)
	var out []*entity.StockItem
	for _, it := range all {
		if it.Stage == stage {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItems) Insert(_ context.Context, it *entity.StockItem) error {
	if _, ok := f.byCode[it.Code]; ok {
		return domain.ErrDuplicateCode
	}
	cp := *it
	f.byCode[it.Code] = &cp
	return nil
}

func (f *fakeItems) Update(_ context.Context, it *entity.StockItem) error {
	stored, ok := f.byCode[it.Code]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *it
	cp.Stage = stored.Stage // la etapa sólo la mueve UpdateStage
	f.byCode[it.Code] = &cp
	return nil
}

func (f *fakeItems) UpdateStage(_ context.Context, code string, from, to entity.Stage) error {
	stored, ok := f.byCode[code]
	if !ok || stored.Stage != from {
		return domain.ErrInvalidStage
	}
	stored.Stage = to
	return nil
}

func (f *fakeItems) Delete(_ context.Context, code string) error {
	if _, ok := f.byCode[code]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byCode, code)
	return nil
}

type fakeMovs struct {
	entries []*entity.Movement
}

func (f *fakeMovs) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("mov-%d", len(f.entries)+1)
	}
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeMovs) ListByItem(_ context.Context, itemCode string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ItemCode == itemCode {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeMovs) ListRecent(_ context.Context, _, _ *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(f.entries) - 1; i >= 0; i-- {
		out = append(out, f.entries[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// byKind devuelve las entradas registradas de un tipo, en orden de escritura.
func (f *fakeMovs) byKind(kind string) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range f.entries {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type fakeCodes struct {
	items *fakeItems
}

func (f *fakeCodes) MaxCodeNumber(_ context.Context, prefix string) (int64, error) {
	var max int64
	for code := range f.items.byCode {
		if !strings.HasPrefix(code, prefix+"-") {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(code, prefix+"-"), 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (f *fakeCodes) MaxOrderNumber(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

// fakeTx ejecuta el callback directamente sobre los fakes compartidos.
type fakeTx struct {
	items *fakeItems
	movs  *fakeMovs
	codes *fakeCodes
}

func (f *fakeTx) Run(_ context.Context, fn func(
	items repository.StockItemRepository,
	movs repository.MovementRepository,
	codes repository.CodeRepository,
) error) error {
	return fn(f.items, f.movs, f.codes)
}

// fixture arma los fakes y ambos casos de uso sobre el mismo estado.
type fixture struct {
	items     *fakeItems
	movs      *fakeMovs
	cardboard *stock.CardboardUseCase
	stock     *stock.StockUseCase
}

func newFixture() *fixture {
	items := newFakeItems()
	movs := &fakeMovs{}
	codes := &fakeCodes{items: items}
	tx := &fakeTx{items: items, movs: movs, codes: codes}
	return &fixture{
		items:     items,
		movs:      movs,
		cardboard: stock.NewCardboardUseCase(tx, items, movs),
		stock:     stock.NewStockUseCase(tx, items, movs),
	}
}
