package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/ledger"
	"github.com/tu-usuario/almacen-pro/internal/domain/quantity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/domain/sequence"
)

// StockUseCase cubre las categorías de dos estados (tinta, polímero,
// troquel): disponible/retirada, ortogonal a la cantidad. Una unidad puede
// estar retirada con stock o disponible a cero; toda carga y descarga queda
// en el libro sea cual sea el indicador.
type StockUseCase struct {
	tx    TxRunner
	items repository.StockItemRepository
	movs  repository.MovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx TxRunner, items repository.StockItemRepository, movs repository.MovementRepository) *StockUseCase {
	return &StockUseCase{tx: tx, items: items, movs: movs}
}

// AddStockInput alta de una unidad de dos estados.
type AddStockInput struct {
	Category     entity.Category
	Description  string
	Unit         string
	InitialQty   decimal.Decimal
	Threshold    *decimal.Decimal
	SupplierCode string
	JobRef       string
	Actor        string
}

func defaultUnit(c entity.Category) string {
	if c == entity.CategoryInk {
		return "kg"
	}
	return "uds"
}

// Add da de alta la unidad con su código de categoría. Cantidad inicial
// cero permitida (a la espera de reposición); si es positiva se registra
// además la carga inicial.
func (uc *StockUseCase) Add(ctx context.Context, in AddStockInput) (*entity.StockItem, error) {
	if !in.Category.Valid() || in.Category.HasLifecycle() {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQty.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	unit := in.Unit
	if unit == "" {
		unit = defaultUnit(in.Category)
	}

	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		codes repository.CodeRepository,
	) error {
		st, err := sequence.Initialize(ctx, codes, in.Category.Prefix())
		if err != nil {
			return err
		}
		now := time.Now()
		item = &entity.StockItem{
			Code:           st.Next(),
			Category:       in.Category,
			Description:    in.Description,
			Unit:           unit,
			QuantityOnHand: in.InitialQty,
			Available:      true,
			Threshold:      in.Threshold,
			SupplierCode:   in.SupplierCode,
			JobRef:         in.JobRef,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := items.Insert(ctx, item); err != nil {
			return err
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode: item.Code,
			Kind:     entity.MovementKindCreated,
			Actor:    in.Actor,
			Note:     "alta de unidad",
		}, now)
		if err != nil {
			return err
		}
		if err := movs.Create(ctx, mov); err != nil {
			return err
		}
		if in.InitialQty.IsPositive() {
			load, err := ledger.New(ledger.Entry{
				ItemCode: item.Code,
				Kind:     entity.MovementKindLoad,
				Delta:    in.InitialQty,
				Actor:    in.Actor,
				Note:     "carga inicial",
			}, now)
			if err != nil {
				return err
			}
			return movs.Create(ctx, load)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetAvailability marca la unidad como usable o retirada. Idempotente: dos
// llamadas seguidas dejan dos entradas en el libro y el indicador igual tras
// la segunda, sin error ni efecto sobre la cantidad.
func (uc *StockUseCase) SetAvailability(ctx context.Context, category entity.Category, code string, available bool, actor string) (*entity.StockItem, error) {
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getForUpdate(ctx, items, category, code)
		if err != nil {
			return err
		}
		now := time.Now()
		item.Available = available
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		note := "marcada como retirada"
		if available {
			note = "marcada como disponible"
		}
		return recordStatus(ctx, movs, item.Code, actor, note, now)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// LoadInput carga o descarga de cantidad.
type LoadInput struct {
	Quantity   decimal.Decimal
	Note       string
	JobRef     string
	ClientCode string
	Actor      string
}

// Load suma cantidad a la unidad y registra la carga en el libro.
func (uc *StockUseCase) Load(ctx context.Context, category entity.Category, code string, in LoadInput) (*entity.StockItem, error) {
	return uc.applyMovement(ctx, category, code, in, entity.MovementKindLoad)
}

// Unload resta cantidad de la unidad. Se rechaza con stock insuficiente
// antes de escribir nada si la cantidad quedaría negativa.
func (uc *StockUseCase) Unload(ctx context.Context, category entity.Category, code string, in LoadInput) (*entity.StockItem, error) {
	return uc.applyMovement(ctx, category, code, in, entity.MovementKindUnload)
}

func (uc *StockUseCase) applyMovement(ctx context.Context, category entity.Category, code string, in LoadInput, kind string) (*entity.StockItem, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	delta := in.Quantity
	if kind == entity.MovementKindUnload {
		delta = delta.Neg()
	}
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getForUpdate(ctx, items, category, code)
		if err != nil {
			return err
		}
		newQty, err := quantity.ApplyDelta(item.QuantityOnHand, delta)
		if err != nil {
			return err
		}
		now := time.Now()
		item.QuantityOnHand = newQty
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode:     item.Code,
			Kind:         kind,
			Delta:        delta,
			Actor:        in.Actor,
			Note:         in.Note,
			LinkedJob:    in.JobRef,
			LinkedClient: in.ClientCode,
		}, now)
		if err != nil {
			return err
		}
		return movs.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ModifyStockInput campos descriptivos modificables; nil = sin cambio.
type ModifyStockInput struct {
	Description  *string
	Threshold    *decimal.Decimal
	SupplierCode *string
	JobRef       *string
	Actor        string
}

// Modify actualiza campos descriptivos y deja constancia MODIFIED.
func (uc *StockUseCase) Modify(ctx context.Context, category entity.Category, code string, in ModifyStockInput) (*entity.StockItem, error) {
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getForUpdate(ctx, items, category, code)
		if err != nil {
			return err
		}
		now := time.Now()
		if in.Description != nil {
			item.Description = *in.Description
		}
		if in.Threshold != nil {
			item.Threshold = in.Threshold
		}
		if in.SupplierCode != nil {
			item.SupplierCode = *in.SupplierCode
		}
		if in.JobRef != nil {
			item.JobRef = *in.JobRef
		}
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode: item.Code,
			Kind:     entity.MovementKindModified,
			Actor:    in.Actor,
			Note:     "modificación de datos",
		}, now)
		if err != nil {
			return err
		}
		return movs.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Remove elimina la unidad del registro y deja constancia en el libro.
func (uc *StockUseCase) Remove(ctx context.Context, category entity.Category, code, actor string) error {
	return uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		if _, err := getForUpdate(ctx, items, category, code); err != nil {
			return err
		}
		now := time.Now()
		if err := items.Delete(ctx, code); err != nil {
			return err
		}
		return recordStatus(ctx, movs, code, actor, "unidad eliminada", now)
	})
}

// Get devuelve una unidad por código dentro de la categoría.
func (uc *StockUseCase) Get(ctx context.Context, category entity.Category, code string) (*entity.StockItem, error) {
	item, err := uc.items.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Category != category {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List devuelve las unidades de la categoría.
func (uc *StockUseCase) List(ctx context.Context, category entity.Category) ([]*entity.StockItem, error) {
	if !category.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.items.List(ctx, category)
}

// History devuelve el libro de la unidad, más recientes primero.
func (uc *StockUseCase) History(ctx context.Context, category entity.Category, code string) ([]*entity.Movement, error) {
	if _, err := uc.Get(ctx, category, code); err != nil {
		return nil, err
	}
	return uc.movs.ListByItem(ctx, code)
}

// RecentMovements devuelve el libro global en un rango de fechas, más
// recientes primero, paginado.
func (uc *StockUseCase) RecentMovements(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movs.ListRecent(ctx, from, to, limit, offset)
}

// BelowThreshold devuelve las unidades de la categoría en o por debajo de su
// mínimo de reposición (las que no tienen mínimo nunca aparecen).
func (uc *StockUseCase) BelowThreshold(ctx context.Context, category entity.Category) ([]*entity.StockItem, error) {
	all, err := uc.List(ctx, category)
	if err != nil {
		return nil, err
	}
	low := make([]*entity.StockItem, 0, len(all))
	for _, it := range all {
		if quantity.IsBelowThreshold(it.QuantityOnHand, it.Threshold) {
			low = append(low, it)
		}
	}
	return low, nil
}

// getForUpdate carga con bloqueo de fila verificando categoría.
func getForUpdate(ctx context.Context, items repository.StockItemRepository, category entity.Category, code string) (*entity.StockItem, error) {
	item, err := items.GetForUpdate(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Category != category {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
