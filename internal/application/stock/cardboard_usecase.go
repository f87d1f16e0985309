package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/ledger"
	"github.com/tu-usuario/almacen-pro/internal/domain/quantity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/domain/sequence"
)

// CardboardUseCase es la máquina de estados de los lotes de cartón:
// AWAITING_ORDER → INCOMING → IN_STOCK → DEPLETED, con los bordes
// correctivos manuales IN_STOCK → INCOMING y DEPLETED → IN_STOCK.
// Cada transición que cambia cantidad, disponibilidad o etapa escribe
// exactamente una entrada del libro, en la misma transacción.
type CardboardUseCase struct {
	tx    TxRunner
	items repository.StockItemRepository
	movs  repository.MovementRepository
}

// NewCardboardUseCase construye el caso de uso.
func NewCardboardUseCase(tx TxRunner, items repository.StockItemRepository, movs repository.MovementRepository) *CardboardUseCase {
	return &CardboardUseCase{tx: tx, items: items, movs: movs}
}

// AddCardboardInput alta de un lote de cartón (nace en AWAITING_ORDER).
type AddCardboardInput struct {
	Description  string
	Format       string
	Unit         string
	OrderedQty   decimal.Decimal
	Yield        *decimal.Decimal
	Threshold    *decimal.Decimal
	SupplierCode string
	ClientCode   string
	JobRef       string
	Actor        string
}

// Add da de alta un lote: acuña el código CTN-NNN dentro de la misma
// transacción que el insert, de modo que una colisión de secuencia aflora
// como código duplicado y no como fila pisada.
func (uc *CardboardUseCase) Add(ctx context.Context, in AddCardboardInput) (*entity.StockItem, error) {
	if !in.OrderedQty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Yield != nil && !in.Yield.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	unit := in.Unit
	if unit == "" {
		unit = "hojas"
	}

	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		codes repository.CodeRepository,
	) error {
		st, err := sequence.Initialize(ctx, codes, entity.CategoryCardboard.Prefix())
		if err != nil {
			return err
		}
		now := time.Now()
		item = &entity.StockItem{
			Code:           st.Next(),
			Category:       entity.CategoryCardboard,
			Description:    in.Description,
			Format:         in.Format,
			Unit:           unit,
			QuantityOnHand: decimal.Zero,
			Available:      true,
			Stage:          entity.StageAwaitingOrder,
			Threshold:      in.Threshold,
			Yield:          in.Yield,
			OrderedQty:     in.OrderedQty,
			SupplierCode:   in.SupplierCode,
			ClientCode:     in.ClientCode,
			JobRef:         in.JobRef,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := items.Insert(ctx, item); err != nil {
			return err
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode:     item.Code,
			Kind:         entity.MovementKindCreated,
			Actor:        in.Actor,
			Note:         "alta de lote de cartón",
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

// ConfirmSupplier marca el lote como confirmado por el proveedor. No mueve
// de etapa: sólo vale en AWAITING_ORDER.
func (uc *CardboardUseCase) ConfirmSupplier(ctx context.Context, code, actor string) (*entity.StockItem, error) {
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		if item.Stage != entity.StageAwaitingOrder {
			return domain.ErrInvalidStage
		}
		now := time.Now()
		item.SupplierConfirmed = true
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		return recordStatus(ctx, movs, item.Code, actor, "proveedor confirmado", now)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// PlaceOrder pasa el lote de AWAITING_ORDER a INCOMING con fecha de entrega
// prevista.
func (uc *CardboardUseCase) PlaceOrder(ctx context.Context, code string, deliveryDate time.Time, actor string) (*entity.StockItem, error) {
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		if item.Stage != entity.StageAwaitingOrder {
			return domain.ErrInvalidStage
		}
		now := time.Now()
		if err := items.UpdateStage(ctx, code, entity.StageAwaitingOrder, entity.StageIncoming); err != nil {
			return err
		}
		item.Stage = entity.StageIncoming
		item.DeliveryDate = &deliveryDate
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		return recordStatus(ctx, movs, item.Code, actor,
			fmt.Sprintf("pedido al proveedor, entrega prevista %s", deliveryDate.Format("2006-01-02")), now)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ArrivalInput entrada registrada de un lote pedido.
type ArrivalInput struct {
	DDT      string
	ActualQty decimal.Decimal
	Location string
	Actor    string
}

// RecordArrival pasa el lote de INCOMING a IN_STOCK con la cantidad real
// recibida. La diferencia con lo pedido se devuelve como dato informativo y
// nunca se rechaza.
func (uc *CardboardUseCase) RecordArrival(ctx context.Context, code string, in ArrivalInput) (*entity.StockItem, decimal.Decimal, error) {
	if !in.ActualQty.IsPositive() {
		return nil, decimal.Zero, domain.ErrInvalidQuantity
	}
	var (
		item *entity.StockItem
		diff decimal.Decimal
	)
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		if item.Stage != entity.StageIncoming {
			return domain.ErrInvalidStage
		}
		now := time.Now()
		diff = in.ActualQty.Sub(item.OrderedQty)
		if err := items.UpdateStage(ctx, code, entity.StageIncoming, entity.StageInStock); err != nil {
			return err
		}
		item.Stage = entity.StageInStock
		item.QuantityOnHand = in.ActualQty
		item.DDT = in.DDT
		item.Location = in.Location
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		note := fmt.Sprintf("entrada DDT %s", in.DDT)
		if !diff.IsZero() {
			note = fmt.Sprintf("%s (dif. vs pedido %s)", note, diff.String())
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode:     item.Code,
			Kind:         entity.MovementKindLoad,
			Delta:        in.ActualQty,
			Actor:        in.Actor,
			Note:         note,
			LinkedJob:    item.JobRef,
			LinkedClient: item.ClientCode,
		}, now)
		if err != nil {
			return err
		}
		return movs.Create(ctx, mov)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return item, diff, nil
}

// UnloadCardboardInput descarga de hojas de un lote en existencias.
type UnloadCardboardInput struct {
	Quantity   decimal.Decimal
	YieldRatio *decimal.Decimal // hojas por corte; nil = descarga en bruto
	JobRef     string
	ClientCode string
	Note       string
	Actor      string
}

// Unload descarga del lote. Con ratio de rendimiento la cantidad efectiva es
// floor(solicitada/ratio); sin él, la solicitada tal cual. Si la cantidad
// llega exactamente a cero el lote pasa a DEPLETED. Una descarga que dejaría
// la cantidad negativa se rechaza antes de escribir nada.
func (uc *CardboardUseCase) Unload(ctx context.Context, code string, in UnloadCardboardInput) (*entity.StockItem, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		if item.Stage != entity.StageInStock {
			return domain.ErrInvalidStage
		}
		units := in.Quantity
		if in.YieldRatio != nil {
			units, err = quantity.YieldDivide(in.Quantity, *in.YieldRatio)
			if err != nil {
				return err
			}
		}
		newQty, err := quantity.ApplyDelta(item.QuantityOnHand, units.Neg())
		if err != nil {
			return err
		}
		now := time.Now()
		if newQty.IsZero() {
			if err := items.UpdateStage(ctx, code, entity.StageInStock, entity.StageDepleted); err != nil {
				return err
			}
			item.Stage = entity.StageDepleted
		}
		item.QuantityOnHand = newQty
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode:     item.Code,
			Kind:         entity.MovementKindUnload,
			Delta:        units.Neg(),
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

// ReturnToIncoming borde correctivo manual: devuelve un lote de IN_STOCK a
// INCOMING ("riporta in ordini"). Siempre permitido desde IN_STOCK.
func (uc *CardboardUseCase) ReturnToIncoming(ctx context.Context, code, actor string) (*entity.StockItem, error) {
	return uc.correctStage(ctx, code, actor, entity.StageInStock, entity.StageIncoming, "devuelto a pedidos")
}

// ReturnToStock borde correctivo manual: devuelve un lote de DEPLETED a
// IN_STOCK ("riporta in giacenza"). Siempre permitido desde DEPLETED.
func (uc *CardboardUseCase) ReturnToStock(ctx context.Context, code, actor string) (*entity.StockItem, error) {
	return uc.correctStage(ctx, code, actor, entity.StageDepleted, entity.StageInStock, "devuelto a existencias")
}

func (uc *CardboardUseCase) correctStage(ctx context.Context, code, actor string, from, to entity.Stage, note string) (*entity.StockItem, error) {
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		if item.Stage != from {
			return domain.ErrInvalidStage
		}
		now := time.Now()
		if err := items.UpdateStage(ctx, code, from, to); err != nil {
			return err
		}
		item.Stage = to
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		return recordStatus(ctx, movs, item.Code, actor, note, now)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Remove elimina un lote. Sólo se permite desde AWAITING_ORDER o INCOMING:
// desde IN_STOCK/DEPLETED hay que pasar por unload/returnToStock para que el
// libro dé cuenta de a dónde fue la cantidad.
func (uc *CardboardUseCase) Remove(ctx context.Context, code, actor string) error {
	return uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		item, err := getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		if item.Stage != entity.StageAwaitingOrder && item.Stage != entity.StageIncoming {
			return domain.ErrInvalidStage
		}
		now := time.Now()
		if err := items.Delete(ctx, code); err != nil {
			return err
		}
		// El libro conserva la entrada aunque la unidad desaparezca: la
		// referencia por código no es un puntero propietario.
		return recordStatus(ctx, movs, code, actor, "pedido eliminado", now)
	})
}

// ModifyCardboardInput campos descriptivos modificables; nil = sin cambio.
type ModifyCardboardInput struct {
	Description  *string
	Format       *string
	Threshold    *decimal.Decimal
	Yield        *decimal.Decimal
	SupplierCode *string
	ClientCode   *string
	JobRef       *string
	Location     *string
	Actor        string
}

// Modify actualiza campos descriptivos del lote y deja constancia MODIFIED.
// No toca cantidad ni etapa.
func (uc *CardboardUseCase) Modify(ctx context.Context, code string, in ModifyCardboardInput) (*entity.StockItem, error) {
	if in.Yield != nil && !in.Yield.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	var item *entity.StockItem
	err := uc.tx.Run(ctx, func(
		items repository.StockItemRepository,
		movs repository.MovementRepository,
		_ repository.CodeRepository,
	) error {
		var err error
		item, err = getCardboardForUpdate(ctx, items, code)
		if err != nil {
			return err
		}
		now := time.Now()
		if in.Description != nil {
			item.Description = *in.Description
		}
		if in.Format != nil {
			item.Format = *in.Format
		}
		if in.Threshold != nil {
			item.Threshold = in.Threshold
		}
		if in.Yield != nil {
			item.Yield = in.Yield
		}
		if in.SupplierCode != nil {
			item.SupplierCode = *in.SupplierCode
		}
		if in.ClientCode != nil {
			item.ClientCode = *in.ClientCode
		}
		if in.JobRef != nil {
			item.JobRef = *in.JobRef
		}
		if in.Location != nil {
			item.Location = *in.Location
		}
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		mov, err := ledger.New(ledger.Entry{
			ItemCode: item.Code,
			Kind:     entity.MovementKindModified,
			Actor:    in.Actor,
			Note:     "modificación de datos del lote",
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

// Get devuelve un lote por código.
func (uc *CardboardUseCase) Get(ctx context.Context, code string) (*entity.StockItem, error) {
	return getCardboard(ctx, uc.items, code)
}

// List devuelve los lotes de cartón, opcionalmente filtrados por etapa.
func (uc *CardboardUseCase) List(ctx context.Context, stage entity.Stage) ([]*entity.StockItem, error) {
	if stage == "" {
		return uc.items.List(ctx, entity.CategoryCardboard)
	}
	return uc.items.ListByStage(ctx, entity.CategoryCardboard, stage)
}

// History devuelve el libro de movimientos del lote, más recientes primero.
func (uc *CardboardUseCase) History(ctx context.Context, code string) ([]*entity.Movement, error) {
	if _, err := getCardboard(ctx, uc.items, code); err != nil {
		return nil, err
	}
	return uc.movs.ListByItem(ctx, code)
}

// getCardboard carga un lote verificando existencia y categoría.
func getCardboard(ctx context.Context, items repository.StockItemRepository, code string) (*entity.StockItem, error) {
	item, err := items.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Category != entity.CategoryCardboard {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// getCardboardForUpdate igual que getCardboard pero con bloqueo de fila.
func getCardboardForUpdate(ctx context.Context, items repository.StockItemRepository, code string) (*entity.StockItem, error) {
	item, err := items.GetForUpdate(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Category != entity.CategoryCardboard {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// recordStatus escribe una entrada STATUS_CHANGED (delta 0).
func recordStatus(ctx context.Context, movs repository.MovementRepository, code, actor, note string, at time.Time) error {
	mov, err := ledger.New(ledger.Entry{
		ItemCode: code,
		Kind:     entity.MovementKindStatusChanged,
		Actor:    actor,
		Note:     note,
	}, at)
	if err != nil {
		return err
	}
	return movs.Create(ctx, mov)
}
