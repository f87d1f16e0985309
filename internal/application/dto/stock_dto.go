package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// AddCardboardRequest body para POST /api/cardboard.
type AddCardboardRequest struct {
	Description  string           `json:"description" validate:"required"`
	Format       string           `json:"format,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	OrderedQty   decimal.Decimal  `json:"ordered_qty" validate:"required"`
	Yield        *decimal.Decimal `json:"yield,omitempty"`
	Threshold    *decimal.Decimal `json:"threshold,omitempty"`
	SupplierCode string           `json:"supplier_code,omitempty"`
	ClientCode   string           `json:"client_code,omitempty"`
	JobRef       string           `json:"job_ref,omitempty"`
}

// AddStockRequest body para POST /api/stock/:category.
type AddStockRequest struct {
	Description  string           `json:"description" validate:"required"`
	Unit         string           `json:"unit,omitempty"`
	InitialQty   decimal.Decimal  `json:"initial_qty"`
	Threshold    *decimal.Decimal `json:"threshold,omitempty"`
	SupplierCode string           `json:"supplier_code,omitempty"`
	JobRef       string           `json:"job_ref,omitempty"`
}

// ModifyStockRequest body para PUT de unidades; campos omitidos no cambian.
type ModifyStockRequest struct {
	Description  *string          `json:"description,omitempty"`
	Format       *string          `json:"format,omitempty"`
	Threshold    *decimal.Decimal `json:"threshold,omitempty"`
	Yield        *decimal.Decimal `json:"yield,omitempty"`
	SupplierCode *string          `json:"supplier_code,omitempty"`
	ClientCode   *string          `json:"client_code,omitempty"`
	JobRef       *string          `json:"job_ref,omitempty"`
	Location     *string          `json:"location,omitempty"`
}

// AvailabilityRequest body para PATCH .../availability.
type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// LoadRequest body para POST .../load.
type LoadRequest struct {
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	Note       string          `json:"note,omitempty"`
	JobRef     string          `json:"job_ref,omitempty"`
	ClientCode string          `json:"client_code,omitempty"`
}

// UnloadRequest body para POST .../unload. YieldRatio (hojas por corte)
// sólo aplica al cartón: la cantidad efectiva es floor(quantity/yield_ratio).
type UnloadRequest struct {
	Quantity   decimal.Decimal  `json:"quantity" validate:"required"`
	YieldRatio *decimal.Decimal `json:"yield_ratio,omitempty"`
	Note       string           `json:"note,omitempty"`
	JobRef     string           `json:"job_ref,omitempty"`
	ClientCode string           `json:"client_code,omitempty"`
}

// PlaceOrderRequest body para POST /api/cardboard/:code/order.
type PlaceOrderRequest struct {
	DeliveryDate time.Time `json:"delivery_date" validate:"required"`
}

// ArrivalRequest body para POST /api/cardboard/:code/arrival.
type ArrivalRequest struct {
	DDT       string          `json:"ddt" validate:"required"`
	ActualQty decimal.Decimal `json:"actual_qty" validate:"required"`
	Location  string          `json:"location,omitempty"`
}

// StockItemResponse representación JSON de una unidad de stock.
type StockItemResponse struct {
	Code              string           `json:"code"`
	Category          string           `json:"category"`
	Description       string           `json:"description"`
	QuantityOnHand    decimal.Decimal  `json:"quantity_on_hand"`
	Unit              string           `json:"unit"`
	Available         bool             `json:"available"`
	Stage             string           `json:"stage,omitempty"`
	Threshold         *decimal.Decimal `json:"threshold,omitempty"`
	BelowThreshold    bool             `json:"below_threshold"`
	SupplierCode      string           `json:"supplier_code,omitempty"`
	ClientCode        string           `json:"client_code,omitempty"`
	JobRef            string           `json:"job_ref,omitempty"`
	Format            string           `json:"format,omitempty"`
	Yield             *decimal.Decimal `json:"yield,omitempty"`
	OrderedQty        decimal.Decimal  `json:"ordered_qty"`
	SupplierConfirmed bool             `json:"supplier_confirmed"`
	DeliveryDate      *time.Time       `json:"delivery_date,omitempty"`
	DDT               string           `json:"ddt,omitempty"`
	Location          string           `json:"location,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ArrivalResponse resultado de registrar una entrada: la unidad y la
// diferencia informativa entre lo recibido y lo pedido.
type ArrivalResponse struct {
	Item      StockItemResponse `json:"item"`
	OrderDiff decimal.Decimal   `json:"order_diff"`
}

// MovementResponse representación JSON de una entrada del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	ItemCode      string          `json:"item_code"`
	Kind          string          `json:"kind"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Actor         string          `json:"actor,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Note          string          `json:"note,omitempty"`
	LinkedJob     string          `json:"linked_job,omitempty"`
	LinkedClient  string          `json:"linked_client,omitempty"`
}

// FromStockItem mapea la entidad a su respuesta, calculando el aviso de
// mínimo de reposición (inclusivo; sin mínimo nunca avisa).
func FromStockItem(it *entity.StockItem) StockItemResponse {
	below := it.Threshold != nil && it.QuantityOnHand.LessThanOrEqual(*it.Threshold)
	return StockItemResponse{
		Code:              it.Code,
		Category:          string(it.Category),
		Description:       it.Description,
		QuantityOnHand:    it.QuantityOnHand,
		Unit:              it.Unit,
		Available:         it.Available,
		Stage:             string(it.Stage),
		Threshold:         it.Threshold,
		BelowThreshold:    below,
		SupplierCode:      it.SupplierCode,
		ClientCode:        it.ClientCode,
		JobRef:            it.JobRef,
		Format:            it.Format,
		Yield:             it.Yield,
		OrderedQty:        it.OrderedQty,
		SupplierConfirmed: it.SupplierConfirmed,
		DeliveryDate:      it.DeliveryDate,
		DDT:               it.DDT,
		Location:          it.Location,
		UpdatedAt:         it.UpdatedAt,
	}
}

// FromStockItems mapea una lista de entidades.
func FromStockItems(items []*entity.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromStockItem(it))
	}
	return out
}

// FromMovement mapea una entrada del libro a su respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ItemCode:      m.ItemCode,
		Kind:          m.Kind,
		QuantityDelta: m.QuantityDelta,
		Actor:         m.Actor,
		OccurredAt:    m.OccurredAt,
		Note:          m.Note,
		LinkedJob:     m.LinkedJob,
		LinkedClient:  m.LinkedClient,
	}
}

// FromMovements mapea el historial completo.
func FromMovements(ms []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMovement(m))
	}
	return out
}
