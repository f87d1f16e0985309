package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierCode string          `json:"supplier_code" validate:"required"`
	ItemCode     string          `json:"item_code,omitempty"`
	Description  string          `json:"description" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	Unit         string          `json:"unit,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// PurchaseOrderResponse representación JSON de un pedido de compra.
type PurchaseOrderResponse struct {
	Number       string          `json:"number"` // N/YY
	Year         int             `json:"year"`
	SupplierCode string          `json:"supplier_code"`
	ItemCode     string          `json:"item_code,omitempty"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
	Note         string          `json:"note,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromPurchaseOrder mapea la entidad a su respuesta.
func FromPurchaseOrder(o *entity.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		Number:       o.Number,
		Year:         o.Year,
		SupplierCode: o.SupplierCode,
		ItemCode:     o.ItemCode,
		Description:  o.Description,
		Quantity:     o.Quantity,
		Unit:         o.Unit,
		Note:         o.Note,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
	}
}

// FromPurchaseOrders mapea una lista de pedidos.
func FromPurchaseOrders(os []*entity.PurchaseOrder) []PurchaseOrderResponse {
	out := make([]PurchaseOrderResponse, 0, len(os))
	for _, o := range os {
		out = append(out, FromPurchaseOrder(o))
	}
	return out
}
