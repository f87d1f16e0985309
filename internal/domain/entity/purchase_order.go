package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder es un pedido de compra a proveedor. El número sigue el
// formato N/YY (secuencia anual) y es superficie de compatibilidad.
type PurchaseOrder struct {
	Number       string // "12/25"
	Seq          int64  // parte numérica del número, única por año
	Year         int
	SupplierCode string // FOR-NNN
	ItemCode     string // unidad de stock pedida (opcional)
	Description  string
	Quantity     decimal.Decimal
	Unit         string
	Note         string
	CreatedBy    string
	CreatedAt    time.Time
}
