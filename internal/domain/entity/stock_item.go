package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category clasifica el material de una unidad de stock.
type Category string

const (
	CategoryCardboard Category = "cardboard" // lote de cartón (hojas)
	CategoryInk       Category = "ink"       // tinta
	CategoryPolymer   Category = "polymer"   // polímero
	CategoryDie       Category = "die"       // troquel
)

// Prefix devuelve el prefijo de código de la categoría.
// CTN, FOR, PLM y CLI son superficie de compatibilidad con los códigos ya emitidos.
func (c Category) Prefix() string {
	switch c {
	case CategoryCardboard:
		return "CTN"
	case CategoryInk:
		return "TIN"
	case CategoryPolymer:
		return "PLM"
	case CategoryDie:
		return "TRQ"
	}
	return ""
}

// Valid indica si la categoría es una de las conocidas.
func (c Category) Valid() bool {
	return c.Prefix() != ""
}

// HasLifecycle indica si la categoría usa el ciclo de pedido completo
// (AWAITING_ORDER → INCOMING → IN_STOCK → DEPLETED). Las demás categorías
// se reducen a disponible/no disponible, ortogonal a la cantidad.
func (c Category) HasLifecycle() bool {
	return c == CategoryCardboard
}

// Stage etapa del ciclo de vida de un lote de cartón.
type Stage string

const (
	StageAwaitingOrder Stage = "AWAITING_ORDER" // pendiente de pedir al proveedor
	StageIncoming      Stage = "INCOMING"       // pedido, en espera de entrega
	StageInStock       Stage = "IN_STOCK"       // en almacén, utilizable
	StageDepleted      Stage = "DEPLETED"       // cantidad agotada
)

// StockItem representa una unidad de material rastreable: un lote de cartón,
// una tinta, un polímero o un troquel. El código es inmutable una vez asignado.
type StockItem struct {
	Code              string
	Category          Category
	Description       string
	QuantityOnHand    decimal.Decimal // invariante: nunca negativa
	Unit              string          // hojas, kg, uds
	Available         bool            // usable/retirado; independiente de la cantidad
	Stage             Stage           // sólo cartón; vacío en las demás categorías
	Threshold         *decimal.Decimal // mínimo de reposición; nil = sin aviso
	SupplierCode      string          // FOR-NNN
	ClientCode        string          // CLI-NNN
	JobRef            string          // referencia del trabajo de producción
	Format            string          // formato de hoja (ej. 100x140)
	Yield             *decimal.Decimal // hojas por corte (poses); nil si no aplica
	OrderedQty        decimal.Decimal  // cantidad pedida al proveedor (cartón)
	SupplierConfirmed bool
	DeliveryDate      *time.Time
	DDT               string // documento de transporte de la entrega
	Location          string // ubicación en almacén
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
