package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de movimientos.
const (
	MovementKindLoad          = "LOAD"           // carga (delta >= 0)
	MovementKindUnload        = "UNLOAD"         // descarga (delta <= 0)
	MovementKindCreated       = "CREATED"        // alta de la unidad (delta 0)
	MovementKindModified      = "MODIFIED"       // modificación descriptiva (delta 0)
	MovementKindStatusChanged = "STATUS_CHANGED" // cambio de etapa o disponibilidad (delta 0)
)

// Movement es una entrada inmutable del libro de movimientos: registra un
// evento que cambió cantidad o estado de una unidad de stock. El libro es
// append-only; una corrección es a su vez una entrada nueva.
type Movement struct {
	ID            string
	ItemCode      string // referencia al StockItem; el libro no posee su ciclo de vida
	Kind          string
	QuantityDelta decimal.Decimal // firmado; 0 en los tipos sin cantidad
	Actor         string          // identidad del usuario que originó el evento
	OccurredAt    time.Time
	Note          string
	LinkedJob     string // trabajo de producción asociado (opcional)
	LinkedClient  string // CLI-NNN (opcional)
	CreatedAt     time.Time
}
