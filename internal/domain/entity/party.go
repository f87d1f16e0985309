package entity

import "time"

// Tipos de tercero del registro.
const (
	PartyTypeSupplier = "supplier" // proveedor (FOR-NNN)
	PartyTypeClient   = "client"   // cliente (CLI-NNN)
)

// PartyPrefix devuelve el prefijo de código para un tipo de tercero.
func PartyPrefix(partyType string) string {
	switch partyType {
	case PartyTypeSupplier:
		return "FOR"
	case PartyTypeClient:
		return "CLI"
	}
	return ""
}

// Party es un tercero del registro: proveedor o cliente.
type Party struct {
	Code      string // FOR-NNN o CLI-NNN, inmutable
	Type      string
	Name      string
	VATNumber string
	Email     string
	Phone     string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
