package dto

// ErrorResponse cuerpo de error uniforme de la API. Details lleva datos
// adicionales cuando los hay (p. ej. faltante de stock).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// StockShortfall detalle de una descarga rechazada por stock insuficiente.
type StockShortfall struct {
	Available string `json:"available"`
	Requested string `json:"requested"`
	Shortfall string `json:"shortfall"`
}
