package sequence

import (
	"context"
	"fmt"
	"time"
)

// Secuenciador de códigos legibles. El estado es un value object propiedad
// del flujo que lo usa (formulario/sesión), no un contador global: se siembra
// una vez desde el máximo persistido y a partir de ahí incrementa en memoria.
// Next nunca relee la persistencia; tras aparecer un código de origen externo
// (p. ej. duplicar un pedido) hay que re-inicializar. La colisión residual
// entre dos sesiones la corta el índice único de la tabla, que aflora como
// código duplicado.

// Scanner obtiene el sufijo numérico máximo ya persistido para un prefijo.
type Scanner interface {
	MaxCodeNumber(ctx context.Context, prefix string) (int64, error)
}

// OrderScanner obtiene la secuencia máxima de números de pedido de un año.
type OrderScanner interface {
	MaxOrderNumber(ctx context.Context, year int) (int64, error)
}

// State contador en memoria para códigos PREFIX-NNN.
type State struct {
	prefix string
	last   int64
}

// Initialize siembra el estado con el máximo persistido del prefijo (0 si no
// hay ninguno). Llamar una vez por sesión antes del primer Next.
func Initialize(ctx context.Context, s Scanner, prefix string) (*State, error) {
	max, err := s.MaxCodeNumber(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("inicializar secuencia %s: %w", prefix, err)
	}
	return &State{prefix: prefix, last: max}, nil
}

// Next devuelve el siguiente código con formato PREFIX-NNN (relleno a 3
// dígitos). Dentro de una misma sesión nunca repite código.
func (s *State) Next() string {
	s.last++
	return Format(s.prefix, s.last)
}

// Last devuelve el último número emitido o sembrado.
func (s *State) Last() int64 { return s.last }

// Format construye un código PREFIX-NNN.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// OrderState contador en memoria para números de pedido N/YY, de ámbito anual.
type OrderState struct {
	year int
	last int64
}

// InitializeOrders siembra la secuencia anual de pedidos desde el máximo del
// año en curso.
func InitializeOrders(ctx context.Context, s OrderScanner, now time.Time) (*OrderState, error) {
	year := now.Year()
	max, err := s.MaxOrderNumber(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("inicializar secuencia de pedidos %d: %w", year, err)
	}
	return &OrderState{year: year, last: max}, nil
}

// Next devuelve la siguiente secuencia y el número formateado N/YY.
func (s *OrderState) Next() (int64, string) {
	s.last++
	return s.last, FormatOrder(s.last, s.year)
}

// Year devuelve el año de la secuencia.
func (s *OrderState) Year() int { return s.year }

// FormatOrder construye un número de pedido N/YY.
func FormatOrder(seq int64, year int) string {
	return fmt.Sprintf("%d/%02d", seq, year%100)
}
