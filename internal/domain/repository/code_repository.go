package repository

import "context"

// CodeRepository escanea los códigos ya persistidos para sembrar el
// secuenciador. Implementa sequence.Scanner y sequence.OrderScanner.
type CodeRepository interface {
	// MaxCodeNumber devuelve el mayor sufijo numérico entre los códigos
	// existentes del prefijo (0 si no hay ninguno).
	MaxCodeNumber(ctx context.Context, prefix string) (int64, error)
	// MaxOrderNumber devuelve la mayor secuencia de pedido del año (0 si
	// no hay ninguna).
	MaxOrderNumber(ctx context.Context, year int) (int64, error)
}
