package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/application/stock"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var (
	_ stock.TxRunner  = (*TxRunner)(nil)
	_ orders.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta casos de uso dentro de una transacción de PostgreSQL.
// Construye repositorios atados a la tx y los pasa al callback: si el
// callback falla, todo (stock, libro de movimientos, códigos) se revierte.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el ejecutor de transacciones.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre una transacción y pasa repositorios de stock, movimientos y
// códigos atados a ella. Commit sólo si fn devuelve nil.
func (t *TxRunner) Run(ctx context.Context, fn func(
	items repository.StockItemRepository,
	movs repository.MovementRepository,
	codes repository.CodeRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(
		NewStockItemRepository(tx),
		NewMovementRepository(tx),
		NewCodeRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RunOrders abre una transacción para acuñar y persistir un número de
// pedido N/YY de forma atómica.
func (t *TxRunner) RunOrders(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	codes repository.CodeRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(
		NewPurchaseOrderRepository(tx),
		NewCodeRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
