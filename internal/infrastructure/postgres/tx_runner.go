package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/checkout"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/transfer"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Ensure TxRunner implements the application TxRunner ports.
var _ notification.TxRunner = (*TxRunner)(nil)
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de notificaciones y respuestas
// atados a la tx, y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	notifRepo repository.NotificationRepository,
	respRepo repository.NotificationResponseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewNotificationRepository(tx), NewNotificationResponseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción con los repos de notificaciones y
// traslados (verificación del padre + inserción del traslado como unidad).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	notifRepo repository.NotificationRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewNotificationRepository(tx), NewTransferRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout inicia una transacción con el ledger de stock atado a la tx
// (descuento todo-o-nada de las líneas de una orden POS).
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
