package memory

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/checkout"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/transfer"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

var (
	_ notification.TxRunner = (*TxRunner)(nil)
	_ transfer.TxRunner     = (*TxRunner)(nil)
	_ checkout.TxRunner     = (*TxRunner)(nil)
)

// TxRunner versión en memoria del runner transaccional: toma un snapshot del
// estado tocado por la transacción y lo restaura si fn falla. Así los tests
// ejercen la misma semántica todo-o-nada que la versión PostgreSQL.
type TxRunner struct{ s *Store }

// NewTxRunner crea el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con repos de notificaciones; revierte si fn devuelve error.
func (r *TxRunner) Run(_ context.Context, fn func(
	notifRepo repository.NotificationRepository,
	respRepo repository.NotificationResponseRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	notifs, resps := r.s.snapshotNotifications()
	if err := fn(NewNotificationRepository(r.s), NewNotificationResponseRepository(r.s)); err != nil {
		r.s.restoreNotifications(notifs, resps)
		return err
	}
	return nil
}

// RunTransfer ejecuta fn con repos de notificaciones y traslados; revierte si fn falla.
func (r *TxRunner) RunTransfer(_ context.Context, fn func(
	notifRepo repository.NotificationRepository,
	transferRepo repository.TransferRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	notifs, resps := r.s.snapshotNotifications()
	transfers := r.s.snapshotTransfers()
	if err := fn(NewNotificationRepository(r.s), NewTransferRepository(r.s)); err != nil {
		r.s.restoreNotifications(notifs, resps)
		r.s.restoreTransfers(transfers)
		return err
	}
	return nil
}

// RunCheckout ejecuta fn con el ledger de stock; revierte si fn falla.
func (r *TxRunner) RunCheckout(_ context.Context, fn func(
	stockRepo repository.StockRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshotStock()
	if err := fn(NewStockRepository(r.s)); err != nil {
		r.s.restoreStock(snap)
		return err
	}
	return nil
}
