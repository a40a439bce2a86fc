package transfer

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La verificación de la notificación padre y la
// inserción del traslado son una unidad atómica.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		notifRepo repository.NotificationRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
