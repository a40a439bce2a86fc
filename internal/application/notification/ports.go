package notification

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la respuesta de auditoría y la
// transición de estado se persistan como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		notifRepo repository.NotificationRepository,
		respRepo repository.NotificationResponseRepository,
	) error) error
}
