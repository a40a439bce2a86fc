package repository

import (
	"context"
	"time"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// StatusCount conteo de entidades agrupadas por estado.
type StatusCount struct {
	Status string
	Count  int64
}

// ItemRequestCount frecuencia de solicitud de un item dentro de una ventana.
type ItemRequestCount struct {
	ItemID   string
	ItemName string
	Count    int64
}

// NotificationPatch campos opcionales del update administrativo.
// Solo se aplican los punteros no nulos.
type NotificationPatch struct {
	Status        *string
	AssignedTo    *string
	Notes         *string
	EstimatedTime *string
}

// NotificationRepository define el puerto de persistencia de notificaciones
// entre sucursales (DIP).
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.BranchNotification) error
	GetByID(ctx context.Context, id string) (*entity.BranchNotification, error)
	// UpdateStatusIf transiciona el estado solo si el estado actual es expected
	// (update condicional, una sola sentencia). Devuelve false si la fila ya no
	// estaba en expected; el caller lo traduce a conflicto.
	UpdateStatusIf(ctx context.Context, id, expected, next, respondedBy, notes string, at time.Time) (bool, error)
	Patch(ctx context.Context, id string, p NotificationPatch) error
	// LinkPosOrder fija la referencia informativa a la orden POS. Idempotente.
	LinkPosOrder(ctx context.Context, id, posOrderID string) error
	ListRecent(ctx context.Context, warehouseID string, since time.Time, limit int) ([]*entity.BranchNotification, error)
	// CountByStatus cuenta notificaciones que tocan la bodega (origen o destino)
	// desde since, agrupadas por estado.
	CountByStatus(ctx context.Context, warehouseID string, since time.Time) ([]StatusCount, error)
	// CountPendingIncoming cuenta notificaciones dirigidas a la bodega en estado
	// PENDING o ACKNOWLEDGED (sin ventana: es la bandeja de entrada viva).
	CountPendingIncoming(ctx context.Context, warehouseID string) (int64, error)
	// TopRequestedItems items más solicitados desde since; empates ordenados por
	// item_id ascendente para resultados deterministas.
	TopRequestedItems(ctx context.Context, since time.Time, limit int) ([]ItemRequestCount, error)
}

// NotificationResponseRepository define el puerto del historial de respuestas.
// Append-only: no hay update ni delete.
type NotificationResponseRepository interface {
	Create(ctx context.Context, r *entity.NotificationResponse) error
	ListByNotification(ctx context.Context, notificationID string) ([]*entity.NotificationResponse, error)
}
