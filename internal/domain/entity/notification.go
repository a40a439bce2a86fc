package entity

import "time"

// Estados de una notificación entre sucursales.
// PENDING -> ACKNOWLEDGED (opcional) -> ACCEPTED | REJECTED.
const (
	NotificationStatusPending      = "PENDING"
	NotificationStatusAcknowledged = "ACKNOWLEDGED"
	NotificationStatusAccepted     = "ACCEPTED"
	NotificationStatusRejected     = "REJECTED"
)

// ValidNotificationStatus verifica que el estado sea uno de los conocidos.
func ValidNotificationStatus(s string) bool {
	switch s {
	case NotificationStatusPending, NotificationStatusAcknowledged,
		NotificationStatusAccepted, NotificationStatusRejected:
		return true
	}
	return false
}

// BranchNotification es una solicitud de stock de una bodega a otra.
// FromWarehouseID solicita; ToWarehouseID responde.
type BranchNotification struct {
	ID               string
	FromWarehouseID  string
	ToWarehouseID    string
	ItemID           string
	RequestedQty     int64
	Status           string // PENDING, ACKNOWLEDGED, ACCEPTED, REJECTED
	RespondedBy      string
	RespondedAt      *time.Time
	ResponseNotes    string
	AssignedTo       string
	EstimatedTime    string
	LinkedPosOrderID *string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Terminal indica si la notificación ya recibió respuesta definitiva.
func (n *BranchNotification) Terminal() bool {
	return n.Status == NotificationStatusAccepted || n.Status == NotificationStatusRejected
}
