package entity

import "time"

// Estados del traslado físico de stock.
// REQUESTED -> IN_TRANSIT -> DELIVERED; CANCELLED desde cualquier estado no terminal.
const (
	TransferStatusRequested = "REQUESTED"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusDelivered = "DELIVERED"
	TransferStatusCancelled = "CANCELLED"
)

// ValidTransferStatus verifica que el estado sea uno de los conocidos.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferStatusRequested, TransferStatusInTransit,
		TransferStatusDelivered, TransferStatusCancelled:
		return true
	}
	return false
}

// BranchStockTransfer es el movimiento físico de stock entre bodegas,
// siempre anclado a exactamente una notificación. NotificationID es
// inmutable después de la creación.
type BranchStockTransfer struct {
	ID              string
	NotificationID  string
	FromWarehouseID string
	ToWarehouseID   string
	ItemID          string
	RequestedQty    int64
	Method          string
	DeliveryAddress string
	CustomerInfo    string
	Notes           string
	Status          string // REQUESTED, IN_TRANSIT, DELIVERED, CANCELLED
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
