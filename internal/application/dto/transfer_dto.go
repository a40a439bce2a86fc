package dto

import (
	"time"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// TransferDTO representación JSON de un traslado entre bodegas.
type TransferDTO struct {
	ID              string    `json:"id"`
	NotificationID  string    `json:"notificationId"`
	FromWarehouseID string    `json:"fromWarehouseId"`
	ToWarehouseID   string    `json:"toWarehouseId"`
	ItemID          string    `json:"itemId"`
	RequestedQty    int64     `json:"requestedQty"`
	Method          string    `json:"method,omitempty"`
	DeliveryAddress string    `json:"deliveryAddress,omitempty"`
	CustomerInfo    string    `json:"customerInfo,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"createdBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TransferFromEntity convierte la entidad a su DTO.
func TransferFromEntity(t *entity.BranchStockTransfer) TransferDTO {
	return TransferDTO{
		ID:              t.ID,
		NotificationID:  t.NotificationID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		ItemID:          t.ItemID,
		RequestedQty:    t.RequestedQty,
		Method:          t.Method,
		DeliveryAddress: t.DeliveryAddress,
		CustomerInfo:    t.CustomerInfo,
		Notes:           t.Notes,
		Status:          t.Status,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// WarehouseDTO datos básicos de una bodega en respuestas compuestas.
type WarehouseDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// TransferDetailResponse traslado con su notificación padre y ambas bodegas.
type TransferDetailResponse struct {
	Transfer      TransferDTO     `json:"transfer"`
	Notification  NotificationDTO `json:"notification"`
	FromWarehouse WarehouseDTO    `json:"fromWarehouse"`
	ToWarehouse   WarehouseDTO    `json:"toWarehouse"`
}

// CreateTransferRequest body para POST /api/notifications/transfers.
type CreateTransferRequest struct {
	NotificationID  string `json:"notificationId"`
	FromWarehouseID string `json:"fromWarehouseId"`
	ToWarehouseID   string `json:"toWarehouseId"`
	ItemID          string `json:"itemId"`
	RequestedQty    int64  `json:"requestedQty"`
	Method          string `json:"method,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	CustomerInfo    string `json:"customerInfo,omitempty"`
	Notes           string `json:"notes,omitempty"`
	CreatedBy       string `json:"createdBy"`
}

// UpdateTransferStatusRequest body para PATCH /api/notifications/transfers/:id.
type UpdateTransferStatusRequest struct {
	Status string `json:"status"`
	UserID string `json:"userId"`
	Notes  string `json:"notes,omitempty"`
}

// BulkUpdateTransfersRequest body para PUT /api/notifications/transfers.
type BulkUpdateTransfersRequest struct {
	TransferIDs []string           `json:"transferIds"`
	Updates     TransferUpdatesDTO `json:"updates"`
	UserID      string             `json:"userId"`
}

// TransferUpdatesDTO campos aplicables en el update masivo.
type TransferUpdatesDTO struct {
	Status          *string `json:"status,omitempty"`
	Method          *string `json:"method,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
}

// BulkUpdateTransfersResponse resultado del update masivo.
type BulkUpdateTransfersResponse struct {
	UpdatedCount int64 `json:"updatedCount"`
}
