package dto

import (
	"time"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// NotificationDTO representación JSON de una notificación entre sucursales.
type NotificationDTO struct {
	ID               string     `json:"id"`
	FromWarehouseID  string     `json:"fromWarehouseId"`
	ToWarehouseID    string     `json:"toWarehouseId"`
	ItemID           string     `json:"itemId"`
	RequestedQty     int64      `json:"requestedQty"`
	Status           string     `json:"status"`
	RespondedBy      string     `json:"respondedBy,omitempty"`
	RespondedAt      *time.Time `json:"respondedAt,omitempty"`
	ResponseNotes    string     `json:"responseNotes,omitempty"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	EstimatedTime    string     `json:"estimatedTime,omitempty"`
	LinkedPosOrderID *string    `json:"linkedPosOrderId,omitempty"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NotificationFromEntity convierte la entidad a su DTO.
func NotificationFromEntity(n *entity.BranchNotification) NotificationDTO {
	return NotificationDTO{
		ID:               n.ID,
		FromWarehouseID:  n.FromWarehouseID,
		ToWarehouseID:    n.ToWarehouseID,
		ItemID:           n.ItemID,
		RequestedQty:     n.RequestedQty,
		Status:           n.Status,
		RespondedBy:      n.RespondedBy,
		RespondedAt:      n.RespondedAt,
		ResponseNotes:    n.ResponseNotes,
		AssignedTo:       n.AssignedTo,
		EstimatedTime:    n.EstimatedTime,
		LinkedPosOrderID: n.LinkedPosOrderID,
		CreatedBy:        n.CreatedBy,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

// ResponseDTO registro de auditoría de una respuesta.
type ResponseDTO struct {
	ID             string    `json:"id"`
	NotificationID string    `json:"notificationId"`
	ResponseType   string    `json:"responseType"`
	Message        string    `json:"message,omitempty"`
	ConfirmedQty   *int64    `json:"confirmedQty,omitempty"`
	EstimatedTime  string    `json:"estimatedTime,omitempty"`
	RespondedBy    string    `json:"respondedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ResponseFromEntity convierte la entidad a su DTO.
func ResponseFromEntity(r *entity.NotificationResponse) ResponseDTO {
	return ResponseDTO{
		ID:             r.ID,
		NotificationID: r.NotificationID,
		ResponseType:   r.ResponseType,
		Message:        r.Message,
		ConfirmedQty:   r.ConfirmedQty,
		EstimatedTime:  r.EstimatedTime,
		RespondedBy:    r.RespondedBy,
		CreatedAt:      r.CreatedAt,
	}
}

// NotificationDetailResponse notificación con su historial y traslados.
type NotificationDetailResponse struct {
	Notification NotificationDTO `json:"notification"`
	Responses    []ResponseDTO   `json:"responses"`
	Transfers    []TransferDTO   `json:"transfers"`
}

// CreateNotificationRequest body para crear una notificación manual.
type CreateNotificationRequest struct {
	FromWarehouseID string `json:"fromWarehouseId"`
	ToWarehouseID   string `json:"toWarehouseId"`
	ItemID          string `json:"itemId"`
	RequestedQty    int64  `json:"requestedQty"`
}

// RespondNotificationRequest body para POST /api/notifications/:id.
type RespondNotificationRequest struct {
	ResponseType  string `json:"responseType"`
	RespondedBy   string `json:"respondedBy"`
	Message       string `json:"message,omitempty"`
	ConfirmedQty  *int64 `json:"confirmedQty,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
}

// PatchNotificationRequest body para PATCH /api/notifications/:id (override
// administrativo; no re-valida el orden de la máquina de estados).
type PatchNotificationRequest struct {
	Status        *string `json:"status,omitempty"`
	AssignedTo    *string `json:"assignedTo,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	EstimatedTime *string `json:"estimatedTime,omitempty"`
}
