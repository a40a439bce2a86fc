package entity

import "time"

// Tipos de respuesta a una notificación. accept y reject son terminales;
// acknowledge marca la notificación como vista; info no cambia el estado.
const (
	ResponseTypeAccept      = "accept"
	ResponseTypeReject      = "reject"
	ResponseTypeAcknowledge = "acknowledge"
	ResponseTypeInfo        = "info"
)

// ValidResponseType verifica que el tipo de respuesta sea uno de los conocidos.
func ValidResponseType(t string) bool {
	switch t {
	case ResponseTypeAccept, ResponseTypeReject, ResponseTypeAcknowledge, ResponseTypeInfo:
		return true
	}
	return false
}

// ResponseStatusFor devuelve el estado de notificación que implica el tipo de
// respuesta, o "" si el tipo no produce transición (info).
func ResponseStatusFor(t string) string {
	switch t {
	case ResponseTypeAccept:
		return NotificationStatusAccepted
	case ResponseTypeReject:
		return NotificationStatusRejected
	case ResponseTypeAcknowledge:
		return NotificationStatusAcknowledged
	}
	return ""
}

// NotificationResponse es el registro de auditoría de una respuesta.
// Append-only: nunca se modifica ni se borra.
type NotificationResponse struct {
	ID             string
	NotificationID string
	ResponseType   string // accept, reject, acknowledge, info
	Message        string
	ConfirmedQty   *int64
	EstimatedTime  string
	RespondedBy    string
	CreatedAt      time.Time
}
