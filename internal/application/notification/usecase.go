package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Engine es la máquina de estados de notificaciones entre sucursales:
// PENDING -> ACKNOWLEDGED (opcional) -> ACCEPTED | REJECTED.
type Engine struct {
	txRunner      TxRunner
	notifRepo     repository.NotificationRepository
	respRepo      repository.NotificationResponseRepository
	transferRepo  repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
}

// NewEngine construye el caso de uso.
func NewEngine(
	txRunner TxRunner,
	notifRepo repository.NotificationRepository,
	respRepo repository.NotificationResponseRepository,
	transferRepo repository.TransferRepository,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
) *Engine {
	return &Engine{
		txRunner:      txRunner,
		notifRepo:     notifRepo,
		respRepo:      respRepo,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
	}
}

// CreateInput datos para crear una notificación.
type CreateInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	ItemID          string
	RequestedQty    int64
	CreatedBy       string
}

// Create registra una solicitud de stock de una bodega a otra en estado PENDING.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*entity.BranchNotification, error) {
	if in.RequestedQty <= 0 || in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := e.warehouseRepo.GetByID(ctx, in.FromWarehouseID); err != nil {
		return nil, err
	}
	if _, err := e.warehouseRepo.GetByID(ctx, in.ToWarehouseID); err != nil {
		return nil, err
	}
	if _, err := e.itemRepo.GetByID(ctx, in.ItemID); err != nil {
		return nil, err
	}

	now := time.Now()
	n := &entity.BranchNotification{
		ID:              uuid.New().String(),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ItemID:          in.ItemID,
		RequestedQty:    in.RequestedQty,
		Status:          entity.NotificationStatusPending,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := e.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// RespondInput datos de una respuesta formal a una notificación.
type RespondInput struct {
	ResponseType  string
	RespondedBy   string
	Message       string
	ConfirmedQty  *int64
	EstimatedTime string
}

// Respond agrega una entrada al historial de respuestas y, si el tipo implica
// transición (accept/reject/acknowledge), actualiza el estado de la
// notificación en la misma transacción. La transición es un update condicional
// guardado por el estado que esta llamada observó: si otra respuesta o una
// aceptación rápida se cuela en medio, esta pierde con ErrAlreadyProcessed y
// su entrada del historial se revierte con la transacción.
func (e *Engine) Respond(ctx context.Context, notificationID string, in RespondInput) (*entity.NotificationResponse, error) {
	if !entity.ValidResponseType(in.ResponseType) {
		return nil, domain.ErrInvalidInput
	}
	n, err := e.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp := &entity.NotificationResponse{
		ID:             uuid.New().String(),
		NotificationID: notificationID,
		ResponseType:   in.ResponseType,
		Message:        in.Message,
		ConfirmedQty:   in.ConfirmedQty,
		EstimatedTime:  in.EstimatedTime,
		RespondedBy:    in.RespondedBy,
		CreatedAt:      now,
	}

	err = e.txRunner.Run(ctx, func(
		notifRepo repository.NotificationRepository,
		respRepo repository.NotificationResponseRepository,
	) error {
		if err := respRepo.Create(ctx, resp); err != nil {
			return err
		}
		if next := entity.ResponseStatusFor(in.ResponseType); next != "" {
			ok, err := notifRepo.UpdateStatusIf(ctx, notificationID,
				n.Status, next, in.RespondedBy, in.Message, now)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAlreadyProcessed
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Accept es la aceptación rápida desde el encabezado. Precondiciones: la
// notificación existe, está PENDING y el usuario pertenece a la bodega destino.
// La transición PENDING -> ACCEPTED es un único update condicional: bajo
// invocaciones concurrentes solo una gana y la otra recibe ErrAlreadyProcessed.
func (e *Engine) Accept(ctx context.Context, notificationID, actingUserID, actingWarehouseID string) (*entity.BranchNotification, error) {
	n, err := e.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	// La afiliación se verifica antes que el estado: un usuario de otra bodega
	// siempre recibe acceso denegado, sin importar el estado actual.
	if actingWarehouseID == "" || actingWarehouseID != n.ToWarehouseID {
		return nil, domain.ErrForbidden
	}

	ok, err := e.notifRepo.UpdateStatusIf(ctx, notificationID,
		entity.NotificationStatusPending, entity.NotificationStatusAccepted,
		actingUserID, "aceptación rápida", time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyProcessed
	}
	return e.notifRepo.GetByID(ctx, notificationID)
}

// Patch aplica el override administrativo. No re-valida el orden de la máquina
// de estados: los callers son operadores de confianza (limitación documentada).
func (e *Engine) Patch(ctx context.Context, notificationID string, p repository.NotificationPatch) (*entity.BranchNotification, error) {
	if p.Status != nil && !entity.ValidNotificationStatus(*p.Status) {
		return nil, domain.ErrInvalidInput
	}
	if err := e.notifRepo.Patch(ctx, notificationID, p); err != nil {
		return nil, err
	}
	return e.notifRepo.GetByID(ctx, notificationID)
}

// Get devuelve la notificación con su historial de respuestas y sus traslados.
func (e *Engine) Get(ctx context.Context, notificationID string) (*entity.BranchNotification, []*entity.NotificationResponse, []*entity.BranchStockTransfer, error) {
	n, err := e.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, nil, nil, err
	}
	responses, err := e.respRepo.ListByNotification(ctx, notificationID)
	if err != nil {
		return nil, nil, nil, err
	}
	transfers, err := e.transferRepo.ListByNotification(ctx, notificationID)
	if err != nil {
		return nil, nil, nil, err
	}
	return n, responses, transfers, nil
}

// LinkToPosOrder fija la referencia informativa a la orden POS que originó la
// notificación. Idempotente: repetir el mismo enlace no es error.
func (e *Engine) LinkToPosOrder(ctx context.Context, notificationID, posOrderID string) error {
	if notificationID == "" || posOrderID == "" {
		return domain.ErrInvalidInput
	}
	return e.notifRepo.LinkPosOrder(ctx, notificationID, posOrderID)
}
