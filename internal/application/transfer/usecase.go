package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Engine es la máquina de estados del movimiento físico de stock:
// REQUESTED -> IN_TRANSIT -> DELIVERED, con CANCELLED desde cualquier estado
// no terminal. Todo traslado está anclado a exactamente una notificación.
type Engine struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	notifRepo     repository.NotificationRepository
	warehouseRepo repository.WarehouseRepository
}

// NewEngine construye el caso de uso.
func NewEngine(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	notifRepo repository.NotificationRepository,
	warehouseRepo repository.WarehouseRepository,
) *Engine {
	return &Engine{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		notifRepo:     notifRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateInput datos para crear un traslado.
type CreateInput struct {
	NotificationID  string
	FromWarehouseID string
	ToWarehouseID   string
	ItemID          string
	RequestedQty    int64
	Method          string
	DeliveryAddress string
	CustomerInfo    string
	Notes           string
	CreatedBy       string
}

// Create registra un traslado en estado REQUESTED. La notificación padre debe
// existir y sus bodegas e item deben coincidir con los del traslado; la
// verificación y la inserción ocurren en la misma transacción.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*entity.BranchStockTransfer, error) {
	if in.RequestedQty <= 0 || in.NotificationID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	t := &entity.BranchStockTransfer{
		ID:              uuid.New().String(),
		NotificationID:  in.NotificationID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ItemID:          in.ItemID,
		RequestedQty:    in.RequestedQty,
		Method:          in.Method,
		DeliveryAddress: in.DeliveryAddress,
		CustomerInfo:    in.CustomerInfo,
		Notes:           in.Notes,
		Status:          entity.TransferStatusRequested,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := e.txRunner.RunTransfer(ctx, func(
		notifRepo repository.NotificationRepository,
		transferRepo repository.TransferRepository,
	) error {
		n, err := notifRepo.GetByID(ctx, in.NotificationID)
		if err != nil {
			return err
		}
		if n.FromWarehouseID != in.FromWarehouseID || n.ToWarehouseID != in.ToWarehouseID || n.ItemID != in.ItemID {
			return domain.ErrInvalidInput
		}
		return transferRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus cambia el estado del traslado. Valida que el estado sea conocido
// pero no impone orden entre transiciones (relajación documentada: PATCH puede
// saltar de cualquier estado a cualquier otro).
func (e *Engine) UpdateStatus(ctx context.Context, transferID, newStatus, userID, notes string) (*entity.BranchStockTransfer, error) {
	if !entity.ValidTransferStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	if err := e.transferRepo.UpdateStatus(ctx, transferID, newStatus, userID, notes, time.Now()); err != nil {
		return nil, err
	}
	return e.transferRepo.GetByID(ctx, transferID)
}

// BulkUpdate aplica el mismo update a todos los traslados listados. Devuelve
// cuántos existían y fueron modificados; ids desconocidos solo reducen el
// conteo, no producen error.
func (e *Engine) BulkUpdate(ctx context.Context, transferIDs []string, u repository.TransferUpdate, userID string) (int64, error) {
	if len(transferIDs) == 0 {
		return 0, domain.ErrInvalidInput
	}
	if u.Status == nil && u.Method == nil && u.Notes == nil && u.DeliveryAddress == nil {
		return 0, domain.ErrInvalidInput
	}
	if u.Status != nil && !entity.ValidTransferStatus(*u.Status) {
		return 0, domain.ErrInvalidInput
	}
	return e.transferRepo.BulkUpdate(ctx, transferIDs, u, userID, time.Now())
}

// Get devuelve el traslado con su notificación padre y ambas bodegas.
func (e *Engine) Get(ctx context.Context, transferID string) (*entity.BranchStockTransfer, *entity.BranchNotification, *entity.Warehouse, *entity.Warehouse, error) {
	t, err := e.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	n, err := e.notifRepo.GetByID(ctx, t.NotificationID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	from, err := e.warehouseRepo.GetByID(ctx, t.FromWarehouseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	to, err := e.warehouseRepo.GetByID(ctx, t.ToWarehouseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return t, n, from, to, nil
}

// List devuelve traslados con filtros opcionales por bodega (origen o destino)
// y estado.
func (e *Engine) List(ctx context.Context, f repository.TransferFilter) ([]*entity.BranchStockTransfer, error) {
	return e.transferRepo.List(ctx, f)
}
