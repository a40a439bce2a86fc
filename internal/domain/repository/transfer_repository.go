package repository

import (
	"context"
	"time"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// TransferFilter filtros opcionales del listado de traslados.
type TransferFilter struct {
	WarehouseID string // origen o destino
	Status      string
}

// TransferUpdate campos aplicables en updates masivos.
// Solo se aplican los punteros no nulos.
type TransferUpdate struct {
	Status          *string
	Method          *string
	Notes           *string
	DeliveryAddress *string
}

// TransferRepository define el puerto de persistencia de traslados (DIP).
type TransferRepository interface {
	Create(ctx context.Context, t *entity.BranchStockTransfer) error
	GetByID(ctx context.Context, id string) (*entity.BranchStockTransfer, error)
	List(ctx context.Context, f TransferFilter) ([]*entity.BranchStockTransfer, error)
	ListByNotification(ctx context.Context, notificationID string) ([]*entity.BranchStockTransfer, error)
	UpdateStatus(ctx context.Context, id, status, userID, notes string, at time.Time) error
	// BulkUpdate aplica el mismo update a todos los ids; devuelve cuántas filas
	// existían y fueron modificadas (ids desconocidos solo reducen el conteo).
	BulkUpdate(ctx context.Context, ids []string, u TransferUpdate, userID string, at time.Time) (int64, error)
	CountByStatus(ctx context.Context, warehouseID string, since time.Time) ([]StatusCount, error)
}
