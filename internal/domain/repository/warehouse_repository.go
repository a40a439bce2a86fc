package repository

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// WarehouseRepository define el puerto de lectura de bodegas (DIP).
// El CRUD de bodegas vive en el back office; el motor solo consulta.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	ListActive(ctx context.Context) ([]*entity.Warehouse, error)
}
