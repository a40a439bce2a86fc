package availability

import (
	"context"
	"errors"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Resolver responde consultas de disponibilidad de stock entre bodegas.
// Solo lectura: nunca muta el ledger.
type Resolver struct {
	stockRepo     repository.StockRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewResolver construye el caso de uso.
func NewResolver(stockRepo repository.StockRepository, itemRepo repository.ItemRepository, warehouseRepo repository.WarehouseRepository) *Resolver {
	return &Resolver{stockRepo: stockRepo, itemRepo: itemRepo, warehouseRepo: warehouseRepo}
}

// ListActiveWarehouses devuelve las bodegas que participan en las consultas de
// disponibilidad (estado ACTIVE).
func (r *Resolver) ListActiveWarehouses(ctx context.Context) ([]*entity.Warehouse, error) {
	return r.warehouseRepo.ListActive(ctx)
}

// ResolveAvailability devuelve, por bodega ACTIVA distinta de excludeWarehouseID,
// la cantidad disponible del item (solo cantidades > 0), el total agregado y si
// alguna bodega individual puede cubrir la cantidad completa (una sola fuente,
// no suma entre bodegas).
func (r *Resolver) ResolveAvailability(ctx context.Context, itemID string, requestedQty int64, excludeWarehouseID string) (*dto.AvailabilityResponse, error) {
	if requestedQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := r.itemRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Item desconocido es entrada inválida para esta consulta
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}

	rows, err := r.stockRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	out := &dto.AvailabilityResponse{
		ItemID:       itemID,
		RequestedQty: requestedQty,
		Branches:     []dto.BranchAvailabilityDTO{},
	}
	for _, row := range rows {
		if row.WarehouseID == excludeWarehouseID || row.Quantity <= 0 {
			continue
		}
		out.Branches = append(out.Branches, dto.BranchAvailabilityDTO{
			WarehouseID:   row.WarehouseID,
			WarehouseName: row.WarehouseName,
			Quantity:      row.Quantity,
		})
		out.TotalAvailable += row.Quantity
		if row.Quantity >= requestedQty {
			out.CanFulfill = true
		}
	}
	return out, nil
}

// ResolveStockSplit particiona el stock del item entre la bodega actual (sumado)
// y el resto de bodegas ACTIVAS con cantidad positiva. Sin bodega actual, todo
// se reporta como "otras".
func (r *Resolver) ResolveStockSplit(ctx context.Context, itemID, currentWarehouseID string) (*dto.StockSplitResponse, error) {
	rows, err := r.stockRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	out := &dto.StockSplitResponse{
		ItemID:          itemID,
		OtherWarehouses: []dto.BranchAvailabilityDTO{},
	}
	for _, row := range rows {
		if currentWarehouseID != "" && row.WarehouseID == currentWarehouseID {
			out.CurrentWarehouseStock += row.Quantity
			continue
		}
		if row.Quantity > 0 {
			out.OtherWarehouses = append(out.OtherWarehouses, dto.BranchAvailabilityDTO{
				WarehouseID:   row.WarehouseID,
				WarehouseName: row.WarehouseName,
				Quantity:      row.Quantity,
			})
		}
	}
	return out, nil
}
