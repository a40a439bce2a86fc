package dashboard

import (
	"context"
	"time"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Ventana por defecto del rollup operativo.
const defaultWindowDays = 7

const (
	recentLimit   = 10
	topItemsLimit = 5
)

// Aggregator compone los rollups de solo lectura para los tableros
// operativos: conteos por estado, bandeja de entrada pendiente, actividad
// reciente y items más solicitados. Nunca muta.
type Aggregator struct {
	notifRepo    repository.NotificationRepository
	transferRepo repository.TransferRepository
}

// NewAggregator construye el caso de uso.
func NewAggregator(notifRepo repository.NotificationRepository, transferRepo repository.TransferRepository) *Aggregator {
	return &Aggregator{notifRepo: notifRepo, transferRepo: transferRepo}
}

// Stats devuelve el rollup de la bodega dentro de la ventana (días hacia
// atrás; <= 0 usa la ventana por defecto de 7 días). La bodega cuenta como
// origen o destino; pendingIncoming solo como destino.
func (a *Aggregator) Stats(ctx context.Context, warehouseID string, windowDays int) (*dto.DashboardStatsResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	notifCounts, err := a.notifRepo.CountByStatus(ctx, warehouseID, since)
	if err != nil {
		return nil, err
	}
	transferCounts, err := a.transferRepo.CountByStatus(ctx, warehouseID, since)
	if err != nil {
		return nil, err
	}
	pendingIncoming, err := a.notifRepo.CountPendingIncoming(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	recent, err := a.notifRepo.ListRecent(ctx, warehouseID, since, recentLimit)
	if err != nil {
		return nil, err
	}
	topItems, err := a.notifRepo.TopRequestedItems(ctx, since, topItemsLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardStatsResponse{
		WarehouseID:           warehouseID,
		WindowDays:            windowDays,
		NotificationsByStatus: map[string]int64{},
		TransfersByStatus:     map[string]int64{},
		PendingIncoming:       pendingIncoming,
		Recent:                make([]dto.NotificationDTO, 0, len(recent)),
		TopItems:              make([]dto.TopItemDTO, 0, len(topItems)),
	}
	for _, c := range notifCounts {
		out.NotificationsByStatus[c.Status] = c.Count
	}
	for _, c := range transferCounts {
		out.TransfersByStatus[c.Status] = c.Count
	}
	for _, n := range recent {
		out.Recent = append(out.Recent, dto.NotificationFromEntity(n))
	}
	for _, t := range topItems {
		out.TopItems = append(out.TopItems, dto.TopItemDTO{ItemID: t.ItemID, ItemName: t.ItemName, Count: t.Count})
	}
	return out, nil
}
