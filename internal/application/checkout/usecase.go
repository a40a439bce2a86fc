package checkout

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/availability"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Coordinator orquesta el ledger de stock y el motor de notificaciones durante
// la venta en el POS: decide por línea si el stock local alcanza, crea
// notificaciones por los faltantes y aplica el descuento atómico al cierre.
type Coordinator struct {
	txRunner    TxRunner
	resolver    *availability.Resolver
	notifEngine *notification.Engine
	stockRepo   repository.StockRepository
	selector    SupplierSelector
}

// NewCoordinator construye el caso de uso. selector nil usa FirstReportedSelector.
func NewCoordinator(
	txRunner TxRunner,
	resolver *availability.Resolver,
	notifEngine *notification.Engine,
	stockRepo repository.StockRepository,
	selector SupplierSelector,
) *Coordinator {
	if selector == nil {
		selector = FirstReportedSelector{}
	}
	return &Coordinator{
		txRunner:    txRunner,
		resolver:    resolver,
		notifEngine: notifEngine,
		stockRepo:   stockRepo,
		selector:    selector,
	}
}

// CheckStockAndCreateNotifications compara cada línea contra el stock de la
// bodega del cajero y crea una notificación por cada faltante (por la cantidad
// faltante, no la solicitada). warehouseID viene de la sesión del cajero.
func (c *Coordinator) CheckStockAndCreateNotifications(ctx context.Context, warehouseID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if warehouseID == "" || in.UserID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	out := &dto.CheckoutResponse{
		WarehouseID: warehouseID,
		Lines:       make([]dto.CheckoutLineResult, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		local, err := c.stockRepo.GetQuantity(ctx, warehouseID, it.ItemID)
		if err != nil {
			return nil, err
		}
		line := dto.CheckoutLineResult{
			ItemID:       it.ItemID,
			RequestedQty: it.Quantity,
			LocalStock:   local,
		}
		if shortfall := it.Quantity - local; shortfall > 0 {
			line.Shortfall = shortfall
			avail, err := c.resolver.ResolveAvailability(ctx, it.ItemID, shortfall, warehouseID)
			if err != nil {
				return nil, err
			}
			if source, ok := c.selector.Select(branchesOf(avail), shortfall); ok {
				n, err := c.notifEngine.Create(ctx, notification.CreateInput{
					FromWarehouseID: warehouseID,
					ToWarehouseID:   source.WarehouseID,
					ItemID:          it.ItemID,
					RequestedQty:    shortfall,
					CreatedBy:       in.UserID,
				})
				if err != nil {
					return nil, err
				}
				line.NotificationID = n.ID
				line.SourceWarehouseID = source.WarehouseID
				out.NotificationsCreated++
			}
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// ProcessPosOrderStockUpdates descuenta el stock vendido al completar la orden.
// Todas las líneas se descuentan en una sola transacción: si alguna dejaría la
// cantidad en negativo, se aborta el lote completo sin efecto parcial. Los
// enlaces notificación->orden POS se fijan después del commit (fuera de la tx).
func (c *Coordinator) ProcessPosOrderStockUpdates(ctx context.Context, in dto.CommitStockRequest) error {
	if in.PosOrderID == "" || in.WarehouseID == "" || in.UserID == "" || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemID == "" || it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}

	err := c.txRunner.RunCheckout(ctx, func(stockRepo repository.StockRepository) error {
		for _, it := range in.Items {
			if err := stockRepo.Adjust(ctx, in.WarehouseID, it.ItemID, -it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Efectos posteriores al commit: un fallo aquí nunca revierte el descuento.
	for _, id := range in.NotificationIDs {
		if err := c.notifEngine.LinkToPosOrder(ctx, id, in.PosOrderID); err != nil {
			return err
		}
	}
	return nil
}

// LinkNotificationToPosOrder fija la referencia informativa. Idempotente.
func (c *Coordinator) LinkNotificationToPosOrder(ctx context.Context, notificationID, posOrderID string) error {
	return c.notifEngine.LinkToPosOrder(ctx, notificationID, posOrderID)
}

func branchesOf(avail *dto.AvailabilityResponse) []repository.BranchStock {
	out := make([]repository.BranchStock, 0, len(avail.Branches))
	for _, b := range avail.Branches {
		out = append(out, repository.BranchStock{
			WarehouseID:   b.WarehouseID,
			WarehouseName: b.WarehouseName,
			Quantity:      b.Quantity,
		})
	}
	return out
}
