package checkout_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/availability"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/checkout"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
	"github.com/EmprendoHub/inventory-app-sub003/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	bodegaCaja     = "wh-caja"     // bodega del cajero
	bodegaRespaldo = "wh-respaldo" // bodega con stock de respaldo
	bodegaExtra    = "wh-extra"
	itemLampara    = "item-lampara"
	itemSilla      = "item-silla"
	usuarioPOS     = "user-pos"
)

func buildCoordinator(t *testing.T) (*checkout.Coordinator, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddWarehouse(entity.Warehouse{ID: bodegaCaja, Name: "Caja", Status: entity.WarehouseStatusActive})
	s.AddWarehouse(entity.Warehouse{ID: bodegaRespaldo, Name: "Respaldo", Status: entity.WarehouseStatusActive})
	s.AddWarehouse(entity.Warehouse{ID: bodegaExtra, Name: "Extra", Status: entity.WarehouseStatusActive})
	s.AddItem(entity.Item{ID: itemLampara, Name: "Lámpara LED"})
	s.AddItem(entity.Item{ID: itemSilla, Name: "Silla plegable"})

	resolver := availability.NewResolver(memory.NewStockRepository(s), memory.NewItemRepository(s), memory.NewWarehouseRepository(s))
	notifEngine := notification.NewEngine(
		memory.NewTxRunner(s),
		memory.NewNotificationRepository(s),
		memory.NewNotificationResponseRepository(s),
		memory.NewTransferRepository(s),
		memory.NewWarehouseRepository(s),
		memory.NewItemRepository(s),
	)
	c := checkout.NewCoordinator(
		memory.NewTxRunner(s),
		resolver,
		notifEngine,
		memory.NewStockRepository(s),
		nil, // selector por defecto: primera candidata reportada
	)
	return c, s
}

func checkoutReq(items ...dto.CheckoutItemDTO) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		SessionID:   "sess-1",
		Items:       items,
		PaymentType: "cash",
		TotalAmount: decimal.NewFromInt(100),
		UserID:      usuarioPOS,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckStockAndCreateNotifications
// ──────────────────────────────────────────────────────────────────────────────

// El cajero pide 3, tiene 1 local: la notificación se crea por el faltante de
// 2, no por los 3 solicitados.
func TestCheckStock_NotificaSoloElFaltante(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaCaja, itemLampara, 1)
	s.SetStock(bodegaRespaldo, itemLampara, 10)

	out, err := c.CheckStockAndCreateNotifications(context.Background(), bodegaCaja,
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 3}))
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	line := out.Lines[0]
	assert.Equal(t, int64(1), line.LocalStock)
	assert.Equal(t, int64(2), line.Shortfall)
	assert.Equal(t, bodegaRespaldo, line.SourceWarehouseID)
	require.NotEmpty(t, line.NotificationID)
	assert.Equal(t, 1, out.NotificationsCreated)

	n := s.Notification(line.NotificationID)
	require.NotNil(t, n)
	assert.Equal(t, int64(2), n.RequestedQty, "la notificación pide el faltante, no lo solicitado")
	assert.Equal(t, bodegaCaja, n.FromWarehouseID)
	assert.Equal(t, bodegaRespaldo, n.ToWarehouseID)
	assert.Equal(t, entity.NotificationStatusPending, n.Status)
}

func TestCheckStock_StockLocalSuficienteNoNotifica(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaCaja, itemLampara, 5)

	out, err := c.CheckStockAndCreateNotifications(context.Background(), bodegaCaja,
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 3}))
	require.NoError(t, err)

	assert.Equal(t, 0, out.NotificationsCreated)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(0), out.Lines[0].Shortfall)
	assert.Empty(t, out.Lines[0].NotificationID)
	assert.Empty(t, s.Notifications())
}

// Sin ninguna bodega candidata la línea registra el faltante pero no se crea
// notificación: no hay a quién pedirle.
func TestCheckStock_SinCandidatasNoNotifica(t *testing.T) {
	c, _ := buildCoordinator(t)

	out, err := c.CheckStockAndCreateNotifications(context.Background(), bodegaCaja,
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 2}))
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(2), out.Lines[0].Shortfall)
	assert.Empty(t, out.Lines[0].NotificationID)
	assert.Equal(t, 0, out.NotificationsCreated)
}

// El selector por defecto toma la candidata con más stock; a igual cantidad,
// la de id menor.
func TestCheckStock_SelectorEligeMayorStock(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaRespaldo, itemLampara, 3)
	s.SetStock(bodegaExtra, itemLampara, 9)

	out, err := c.CheckStockAndCreateNotifications(context.Background(), bodegaCaja,
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 2}))
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.Equal(t, bodegaExtra, out.Lines[0].SourceWarehouseID)
}

func TestCheckStock_MultilineaMixta(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaCaja, itemLampara, 10)
	s.SetStock(bodegaRespaldo, itemSilla, 4)

	out, err := c.CheckStockAndCreateNotifications(context.Background(), bodegaCaja, checkoutReq(
		dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 2},
		dto.CheckoutItemDTO{ItemID: itemSilla, Quantity: 3},
	))
	require.NoError(t, err)

	require.Len(t, out.Lines, 2)
	assert.Empty(t, out.Lines[0].NotificationID, "la lámpara alcanza con stock local")
	assert.NotEmpty(t, out.Lines[1].NotificationID, "la silla no tiene stock local")
	assert.Equal(t, 1, out.NotificationsCreated)
}

func TestCheckStock_ValidaEntrada(t *testing.T) {
	c, _ := buildCoordinator(t)
	ctx := context.Background()

	_, err := c.CheckStockAndCreateNotifications(ctx, bodegaCaja, checkoutReq())
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin items no hay checkout")

	_, err = c.CheckStockAndCreateNotifications(ctx, "",
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la bodega viene de la sesión y es obligatoria")

	_, err = c.CheckStockAndCreateNotifications(ctx, bodegaCaja,
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 0}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero es inválida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProcessPosOrderStockUpdates
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitStock_DescuentaTodasLasLineas(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaCaja, itemLampara, 5)
	s.SetStock(bodegaCaja, itemSilla, 3)

	err := c.ProcessPosOrderStockUpdates(context.Background(), dto.CommitStockRequest{
		PosOrderID:  "pos-77",
		WarehouseID: bodegaCaja,
		UserID:      usuarioPOS,
		Items: []dto.CheckoutItemDTO{
			{ItemID: itemLampara, Quantity: 2},
			{ItemID: itemSilla, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), s.StockOf(bodegaCaja, itemLampara))
	assert.Equal(t, int64(0), s.StockOf(bodegaCaja, itemSilla), "llegar a cero es válido")
}

// Si una línea dejaría la cantidad en negativo, el lote completo se revierte:
// ninguna línea anterior queda descontada.
func TestCommitStock_TodoONada(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaCaja, itemLampara, 5)
	s.SetStock(bodegaCaja, itemSilla, 1)

	err := c.ProcessPosOrderStockUpdates(context.Background(), dto.CommitStockRequest{
		PosOrderID:  "pos-78",
		WarehouseID: bodegaCaja,
		UserID:      usuarioPOS,
		Items: []dto.CheckoutItemDTO{
			{ItemID: itemLampara, Quantity: 2}, // alcanzaría
			{ItemID: itemSilla, Quantity: 4},   // dejaría -3
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), s.StockOf(bodegaCaja, itemLampara), "la línea válida también se revierte")
	assert.Equal(t, int64(1), s.StockOf(bodegaCaja, itemSilla))
}

// Los enlaces notificación -> orden POS se fijan después del commit.
func TestCommitStock_EnlazaNotificaciones(t *testing.T) {
	c, s := buildCoordinator(t)
	s.SetStock(bodegaCaja, itemLampara, 1)
	s.SetStock(bodegaRespaldo, itemLampara, 10)

	out, err := c.CheckStockAndCreateNotifications(context.Background(), bodegaCaja,
		checkoutReq(dto.CheckoutItemDTO{ItemID: itemLampara, Quantity: 3}))
	require.NoError(t, err)
	notifID := out.Lines[0].NotificationID
	require.NotEmpty(t, notifID)

	err = c.ProcessPosOrderStockUpdates(context.Background(), dto.CommitStockRequest{
		PosOrderID:      "pos-79",
		WarehouseID:     bodegaCaja,
		UserID:          usuarioPOS,
		Items:           []dto.CheckoutItemDTO{{ItemID: itemLampara, Quantity: 1}},
		NotificationIDs: []string{notifID},
	})
	require.NoError(t, err)

	n := s.Notification(notifID)
	require.NotNil(t, n.LinkedPosOrderID)
	assert.Equal(t, "pos-79", *n.LinkedPosOrderID)
}

func TestCommitStock_ValidaEntrada(t *testing.T) {
	c, _ := buildCoordinator(t)
	ctx := context.Background()
	base := dto.CommitStockRequest{
		PosOrderID:  "pos-80",
		WarehouseID: bodegaCaja,
		UserID:      usuarioPOS,
		Items:       []dto.CheckoutItemDTO{{ItemID: itemLampara, Quantity: 1}},
	}

	sinOrden := base
	sinOrden.PosOrderID = ""
	assert.ErrorIs(t, c.ProcessPosOrderStockUpdates(ctx, sinOrden), domain.ErrInvalidInput)

	sinItems := base
	sinItems.Items = nil
	assert.ErrorIs(t, c.ProcessPosOrderStockUpdates(ctx, sinItems), domain.ErrInvalidInput)

	qtyNegativa := base
	qtyNegativa.Items = []dto.CheckoutItemDTO{{ItemID: itemLampara, Quantity: -1}}
	assert.ErrorIs(t, c.ProcessPosOrderStockUpdates(ctx, qtyNegativa), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SupplierSelector
// ──────────────────────────────────────────────────────────────────────────────

func TestFirstReportedSelector(t *testing.T) {
	sel := checkout.FirstReportedSelector{}

	_, ok := sel.Select(nil, 3)
	assert.False(t, ok, "sin candidatas no hay fuente")

	src, ok := sel.Select([]repository.BranchStock{
		{WarehouseID: "wh-1", Quantity: 9},
		{WarehouseID: "wh-2", Quantity: 4},
	}, 3)
	require.True(t, ok)
	assert.Equal(t, "wh-1", src.WarehouseID)
}
