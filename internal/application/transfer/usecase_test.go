package transfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/transfer"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
	"github.com/EmprendoHub/inventory-app-sub003/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	bodegaNorte = "wh-norte"
	bodegaSur   = "wh-sur"
	itemCable   = "item-cable"
	usuarioOps  = "user-ops"
)

// buildEngine arma el motor de traslados y una notificación padre ya creada.
func buildEngine(t *testing.T) (*transfer.Engine, *entity.BranchNotification, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddWarehouse(entity.Warehouse{ID: bodegaNorte, Name: "Norte", Status: entity.WarehouseStatusActive})
	s.AddWarehouse(entity.Warehouse{ID: bodegaSur, Name: "Sur", Status: entity.WarehouseStatusActive})
	s.AddItem(entity.Item{ID: itemCable, Name: "Cable 12AWG"})

	notifEngine := notification.NewEngine(
		memory.NewTxRunner(s),
		memory.NewNotificationRepository(s),
		memory.NewNotificationResponseRepository(s),
		memory.NewTransferRepository(s),
		memory.NewWarehouseRepository(s),
		memory.NewItemRepository(s),
	)
	parent, err := notifEngine.Create(context.Background(), notification.CreateInput{
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaSur,
		ItemID:          itemCable,
		RequestedQty:    6,
		CreatedBy:       usuarioOps,
	})
	require.NoError(t, err)

	e := transfer.NewEngine(
		memory.NewTxRunner(s),
		memory.NewTransferRepository(s),
		memory.NewNotificationRepository(s),
		memory.NewWarehouseRepository(s),
	)
	return e, parent, s
}

func createTransfer(t *testing.T, e *transfer.Engine, parent *entity.BranchNotification) *entity.BranchStockTransfer {
	t.Helper()
	tr, err := e.Create(context.Background(), transfer.CreateInput{
		NotificationID:  parent.ID,
		FromWarehouseID: parent.FromWarehouseID,
		ToWarehouseID:   parent.ToWarehouseID,
		ItemID:          parent.ItemID,
		RequestedQty:    parent.RequestedQty,
		Method:          "domicilio",
		CreatedBy:       usuarioOps,
	})
	require.NoError(t, err)
	return tr
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TrasladoQuedaSolicitado(t *testing.T) {
	e, parent, s := buildEngine(t)

	tr := createTransfer(t, e, parent)

	assert.Equal(t, entity.TransferStatusRequested, tr.Status)
	assert.Equal(t, parent.ID, tr.NotificationID)
	require.NotNil(t, s.Transfer(tr.ID))
}

func TestCreate_SinNotificacionPadre(t *testing.T) {
	e, _, _ := buildEngine(t)

	_, err := e.Create(context.Background(), transfer.CreateInput{
		NotificationID:  "",
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaSur,
		ItemID:          itemCable,
		RequestedQty:    1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "todo traslado exige notificación padre")
}

func TestCreate_PadreInexistente(t *testing.T) {
	e, _, _ := buildEngine(t)

	_, err := e.Create(context.Background(), transfer.CreateInput{
		NotificationID:  "no-existe",
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaSur,
		ItemID:          itemCable,
		RequestedQty:    1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las bodegas y el item del traslado deben coincidir con los del padre.
func TestCreate_InconsistenteConPadre(t *testing.T) {
	e, parent, _ := buildEngine(t)

	_, err := e.Create(context.Background(), transfer.CreateInput{
		NotificationID:  parent.ID,
		FromWarehouseID: parent.ToWarehouseID, // invertidas
		ToWarehouseID:   parent.FromWarehouseID,
		ItemID:          parent.ItemID,
		RequestedQty:    1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.Create(context.Background(), transfer.CreateInput{
		NotificationID:  parent.ID,
		FromWarehouseID: parent.FromWarehouseID,
		ToWarehouseID:   parent.ToWarehouseID,
		ItemID:          "item-otro",
		RequestedQty:    1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	transfers, lerr := e.List(context.Background(), repository.TransferFilter{})
	require.NoError(t, lerr)
	assert.Empty(t, transfers, "nada debe persistirse cuando la verificación falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_AvanzaEstado(t *testing.T) {
	e, parent, _ := buildEngine(t)
	tr := createTransfer(t, e, parent)

	out, err := e.UpdateStatus(context.Background(), tr.ID, entity.TransferStatusInTransit, usuarioOps, "salió en ruta")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusInTransit, out.Status)
	assert.Equal(t, "salió en ruta", out.Notes)
}

// No hay orden impuesto entre estados: un traslado entregado puede volver a
// REQUESTED vía PATCH (relajación deliberada para correcciones operativas).
func TestUpdateStatus_SinOrdenImpuesto(t *testing.T) {
	e, parent, _ := buildEngine(t)
	ctx := context.Background()
	tr := createTransfer(t, e, parent)

	_, err := e.UpdateStatus(ctx, tr.ID, entity.TransferStatusDelivered, usuarioOps, "")
	require.NoError(t, err)

	out, err := e.UpdateStatus(ctx, tr.ID, entity.TransferStatusRequested, usuarioOps, "")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusRequested, out.Status)
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	e, parent, _ := buildEngine(t)
	tr := createTransfer(t, e, parent)

	_, err := e.UpdateStatus(context.Background(), tr.ID, "EN_CAMINO", usuarioOps, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_TrasladoInexistente(t *testing.T) {
	e, _, _ := buildEngine(t)

	_, err := e.UpdateStatus(context.Background(), "no-existe", entity.TransferStatusInTransit, usuarioOps, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las notas vacías no pisan las existentes.
func TestUpdateStatus_NotasVaciasNoPisan(t *testing.T) {
	e, parent, _ := buildEngine(t)
	ctx := context.Background()
	tr := createTransfer(t, e, parent)

	_, err := e.UpdateStatus(ctx, tr.ID, entity.TransferStatusInTransit, usuarioOps, "frágil")
	require.NoError(t, err)

	out, err := e.UpdateStatus(ctx, tr.ID, entity.TransferStatusDelivered, usuarioOps, "")
	require.NoError(t, err)
	assert.Equal(t, "frágil", out.Notes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests BulkUpdate
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkUpdate_CuentaSoloExistentes(t *testing.T) {
	e, parent, _ := buildEngine(t)
	tr1 := createTransfer(t, e, parent)
	tr2 := createTransfer(t, e, parent)

	enTransito := entity.TransferStatusInTransit
	count, err := e.BulkUpdate(context.Background(),
		[]string{tr1.ID, tr2.ID, "id-fantasma"},
		repository.TransferUpdate{Status: &enTransito}, usuarioOps)
	require.NoError(t, err)

	assert.Equal(t, int64(2), count, "los ids desconocidos solo reducen el conteo")
}

func TestBulkUpdate_ValidaEntrada(t *testing.T) {
	e, parent, _ := buildEngine(t)
	tr := createTransfer(t, e, parent)

	_, err := e.BulkUpdate(context.Background(), nil,
		repository.TransferUpdate{}, usuarioOps)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ids no hay nada que actualizar")

	_, err = e.BulkUpdate(context.Background(), []string{tr.ID},
		repository.TransferUpdate{}, usuarioOps)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "update sin campos es inválido")

	malo := "PERDIDO"
	_, err = e.BulkUpdate(context.Background(), []string{tr.ID},
		repository.TransferUpdate{Status: &malo}, usuarioOps)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Get y List
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_IncluyePadreYBodegas(t *testing.T) {
	e, parent, _ := buildEngine(t)
	tr := createTransfer(t, e, parent)

	got, n, from, to, err := e.Get(context.Background(), tr.ID)
	require.NoError(t, err)

	assert.Equal(t, tr.ID, got.ID)
	assert.Equal(t, parent.ID, n.ID)
	assert.Equal(t, bodegaNorte, from.ID)
	assert.Equal(t, bodegaSur, to.ID)
}

func TestList_FiltraPorEstado(t *testing.T) {
	e, parent, _ := buildEngine(t)
	ctx := context.Background()
	tr1 := createTransfer(t, e, parent)
	createTransfer(t, e, parent)

	_, err := e.UpdateStatus(ctx, tr1.ID, entity.TransferStatusDelivered, usuarioOps, "")
	require.NoError(t, err)

	entregados, err := e.List(ctx, repository.TransferFilter{Status: entity.TransferStatusDelivered})
	require.NoError(t, err)
	require.Len(t, entregados, 1)
	assert.Equal(t, tr1.ID, entregados[0].ID)

	todos, err := e.List(ctx, repository.TransferFilter{WarehouseID: bodegaSur})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
