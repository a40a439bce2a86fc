package notification_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	bodegaOrigen  = "wh-origen"
	bodegaDestino = "wh-destino"
	itemTornillo  = "item-tornillo"
	usuarioCajero = "user-cajero"
	usuarioBodega = "user-bodeguero"
)

func buildEngine(t *testing.T) (*notification.Engine, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddWarehouse(entity.Warehouse{ID: bodegaOrigen, Name: "Origen", Status: entity.WarehouseStatusActive})
	s.AddWarehouse(entity.Warehouse{ID: bodegaDestino, Name: "Destino", Status: entity.WarehouseStatusActive})
	s.AddItem(entity.Item{ID: itemTornillo, Name: "Tornillo 3/8"})

	e := notification.NewEngine(
		memory.NewTxRunner(s),
		memory.NewNotificationRepository(s),
		memory.NewNotificationResponseRepository(s),
		memory.NewTransferRepository(s),
		memory.NewWarehouseRepository(s),
		memory.NewItemRepository(s),
	)
	return e, s
}

// createPending crea una notificación PENDING de origen a destino.
func createPending(t *testing.T, e *notification.Engine) *entity.BranchNotification {
	t.Helper()
	n, err := e.Create(context.Background(), notification.CreateInput{
		FromWarehouseID: bodegaOrigen,
		ToWarehouseID:   bodegaDestino,
		ItemID:          itemTornillo,
		RequestedQty:    4,
		CreatedBy:       usuarioCajero,
	})
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NotificacionQuedaPendiente(t *testing.T) {
	e, s := buildEngine(t)

	n := createPending(t, e)

	assert.Equal(t, entity.NotificationStatusPending, n.Status)
	assert.NotEmpty(t, n.ID)
	stored := s.Notification(n.ID)
	require.NotNil(t, stored)
	assert.Equal(t, int64(4), stored.RequestedQty)
}

func TestCreate_ValidaEntrada(t *testing.T) {
	e, _ := buildEngine(t)
	ctx := context.Background()

	_, err := e.Create(ctx, notification.CreateInput{
		FromWarehouseID: bodegaOrigen, ToWarehouseID: bodegaDestino,
		ItemID: itemTornillo, RequestedQty: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero es inválida")

	_, err = e.Create(ctx, notification.CreateInput{
		FromWarehouseID: bodegaOrigen, ToWarehouseID: bodegaOrigen,
		ItemID: itemTornillo, RequestedQty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen y destino no pueden ser la misma bodega")
}

func TestCreate_BodegaOItemDesconocidos(t *testing.T) {
	e, _ := buildEngine(t)
	ctx := context.Background()

	_, err := e.Create(ctx, notification.CreateInput{
		FromWarehouseID: "wh-fantasma", ToWarehouseID: bodegaDestino,
		ItemID: itemTornillo, RequestedQty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.Create(ctx, notification.CreateInput{
		FromWarehouseID: bodegaOrigen, ToWarehouseID: bodegaDestino,
		ItemID: "item-fantasma", RequestedQty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Accept (aceptación rápida)
// ──────────────────────────────────────────────────────────────────────────────

func TestAccept_TransicionaAAceptada(t *testing.T) {
	e, _ := buildEngine(t)
	n := createPending(t, e)

	out, err := e.Accept(context.Background(), n.ID, usuarioBodega, bodegaDestino)
	require.NoError(t, err)

	assert.Equal(t, entity.NotificationStatusAccepted, out.Status)
	assert.Equal(t, usuarioBodega, out.RespondedBy)
	require.NotNil(t, out.RespondedAt)
}

func TestAccept_NotificacionInexistente(t *testing.T) {
	e, _ := buildEngine(t)

	_, err := e.Accept(context.Background(), "no-existe", usuarioBodega, bodegaDestino)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Usuario de otra bodega: acceso denegado sin importar el estado de la
// notificación. La afiliación se verifica antes que el estado.
func TestAccept_BodegaAjenaSiempreProhibido(t *testing.T) {
	e, _ := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	_, err := e.Accept(ctx, n.ID, usuarioCajero, bodegaOrigen)
	assert.ErrorIs(t, err, domain.ErrForbidden, "la bodega solicitante no puede aceptar")

	// Aun cuando la notificación ya está aceptada, la bodega ajena recibe
	// Forbidden, no AlreadyProcessed.
	_, err = e.Accept(ctx, n.ID, usuarioBodega, bodegaDestino)
	require.NoError(t, err)
	_, err = e.Accept(ctx, n.ID, usuarioCajero, bodegaOrigen)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccept_SegundaAceptacionConflicto(t *testing.T) {
	e, _ := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	_, err := e.Accept(ctx, n.ID, usuarioBodega, bodegaDestino)
	require.NoError(t, err)

	_, err = e.Accept(ctx, n.ID, usuarioBodega, bodegaDestino)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed,
		"la segunda aceptación debe fallar: la notificación ya no está PENDING")
}

// Bajo aceptaciones concurrentes solo una gana: la transición es un único
// update condicional, no un read-then-write.
func TestAccept_ConcurrenciaSoloUnaGana(t *testing.T) {
	e, s := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Accept(ctx, n.ID, usuarioBodega, bodegaDestino)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, domain.ErrAlreadyProcessed):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactamente una aceptación debe ganar")
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, entity.NotificationStatusAccepted, s.Notification(n.ID).Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Respond (respuesta formal)
// ──────────────────────────────────────────────────────────────────────────────

func TestRespond_RechazoTransicionaYAuditaJuntos(t *testing.T) {
	e, s := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	resp, err := e.Respond(ctx, n.ID, notification.RespondInput{
		ResponseType: entity.ResponseTypeReject,
		RespondedBy:  usuarioBodega,
		Message:      "sin stock físico",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ResponseTypeReject, resp.ResponseType)
	assert.Equal(t, entity.NotificationStatusRejected, s.Notification(n.ID).Status)
	require.Len(t, s.Responses(n.ID), 1)
}

func TestRespond_InfoNoCambiaEstado(t *testing.T) {
	e, s := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	qty := int64(2)
	_, err := e.Respond(ctx, n.ID, notification.RespondInput{
		ResponseType: entity.ResponseTypeInfo,
		RespondedBy:  usuarioBodega,
		Message:      "solo tengo 2, ¿sirven?",
		ConfirmedQty: &qty,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.NotificationStatusPending, s.Notification(n.ID).Status,
		"info es conversación, no transición")
	require.Len(t, s.Responses(n.ID), 1)
}

func TestRespond_AcknowledgeMarcaVista(t *testing.T) {
	e, s := buildEngine(t)
	n := createPending(t, e)

	_, err := e.Respond(context.Background(), n.ID, notification.RespondInput{
		ResponseType: entity.ResponseTypeAcknowledge,
		RespondedBy:  usuarioBodega,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusAcknowledged, s.Notification(n.ID).Status)
}

func TestRespond_TipoDesconocido(t *testing.T) {
	e, _ := buildEngine(t)
	n := createPending(t, e)

	_, err := e.Respond(context.Background(), n.ID, notification.RespondInput{
		ResponseType: "approve",
		RespondedBy:  usuarioBodega,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRespond_NotificacionInexistente(t *testing.T) {
	e, _ := buildEngine(t)

	_, err := e.Respond(context.Background(), "no-existe", notification.RespondInput{
		ResponseType: entity.ResponseTypeAccept,
		RespondedBy:  usuarioBodega,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// hookedTxRunner ejecuta un gancho antes de abrir la transacción. Simula otra
// caja colándose entre la lectura del estado y la escritura de la transición.
type hookedTxRunner struct {
	inner notification.TxRunner
	hook  func()
}

func (r *hookedTxRunner) Run(ctx context.Context, fn func(
	notifRepo repository.NotificationRepository,
	respRepo repository.NotificationResponseRepository,
) error) error {
	if r.hook != nil {
		r.hook()
		r.hook = nil
	}
	return r.inner.Run(ctx, fn)
}

// Si la notificación transiciona entre la lectura de Respond y su escritura,
// la respuesta pierde: el update condicional no coincide, la transición ganadora
// no se sobrescribe y la entrada del historial perdedora se revierte.
func TestRespond_PierdeAnteTransicionConcurrente(t *testing.T) {
	s := memory.NewStore()
	s.AddWarehouse(entity.Warehouse{ID: bodegaOrigen, Name: "Origen", Status: entity.WarehouseStatusActive})
	s.AddWarehouse(entity.Warehouse{ID: bodegaDestino, Name: "Destino", Status: entity.WarehouseStatusActive})
	s.AddItem(entity.Item{ID: itemTornillo, Name: "Tornillo 3/8"})

	newEngine := func(runner notification.TxRunner) *notification.Engine {
		return notification.NewEngine(
			runner,
			memory.NewNotificationRepository(s),
			memory.NewNotificationResponseRepository(s),
			memory.NewTransferRepository(s),
			memory.NewWarehouseRepository(s),
			memory.NewItemRepository(s),
		)
	}

	ctx := context.Background()
	rival := newEngine(memory.NewTxRunner(s))
	n := createPending(t, rival)

	runner := &hookedTxRunner{
		inner: memory.NewTxRunner(s),
		hook: func() {
			_, err := rival.Accept(ctx, n.ID, usuarioBodega, bodegaDestino)
			require.NoError(t, err)
		},
	}

	_, err := newEngine(runner).Respond(ctx, n.ID, notification.RespondInput{
		ResponseType: entity.ResponseTypeReject,
		RespondedBy:  usuarioBodega,
		Message:      "sin stock físico",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	assert.Equal(t, entity.NotificationStatusAccepted, s.Notification(n.ID).Status,
		"la aceptación que ganó la carrera no se sobrescribe")
	assert.Empty(t, s.Responses(n.ID), "la respuesta perdedora se revierte con la transacción")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Patch y Get
// ──────────────────────────────────────────────────────────────────────────────

func TestPatch_SoloCamposEnviados(t *testing.T) {
	e, _ := buildEngine(t)
	n := createPending(t, e)

	asignado := usuarioBodega
	out, err := e.Patch(context.Background(), n.ID, repository.NotificationPatch{
		AssignedTo: &asignado,
	})
	require.NoError(t, err)

	assert.Equal(t, usuarioBodega, out.AssignedTo)
	assert.Equal(t, entity.NotificationStatusPending, out.Status, "el estado no enviado no cambia")
}

func TestPatch_EstadoDesconocidoRechazado(t *testing.T) {
	e, _ := buildEngine(t)
	n := createPending(t, e)

	malo := "CERRADA"
	_, err := e.Patch(context.Background(), n.ID, repository.NotificationPatch{Status: &malo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El override administrativo no impone orden de máquina de estados: puede
// regresar una rechazada a PENDING.
func TestPatch_PermiteReabrirRechazada(t *testing.T) {
	e, s := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	_, err := e.Respond(ctx, n.ID, notification.RespondInput{
		ResponseType: entity.ResponseTypeReject, RespondedBy: usuarioBodega,
	})
	require.NoError(t, err)

	pendiente := entity.NotificationStatusPending
	_, err = e.Patch(ctx, n.ID, repository.NotificationPatch{Status: &pendiente})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusPending, s.Notification(n.ID).Status)
}

func TestGet_IncluyeHistorialYTraslados(t *testing.T) {
	e, _ := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	_, err := e.Respond(ctx, n.ID, notification.RespondInput{
		ResponseType: entity.ResponseTypeAccept, RespondedBy: usuarioBodega,
	})
	require.NoError(t, err)

	got, responses, transfers, err := e.Get(ctx, n.ID)
	require.NoError(t, err)

	assert.Equal(t, n.ID, got.ID)
	assert.Len(t, responses, 1)
	assert.Empty(t, transfers, "aún no hay traslados anclados")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LinkToPosOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestLinkToPosOrder_Idempotente(t *testing.T) {
	e, s := buildEngine(t)
	ctx := context.Background()
	n := createPending(t, e)

	require.NoError(t, e.LinkToPosOrder(ctx, n.ID, "pos-123"))
	require.NoError(t, e.LinkToPosOrder(ctx, n.ID, "pos-123"), "repetir el mismo enlace no es error")

	stored := s.Notification(n.ID)
	require.NotNil(t, stored.LinkedPosOrderID)
	assert.Equal(t, "pos-123", *stored.LinkedPosOrderID)
}

func TestLinkToPosOrder_EntradaVacia(t *testing.T) {
	e, _ := buildEngine(t)

	assert.ErrorIs(t, e.LinkToPosOrder(context.Background(), "", "pos-123"), domain.ErrInvalidInput)
	assert.ErrorIs(t, e.LinkToPosOrder(context.Background(), "n-1", ""), domain.ErrInvalidInput)
}
