package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/transfer"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// TransferHandler maneja las peticiones HTTP de traslados entre bodegas
// (protegido).
type TransferHandler struct {
	engine *transfer.Engine
	log    *logger.Logger
}

// NewTransferHandler construye el handler.
func NewTransferHandler(engine *transfer.Engine, log *logger.Logger) *TransferHandler {
	return &TransferHandler{engine: engine, log: log}
}

// List devuelve traslados con filtros opcionales warehouseId y status.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	transfers, err := h.engine.List(c.Context(), repository.TransferFilter{
		WarehouseID: c.Query("warehouseId"),
		Status:      c.Query("status"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.TransferDTO, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, dto.TransferFromEntity(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// Create godoc
// @Summary      Crear traslado anclado a una notificación
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "notificationId, fromWarehouseId, toWarehouseId, itemId, requestedQty, method?, createdBy"
// @Success      201   {object}  dto.TransferDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/notifications/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = GetUserID(c)
	}
	t, err := h.engine.Create(c.Context(), transfer.CreateInput{
		NotificationID:  in.NotificationID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ItemID:          in.ItemID,
		RequestedQty:    in.RequestedQty,
		Method:          in.Method,
		DeliveryAddress: in.DeliveryAddress,
		CustomerInfo:    in.CustomerInfo,
		Notes:           in.Notes,
		CreatedBy:       createdBy,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferFromEntity(t))
}

// BulkUpdate aplica el mismo update a varios traslados; ids desconocidos solo
// reducen updatedCount.
func (h *TransferHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateTransfersRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	count, err := h.engine.BulkUpdate(c.Context(), in.TransferIDs, repository.TransferUpdate{
		Status:          in.Updates.Status,
		Method:          in.Updates.Method,
		Notes:           in.Updates.Notes,
		DeliveryAddress: in.Updates.DeliveryAddress,
	}, in.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.BulkUpdateTransfersResponse{UpdatedCount: count})
}

// GetByID devuelve el traslado con su notificación padre y ambas bodegas.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, n, from, to, err := h.engine.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.TransferDetailResponse{
		Transfer:      dto.TransferFromEntity(t),
		Notification:  dto.NotificationFromEntity(n),
		FromWarehouse: dto.WarehouseDTO{ID: from.ID, Name: from.Name, Status: from.Status},
		ToWarehouse:   dto.WarehouseDTO{ID: to.ID, Name: to.Name, Status: to.Status},
	})
}

// UpdateStatus cambia el estado de un traslado. No impone orden entre
// transiciones (relajación documentada del flujo original).
func (h *TransferHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransferStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	userID := in.UserID
	if userID == "" {
		userID = GetUserID(c)
	}
	t, err := h.engine.UpdateStatus(c.Context(), c.Params("id"), in.Status, userID, in.Notes)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.TransferFromEntity(t))
}
