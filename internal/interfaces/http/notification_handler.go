package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// NotificationHandler maneja las peticiones HTTP de notificaciones entre
// sucursales (protegido).
type NotificationHandler struct {
	engine *notification.Engine
	log    *logger.Logger
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(engine *notification.Engine, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{engine: engine, log: log}
}

// Create godoc
// @Summary      Crear notificación manual entre bodegas
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "fromWarehouseId, toWarehouseId, itemId, requestedQty"
// @Success      201   {object}  dto.NotificationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	n, err := h.engine.Create(c.Context(), notification.CreateInput{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ItemID:          in.ItemID,
		RequestedQty:    in.RequestedQty,
		CreatedBy:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NotificationFromEntity(n))
}

// GetByID godoc
// @Summary      Notificación con historial de respuestas y traslados
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [get]
func (h *NotificationHandler) GetByID(c *fiber.Ctx) error {
	n, responses, transfers, err := h.engine.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.NotificationDetailResponse{
		Notification: dto.NotificationFromEntity(n),
		Responses:    make([]dto.ResponseDTO, 0, len(responses)),
		Transfers:    make([]dto.TransferDTO, 0, len(transfers)),
	}
	for _, resp := range responses {
		out.Responses = append(out.Responses, dto.ResponseFromEntity(resp))
	}
	for _, t := range transfers {
		out.Transfers = append(out.Transfers, dto.TransferFromEntity(t))
	}
	return c.JSON(out)
}

// Respond godoc
// @Summary      Responder una notificación (accept/reject/acknowledge/info)
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la notificación"
// @Param        body  body  dto.RespondNotificationRequest  true  "responseType, respondedBy, message?, confirmedQty?, estimatedTime?"
// @Success      200   {object}  dto.ResponseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [post]
func (h *NotificationHandler) Respond(c *fiber.Ctx) error {
	var in dto.RespondNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.ResponseType == "" {
		return badRequest(c, "responseType requerido")
	}
	respondedBy := in.RespondedBy
	if respondedBy == "" {
		respondedBy = GetUserID(c)
	}
	resp, err := h.engine.Respond(c.Context(), c.Params("id"), notification.RespondInput{
		ResponseType:  in.ResponseType,
		RespondedBy:   respondedBy,
		Message:       in.Message,
		ConfirmedQty:  in.ConfirmedQty,
		EstimatedTime: in.EstimatedTime,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ResponseFromEntity(resp))
}

// Patch aplica el update administrativo (status/assignedTo/notes/estimatedTime).
func (h *NotificationHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	n, err := h.engine.Patch(c.Context(), c.Params("id"), repository.NotificationPatch{
		Status:        in.Status,
		AssignedTo:    in.AssignedTo,
		Notes:         in.Notes,
		EstimatedTime: in.EstimatedTime,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NotificationFromEntity(n))
}

// Accept godoc
// @Summary      Aceptación rápida desde el encabezado
// @Description  Solo el personal de la bodega destino puede aceptar, y solo si
//               la notificación sigue PENDING. Una segunda aceptación devuelve
//               400 "ya fue procesada".
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/accept [post]
func (h *NotificationHandler) Accept(c *fiber.Ctx) error {
	userID := GetUserID(c)
	warehouseID := GetWarehouseID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "sesión requerida"})
	}
	n, err := h.engine.Accept(c.Context(), c.Params("id"), userID, warehouseID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NotificationFromEntity(n))
}
