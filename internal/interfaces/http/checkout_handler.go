package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/checkout"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// CheckoutHandler maneja el flujo de venta POS: chequeo de faltantes y
// descuento atómico de stock al completar la orden.
type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	log         *logger.Logger
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(coordinator *checkout.Coordinator, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator, log: log}
}

// CheckStock godoc
// @Summary      Chequeo de stock pre-venta con creación de notificaciones
// @Description  Por cada línea con faltante crea una notificación por la
//               cantidad faltante contra una bodega proveedora candidata.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "sessionId, cashRegisterId, items[], paymentType, totalAmount, userId"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/pos-checkout [post]
func (h *CheckoutHandler) CheckStock(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	// La bodega del cajero sale de la sesión, nunca del body.
	out, err := h.coordinator.CheckStockAndCreateNotifications(c.Context(), GetWarehouseID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CommitStock godoc
// @Summary      Descuento atómico de stock al completar la orden POS
// @Description  Todas las líneas en una transacción; sobreventa aborta el lote
//               completo sin efecto parcial.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitStockRequest  true  "posOrderId, items[], warehouseId, userId, notificationIds?"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/notifications/pos-checkout [put]
func (h *CheckoutHandler) CommitStock(c *fiber.Ctx) error {
	var in dto.CommitStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	if err := h.coordinator.ProcessPosOrderStockUpdates(c.Context(), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "stock actualizado"})
}
