package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/availability"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// AvailabilityHandler maneja las consultas de disponibilidad de stock entre
// bodegas (solo lectura).
type AvailabilityHandler struct {
	resolver *availability.Resolver
	log      *logger.Logger
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(resolver *availability.Resolver, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{resolver: resolver, log: log}
}

// Resolve godoc
// @Summary      Disponibilidad de un item en otras bodegas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        itemId              query  string  true   "ID del item"
// @Param        requestedQty        query  int     true   "Cantidad solicitada (> 0)"
// @Param        excludeWarehouseId  query  string  false  "Bodega a excluir (normalmente la propia)"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notifications/stock-availability [get]
func (h *AvailabilityHandler) Resolve(c *fiber.Ctx) error {
	itemID := c.Query("itemId")
	if itemID == "" {
		return badRequest(c, "itemId requerido")
	}
	qty, err := strconv.ParseInt(c.Query("requestedQty"), 10, 64)
	if err != nil {
		return badRequest(c, "requestedQty inválido")
	}
	out, err := h.resolver.ResolveAvailability(c.Context(), itemID, qty, c.Query("excludeWarehouseId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// StockSplit particiona el stock del item entre la bodega actual y el resto.
func (h *AvailabilityHandler) StockSplit(c *fiber.Ctx) error {
	out, err := h.resolver.ResolveStockSplit(c.Context(), c.Params("id"), c.Query("currentWarehouse"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListWarehouses devuelve las bodegas activas (para selectores en el POS).
func (h *AvailabilityHandler) ListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.resolver.ListActiveWarehouses(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.WarehouseDTO, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.WarehouseDTO{ID: w.ID, Name: w.Name, Status: w.Status})
	}
	return c.JSON(fiber.Map{"total": len(out), "warehouses": out})
}
