package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dashboard"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// DashboardHandler expone el rollup operativo de notificaciones y traslados.
type DashboardHandler struct {
	aggregator *dashboard.Aggregator
	log        *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(aggregator *dashboard.Aggregator, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{aggregator: aggregator, log: log}
}

// Stats godoc
// @Summary      Rollup de notificaciones y traslados por bodega
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  query  string  true   "Bodega (origen o destino)"
// @Param        days         query  int     false  "Ventana en días (default 7)"
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notifications/dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouseId")
	if warehouseID == "" {
		return badRequest(c, "warehouseId requerido")
	}
	days, _ := strconv.Atoi(c.Query("days"))

	out, err := h.aggregator.Stats(c.Context(), warehouseID, days)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
