package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/availability"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/checkout"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dashboard"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/transfer"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	NotificationEngine *notification.Engine
	TransferEngine     *transfer.Engine
	Resolver           *availability.Resolver
	Coordinator        *checkout.Coordinator
	Aggregator         *dashboard.Aggregator
	Log                *logger.Logger
	JWTSecret          string
}

// Router registra las rutas de la API. Todo el motor es protegido: la
// identidad (usuario + bodega) viene del token de sesión.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	notificationHandler := NewNotificationHandler(deps.NotificationEngine, deps.Log)
	transferHandler := NewTransferHandler(deps.TransferEngine, deps.Log)
	availabilityHandler := NewAvailabilityHandler(deps.Resolver, deps.Log)
	checkoutHandler := NewCheckoutHandler(deps.Coordinator, deps.Log)
	dashboardHandler := NewDashboardHandler(deps.Aggregator, deps.Log)

	notifications := protected.Group("/notifications")

	// Rutas estáticas primero: Fiber resuelve en orden de registro y ":id"
	// capturaría "dashboard", "stock-availability", etc.
	notifications.Get("/dashboard", dashboardHandler.Stats)
	notifications.Get("/stock-availability", availabilityHandler.Resolve)
	notifications.Post("/pos-checkout", checkoutHandler.CheckStock)
	notifications.Put("/pos-checkout", checkoutHandler.CommitStock)
	notifications.Get("/transfers", transferHandler.List)
	notifications.Post("/transfers", transferHandler.Create)
	notifications.Put("/transfers", transferHandler.BulkUpdate)
	notifications.Get("/transfers/:id", transferHandler.GetByID)
	notifications.Patch("/transfers/:id", transferHandler.UpdateStatus)

	notifications.Post("/", notificationHandler.Create)
	notifications.Post("/:id/accept", notificationHandler.Accept)
	notifications.Get("/:id", notificationHandler.GetByID)
	notifications.Post("/:id", notificationHandler.Respond)
	notifications.Patch("/:id", notificationHandler.Patch)

	items := protected.Group("/items")
	items.Get("/:id/stocks", availabilityHandler.StockSplit)

	protected.Get("/warehouses", availabilityHandler.ListWarehouses)
}
