package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/availability"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/checkout"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dashboard"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/notification"
	"github.com/EmprendoHub/inventory-app-sub003/internal/application/transfer"
	"github.com/EmprendoHub/inventory-app-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/EmprendoHub/inventory-app-sub003/internal/interfaces/http"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/config"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de BD")
	}

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	respRepo := postgres.NewNotificationResponseRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := availability.NewResolver(stockRepo, itemRepo, warehouseRepo)
	notificationEngine := notification.NewEngine(txRunner, notifRepo, respRepo, transferRepo, warehouseRepo, itemRepo)
	transferEngine := transfer.NewEngine(txRunner, transferRepo, notifRepo, warehouseRepo)
	coordinator := checkout.NewCoordinator(txRunner, resolver, notificationEngine, stockRepo, nil)
	aggregator := dashboard.NewAggregator(notifRepo, transferRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware entra en
	// pánico si el archivo no existe, así que se registra solo si está presente.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Branch Stock API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("spec de swagger no encontrado, UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		NotificationEngine: notificationEngine,
		TransferEngine:     transferEngine,
		Resolver:           resolver,
		Coordinator:        coordinator,
		Aggregator:         aggregator,
		Log:                log,
		JWTSecret:          cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
