// seed puebla la base con datos de demostración para desarrollo local:
// tres bodegas, un catálogo corto de items y stock inicial por bodega.
//
// Uso: go run ./cmd/seed
// Idempotente: se puede correr varias veces sin duplicar filas.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/infrastructure/postgres"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/config"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de BD")
	}

	warehouses := []entity.Warehouse{
		{ID: "11111111-1111-1111-1111-111111111111", Name: "Bodega Centro", Address: "Cra 7 # 12-34", Status: entity.WarehouseStatusActive},
		{ID: "22222222-2222-2222-2222-222222222222", Name: "Bodega Norte", Address: "Cll 140 # 9-20", Status: entity.WarehouseStatusActive},
		{ID: "33333333-3333-3333-3333-333333333333", Name: "Bodega Sur", Address: "Av 68 # 38-55 Sur", Status: entity.WarehouseStatusInactive},
	}
	for _, w := range warehouses {
		_, err := pool.Exec(ctx, `
			INSERT INTO warehouses (id, name, address, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, status = EXCLUDED.status, updated_at = now()`,
			w.ID, w.Name, w.Address, w.Status)
		if err != nil {
			log.Fatal().Err(err).Str("warehouse", w.Name).Msg("sembrar bodega")
		}
	}

	items := []entity.Item{
		{ID: "aaaaaaaa-0000-0000-0000-000000000001", Name: "Lámpara LED 9W", SKU: "LAM-009", Price: decimal.NewFromInt(28900)},
		{ID: "aaaaaaaa-0000-0000-0000-000000000002", Name: "Silla plegable", SKU: "SIL-001", Price: decimal.NewFromInt(74900)},
		{ID: "aaaaaaaa-0000-0000-0000-000000000003", Name: "Cable 12AWG x metro", SKU: "CAB-012", Price: decimal.NewFromInt(3200)},
	}
	for _, it := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO items (id, name, sku, price, created_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, sku = EXCLUDED.sku, price = EXCLUDED.price`,
			it.ID, it.Name, it.SKU, it.Price)
		if err != nil {
			log.Fatal().Err(err).Str("item", it.Name).Msg("sembrar item")
		}
	}

	stockRepo := postgres.NewStockRepository(pool)
	seedStock := []entity.Stock{
		{WarehouseID: warehouses[0].ID, ItemID: items[0].ID, Quantity: 12},
		{WarehouseID: warehouses[0].ID, ItemID: items[1].ID, Quantity: 4},
		{WarehouseID: warehouses[1].ID, ItemID: items[0].ID, Quantity: 30},
		{WarehouseID: warehouses[1].ID, ItemID: items[2].ID, Quantity: 250},
		{WarehouseID: warehouses[2].ID, ItemID: items[1].ID, Quantity: 9},
	}
	for i := range seedStock {
		seedStock[i].UpdatedAt = time.Now()
		if err := stockRepo.Upsert(ctx, &seedStock[i]); err != nil {
			log.Fatal().Err(err).
				Str("warehouse", seedStock[i].WarehouseID).
				Str("item", seedStock[i].ItemID).
				Msg("sembrar stock")
		}
	}

	log.Info().
		Int("warehouses", len(warehouses)).
		Int("items", len(items)).
		Int("stock_rows", len(seedStock)).
		Msg("datos de demostración sembrados")
}
