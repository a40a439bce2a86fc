package repository

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// BranchStock resultado crudo de disponibilidad: cantidad sumada por bodega
// ACTIVA para un item (una bodega puede tener varias filas de stock del mismo item).
type BranchStock struct {
	WarehouseID   string
	WarehouseName string
	Quantity      int64
}

// StockRepository define el puerto del ledger de stock por bodega+item.
// Toda mutación de cantidad pasa por Adjust (update condicional); ningún otro
// componente escribe cantidades directamente.
type StockRepository interface {
	// GetQuantity devuelve la cantidad total del item en la bodega (0 si no hay filas).
	GetQuantity(ctx context.Context, warehouseID, itemID string) (int64, error)
	// ListByItem devuelve, por bodega ACTIVA, la cantidad sumada del item.
	// Incluye filas con cantidad cero; el caller filtra según necesite.
	ListByItem(ctx context.Context, itemID string) ([]BranchStock, error)
	// Adjust aplica un delta a la fila (bodega, item) solo si la cantidad
	// resultante es >= 0; devuelve domain.ErrInsufficientStock si no.
	// Es el único primitivo de escritura del ledger.
	Adjust(ctx context.Context, warehouseID, itemID string, delta int64) error
	Upsert(ctx context.Context, stock *entity.Stock) error
}
