package entity

import "time"

// Stock representa la existencia actual de un item en una bodega.
// Solo el ledger de stock (StockRepository) puede mutar Quantity.
type Stock struct {
	WarehouseID string
	ItemID      string
	Quantity    int64
	UpdatedAt   time.Time
}
