package dto

// BranchAvailabilityDTO disponibilidad de un item en una bodega ACTIVA.
type BranchAvailabilityDTO struct {
	WarehouseID   string `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	Quantity      int64  `json:"quantity"`
}

// AvailabilityResponse resultado de GET /api/notifications/stock-availability.
// CanFulfill es true solo si alguna bodega individual cubre la cantidad completa
// (abastecimiento de una sola fuente, no agregado).
type AvailabilityResponse struct {
	ItemID         string                  `json:"itemId"`
	RequestedQty   int64                   `json:"requestedQty"`
	Branches       []BranchAvailabilityDTO `json:"branches"`
	TotalAvailable int64                   `json:"totalAvailable"`
	CanFulfill     bool                    `json:"canFulfill"`
}

// StockSplitResponse resultado de GET /api/items/:id/stocks.
type StockSplitResponse struct {
	ItemID                string                  `json:"itemId"`
	CurrentWarehouseStock int64                   `json:"currentWarehouseStock"`
	OtherWarehouses       []BranchAvailabilityDTO `json:"otherWarehouses"`
}
