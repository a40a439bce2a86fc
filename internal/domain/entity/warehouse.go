package entity

import "time"

// Estados de bodega. Solo las bodegas ACTIVE participan en consultas de disponibilidad.
const (
	WarehouseStatusActive   = "ACTIVE"
	WarehouseStatusInactive = "INACTIVE"
)

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	Status    string // ACTIVE, INACTIVE
	CreatedAt time.Time
	UpdatedAt time.Time
}
