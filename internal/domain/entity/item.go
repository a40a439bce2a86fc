package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto vendible del catálogo.
type Item struct {
	ID        string
	Name      string
	SKU       string
	Price     decimal.Decimal
	CreatedAt time.Time
}
