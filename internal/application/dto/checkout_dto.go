package dto

import "github.com/shopspring/decimal"

// CheckoutItemDTO línea de venta en el POS.
type CheckoutItemDTO struct {
	ItemID   string `json:"itemId"`
	Quantity int64  `json:"quantity"`
}

// CheckoutRequest body para POST /api/notifications/pos-checkout.
// La bodega del cajero viene de la sesión, no del body.
type CheckoutRequest struct {
	SessionID      string            `json:"sessionId"`
	CashRegisterID string            `json:"cashRegisterId"`
	CustomerID     string            `json:"customerId,omitempty"`
	Items          []CheckoutItemDTO `json:"items"`
	PaymentType    string            `json:"paymentType"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	UserID         string            `json:"userId"`
}

// CheckoutLineResult resultado por línea del chequeo de stock.
type CheckoutLineResult struct {
	ItemID         string `json:"itemId"`
	RequestedQty   int64  `json:"requestedQty"`
	LocalStock     int64  `json:"localStock"`
	Shortfall      int64  `json:"shortfall"`
	NotificationID string `json:"notificationId,omitempty"`
	// SourceWarehouseID bodega elegida para cubrir el faltante, si hubo candidata.
	SourceWarehouseID string `json:"sourceWarehouseId,omitempty"`
}

// CheckoutResponse resultado del chequeo de stock pre-venta.
type CheckoutResponse struct {
	WarehouseID          string               `json:"warehouseId"`
	Lines                []CheckoutLineResult `json:"lines"`
	NotificationsCreated int                  `json:"notificationsCreated"`
}

// CommitStockRequest body para PUT /api/notifications/pos-checkout.
type CommitStockRequest struct {
	PosOrderID      string            `json:"posOrderId"`
	Items           []CheckoutItemDTO `json:"items"`
	WarehouseID     string            `json:"warehouseId"`
	UserID          string            `json:"userId"`
	NotificationIDs []string          `json:"notificationIds,omitempty"`
}
