package dto

// TopItemDTO item más solicitado dentro de la ventana.
type TopItemDTO struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName,omitempty"`
	Count    int64  `json:"count"`
}

// DashboardStatsResponse rollup operativo de GET /api/notifications/dashboard.
type DashboardStatsResponse struct {
	WarehouseID           string            `json:"warehouseId"`
	WindowDays            int               `json:"windowDays"`
	NotificationsByStatus map[string]int64  `json:"notificationsByStatus"`
	TransfersByStatus     map[string]int64  `json:"transfersByStatus"`
	PendingIncoming       int64             `json:"pendingIncoming"`
	Recent                []NotificationDTO `json:"recent"`
	TopItems              []TopItemDTO      `json:"topItems"`
}
