package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// Las aserciones de interfaz garantizan que los dobles en memoria y los
// adaptadores PostgreSQL implementan exactamente los mismos puertos.
var (
	_ repository.WarehouseRepository            = (*WarehouseRepository)(nil)
	_ repository.ItemRepository                 = (*ItemRepository)(nil)
	_ repository.StockRepository                = (*StockRepository)(nil)
	_ repository.NotificationRepository         = (*NotificationRepository)(nil)
	_ repository.NotificationResponseRepository = (*NotificationResponseRepository)(nil)
	_ repository.TransferRepository             = (*TransferRepository)(nil)
)

// WarehouseRepository adaptador en memoria del puerto de bodegas.
type WarehouseRepository struct{ s *Store }

// NewWarehouseRepository crea el adaptador sobre el store.
func NewWarehouseRepository(s *Store) *WarehouseRepository { return &WarehouseRepository{s: s} }

func (r *WarehouseRepository) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *WarehouseRepository) ListActive(_ context.Context) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.Status == entity.WarehouseStatusActive {
			cp := w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ItemRepository adaptador en memoria del puerto del catálogo.
type ItemRepository struct{ s *Store }

// NewItemRepository crea el adaptador sobre el store.
func NewItemRepository(s *Store) *ItemRepository { return &ItemRepository{s: s} }

func (r *ItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

// StockRepository adaptador en memoria del ledger de stock. Adjust reproduce
// la semántica del update condicional: nunca deja cantidades negativas.
type StockRepository struct{ s *Store }

// NewStockRepository crea el adaptador sobre el store.
func NewStockRepository(s *Store) *StockRepository { return &StockRepository{s: s} }

func (r *StockRepository) GetQuantity(_ context.Context, warehouseID, itemID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.stock[stockKey{warehouseID, itemID}], nil
}

func (r *StockRepository) ListByItem(_ context.Context, itemID string) ([]repository.BranchStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.BranchStock
	for k, qty := range r.s.stock {
		if k.itemID != itemID {
			continue
		}
		w, ok := r.s.warehouses[k.warehouseID]
		if !ok || w.Status != entity.WarehouseStatusActive {
			continue
		}
		out = append(out, repository.BranchStock{
			WarehouseID:   k.warehouseID,
			WarehouseName: w.Name,
			Quantity:      qty,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

func (r *StockRepository) Adjust(_ context.Context, warehouseID, itemID string, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := stockKey{warehouseID, itemID}
	next := r.s.stock[key] + delta
	if next < 0 {
		return domain.ErrInsufficientStock
	}
	r.s.stock[key] = next
	return nil
}

func (r *StockRepository) Upsert(_ context.Context, stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stock[stockKey{stock.WarehouseID, stock.ItemID}] = stock.Quantity
	return nil
}

// NotificationRepository adaptador en memoria de notificaciones. UpdateStatusIf
// es un compare-and-swap bajo el mutex del store, igual de atómico que el
// update condicional de PostgreSQL.
type NotificationRepository struct{ s *Store }

// NewNotificationRepository crea el adaptador sobre el store.
func NewNotificationRepository(s *Store) *NotificationRepository {
	return &NotificationRepository{s: s}
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.BranchNotification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *NotificationRepository) GetByID(_ context.Context, id string) (*entity.BranchNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (r *NotificationRepository) UpdateStatusIf(_ context.Context, id, expected, next, respondedBy, notes string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.Status != expected {
		return false, nil
	}
	n.Status = next
	n.RespondedBy = respondedBy
	n.ResponseNotes = notes
	t := at
	n.RespondedAt = &t
	n.UpdatedAt = at
	r.s.notifications[id] = n
	return true, nil
}

func (r *NotificationRepository) Patch(_ context.Context, id string, p repository.NotificationPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.AssignedTo != nil {
		n.AssignedTo = *p.AssignedTo
	}
	if p.Notes != nil {
		n.ResponseNotes = *p.Notes
	}
	if p.EstimatedTime != nil {
		n.EstimatedTime = *p.EstimatedTime
	}
	n.UpdatedAt = time.Now()
	r.s.notifications[id] = n
	return nil
}

func (r *NotificationRepository) LinkPosOrder(_ context.Context, id, posOrderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil
	}
	n.LinkedPosOrderID = &posOrderID
	r.s.notifications[id] = n
	return nil
}

func (r *NotificationRepository) ListRecent(_ context.Context, warehouseID string, since time.Time, limit int) ([]*entity.BranchNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.BranchNotification
	for _, n := range r.s.notifications {
		if n.FromWarehouseID != warehouseID && n.ToWarehouseID != warehouseID {
			continue
		}
		if n.CreatedAt.Before(since) {
			continue
		}
		cp := n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepository) CountByStatus(_ context.Context, warehouseID string, since time.Time) ([]repository.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for _, n := range r.s.notifications {
		if n.FromWarehouseID != warehouseID && n.ToWarehouseID != warehouseID {
			continue
		}
		if n.CreatedAt.Before(since) {
			continue
		}
		counts[n.Status]++
	}
	return sortedCounts(counts), nil
}

func (r *NotificationRepository) CountPendingIncoming(_ context.Context, warehouseID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, n := range r.s.notifications {
		if n.ToWarehouseID != warehouseID {
			continue
		}
		if n.Status == entity.NotificationStatusPending || n.Status == entity.NotificationStatusAcknowledged {
			total++
		}
	}
	return total, nil
}

func (r *NotificationRepository) TopRequestedItems(_ context.Context, since time.Time, limit int) ([]repository.ItemRequestCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for _, n := range r.s.notifications {
		if n.CreatedAt.Before(since) {
			continue
		}
		counts[n.ItemID]++
	}
	out := make([]repository.ItemRequestCount, 0, len(counts))
	for itemID, c := range counts {
		name := ""
		if it, ok := r.s.items[itemID]; ok {
			name = it.Name
		}
		out = append(out, repository.ItemRequestCount{ItemID: itemID, ItemName: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ItemID < out[j].ItemID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// NotificationResponseRepository adaptador en memoria del historial de respuestas.
type NotificationResponseRepository struct{ s *Store }

// NewNotificationResponseRepository crea el adaptador sobre el store.
func NewNotificationResponseRepository(s *Store) *NotificationResponseRepository {
	return &NotificationResponseRepository{s: s}
}

func (r *NotificationResponseRepository) Create(_ context.Context, resp *entity.NotificationResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.responses = append(r.s.responses, *resp)
	return nil
}

func (r *NotificationResponseRepository) ListByNotification(_ context.Context, notificationID string) ([]*entity.NotificationResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.NotificationResponse
	for _, resp := range r.s.responses {
		if resp.NotificationID == notificationID {
			cp := resp
			out = append(out, &cp)
		}
	}
	return out, nil
}

// TransferRepository adaptador en memoria de traslados.
type TransferRepository struct{ s *Store }

// NewTransferRepository crea el adaptador sobre el store.
func NewTransferRepository(s *Store) *TransferRepository { return &TransferRepository{s: s} }

func (r *TransferRepository) Create(_ context.Context, t *entity.BranchStockTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transfers[t.ID] = *t
	return nil
}

func (r *TransferRepository) GetByID(_ context.Context, id string) (*entity.BranchStockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *TransferRepository) List(_ context.Context, f repository.TransferFilter) ([]*entity.BranchStockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.BranchStockTransfer
	for _, t := range r.s.transfers {
		if f.WarehouseID != "" && t.FromWarehouseID != f.WarehouseID && t.ToWarehouseID != f.WarehouseID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TransferRepository) ListByNotification(_ context.Context, notificationID string) ([]*entity.BranchStockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.BranchStockTransfer
	for _, t := range r.s.transfers {
		if t.NotificationID != notificationID {
			continue
		}
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TransferRepository) UpdateStatus(_ context.Context, id, status, _, notes string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	if strings.TrimSpace(notes) != "" {
		t.Notes = notes
	}
	t.UpdatedAt = at
	r.s.transfers[id] = t
	return nil
}

func (r *TransferRepository) BulkUpdate(_ context.Context, ids []string, u repository.TransferUpdate, _ string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, id := range ids {
		t, ok := r.s.transfers[id]
		if !ok {
			continue
		}
		if u.Status != nil {
			t.Status = *u.Status
		}
		if u.Method != nil {
			t.Method = *u.Method
		}
		if u.Notes != nil {
			t.Notes = *u.Notes
		}
		if u.DeliveryAddress != nil {
			t.DeliveryAddress = *u.DeliveryAddress
		}
		t.UpdatedAt = at
		r.s.transfers[id] = t
		count++
	}
	return count, nil
}

func (r *TransferRepository) CountByStatus(_ context.Context, warehouseID string, since time.Time) ([]repository.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for _, t := range r.s.transfers {
		if t.FromWarehouseID != warehouseID && t.ToWarehouseID != warehouseID {
			continue
		}
		if t.CreatedAt.Before(since) {
			continue
		}
		counts[t.Status]++
	}
	return sortedCounts(counts), nil
}

func sortedCounts(counts map[string]int64) []repository.StatusCount {
	out := make([]repository.StatusCount, 0, len(counts))
	for status, c := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
