// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa como doble de prueba de los adaptadores PostgreSQL: misma
// semántica de errores, updates condicionales y rollback transaccional.
package memory

import (
	"sort"
	"sync"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

type stockKey struct {
	warehouseID string
	itemID      string
}

// Store estado compartido por los adaptadores en memoria.
type Store struct {
	mu sync.Mutex
	// txMu serializa las transacciones del TxRunner: el rollback por snapshot
	// no es seguro con transacciones solapadas.
	txMu          sync.Mutex
	warehouses    map[string]entity.Warehouse
	items         map[string]entity.Item
	stock         map[stockKey]int64
	notifications map[string]entity.BranchNotification
	responses     []entity.NotificationResponse
	transfers     map[string]entity.BranchStockTransfer
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		warehouses:    map[string]entity.Warehouse{},
		items:         map[string]entity.Item{},
		stock:         map[stockKey]int64{},
		notifications: map[string]entity.BranchNotification{},
		transfers:     map[string]entity.BranchStockTransfer{},
	}
}

// ── Seeds para tests ──────────────────────────────────────────────────────────

// AddWarehouse registra una bodega.
func (s *Store) AddWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = w
}

// AddItem registra un item del catálogo.
func (s *Store) AddItem(it entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

// SetStock fija la cantidad de la fila (bodega, item).
func (s *Store) SetStock(warehouseID, itemID string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[stockKey{warehouseID, itemID}] = qty
}

// StockOf devuelve la cantidad actual de la fila (bodega, item).
func (s *Store) StockOf(warehouseID, itemID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[stockKey{warehouseID, itemID}]
}

// Notification devuelve una copia de la notificación, o nil si no existe.
func (s *Store) Notification(id string) *entity.BranchNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.notifications[id]; ok {
		return &n
	}
	return nil
}

// Notifications devuelve copias de todas las notificaciones, orden estable por ID.
func (s *Store) Notifications() []entity.BranchNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.BranchNotification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Responses devuelve copias del historial de una notificación en orden cronológico.
func (s *Store) Responses(notificationID string) []entity.NotificationResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.NotificationResponse
	for _, r := range s.responses {
		if r.NotificationID == notificationID {
			out = append(out, r)
		}
	}
	return out
}

// Transfer devuelve una copia del traslado, o nil si no existe.
func (s *Store) Transfer(id string) *entity.BranchStockTransfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.transfers[id]; ok {
		return &t
	}
	return nil
}

// snapshots para el rollback transaccional

func (s *Store) snapshotStock() map[stockKey]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[stockKey]int64, len(s.stock))
	for k, v := range s.stock {
		out[k] = v
	}
	return out
}

func (s *Store) restoreStock(snap map[stockKey]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = snap
}

func (s *Store) snapshotNotifications() (map[string]entity.BranchNotification, []entity.NotificationResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifs := make(map[string]entity.BranchNotification, len(s.notifications))
	for k, v := range s.notifications {
		notifs[k] = v
	}
	resps := make([]entity.NotificationResponse, len(s.responses))
	copy(resps, s.responses)
	return notifs, resps
}

func (s *Store) restoreNotifications(notifs map[string]entity.BranchNotification, resps []entity.NotificationResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = notifs
	s.responses = resps
}

func (s *Store) snapshotTransfers() map[string]entity.BranchStockTransfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]entity.BranchStockTransfer, len(s.transfers))
	for k, v := range s.transfers {
		out[k] = v
	}
	return out
}

func (s *Store) restoreTransfers(snap map[string]entity.BranchStockTransfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers = snap
}
