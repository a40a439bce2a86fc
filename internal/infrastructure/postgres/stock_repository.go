package postgres

import (
	"context"
	"fmt"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del ledger de stock sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetQuantity devuelve la cantidad total del item en la bodega (0 si no hay filas).
func (r *StockRepo) GetQuantity(ctx context.Context, warehouseID, itemID string) (int64, error) {
	if !validUUID(warehouseID) || !validUUID(itemID) {
		return 0, nil
	}
	const query = `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock WHERE warehouse_id = $1 AND item_id = $2`
	var qty int64
	if err := r.q.QueryRow(ctx, query, warehouseID, itemID).Scan(&qty); err != nil {
		return 0, fmt.Errorf("get stock quantity: %w", err)
	}
	return qty, nil
}

// ListByItem devuelve la cantidad sumada del item por bodega ACTIVA,
// ordenada por cantidad descendente y luego id de bodega (determinista).
func (r *StockRepo) ListByItem(ctx context.Context, itemID string) ([]repository.BranchStock, error) {
	if !validUUID(itemID) {
		return nil, nil
	}
	const query = `
		SELECT s.warehouse_id, w.name, COALESCE(SUM(s.quantity), 0) AS qty
		FROM stock s
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.item_id = $1 AND w.status = 'ACTIVE'
		GROUP BY s.warehouse_id, w.name
		ORDER BY qty DESC, s.warehouse_id ASC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock by item: %w", err)
	}
	defer rows.Close()

	var out []repository.BranchStock
	for rows.Next() {
		var b repository.BranchStock
		if err := rows.Scan(&b.WarehouseID, &b.WarehouseName, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan branch stock: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Adjust aplica el delta solo si la cantidad resultante queda >= 0, en una sola
// sentencia condicional (sin leer-luego-escribir: el guard cierra la ventana de
// carrera entre cajas concurrentes). Devuelve ErrInsufficientStock si la fila
// no existe o el descuento la dejaría en negativo.
func (r *StockRepo) Adjust(ctx context.Context, warehouseID, itemID string, delta int64) error {
	if !validUUID(warehouseID) || !validUUID(itemID) {
		return domain.ErrNotFound
	}
	if delta >= 0 {
		// Los abonos (entrega de traslado) crean la fila si no existe.
		const upsert = `
			INSERT INTO stock (warehouse_id, item_id, quantity, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (warehouse_id, item_id)
			DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
		if _, err := r.q.Exec(ctx, upsert, warehouseID, itemID, delta); err != nil {
			return fmt.Errorf("credit stock: %w", err)
		}
		return nil
	}

	const query = `
		UPDATE stock
		SET quantity = quantity + $3, updated_at = now()
		WHERE warehouse_id = $1 AND item_id = $2 AND quantity + $3 >= 0`
	tag, err := r.q.Exec(ctx, query, warehouseID, itemID, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Upsert inserta o reemplaza la cantidad de la fila (bodega, item). Uso
// administrativo (carga inicial, conteos físicos), no para ventas.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	if !validUUID(stock.WarehouseID) || !validUUID(stock.ItemID) {
		return domain.ErrInvalidInput
	}
	const query = `
		INSERT INTO stock (warehouse_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (warehouse_id, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.WarehouseID, stock.ItemID, stock.Quantity); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
