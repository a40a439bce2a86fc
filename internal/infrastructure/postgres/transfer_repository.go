package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL
// (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `
	id, notification_id, from_warehouse_id, to_warehouse_id, item_id,
	requested_qty, method, delivery_address, customer_info, notes, status,
	created_by, created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.BranchStockTransfer, error) {
	var t entity.BranchStockTransfer
	err := row.Scan(
		&t.ID, &t.NotificationID, &t.FromWarehouseID, &t.ToWarehouseID, &t.ItemID,
		&t.RequestedQty, &t.Method, &t.DeliveryAddress, &t.CustomerInfo, &t.Notes, &t.Status,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un traslado nuevo.
func (r *TransferRepo) Create(ctx context.Context, t *entity.BranchStockTransfer) error {
	const query = `
		INSERT INTO branch_stock_transfers (
			id, notification_id, from_warehouse_id, to_warehouse_id, item_id,
			requested_qty, method, delivery_address, customer_info, notes, status,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.NotificationID, t.FromWarehouseID, t.ToWarehouseID, t.ItemID,
		t.RequestedQty, t.Method, t.DeliveryAddress, t.CustomerInfo, t.Notes, t.Status,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.BranchStockTransfer, error) {
	if !validUUID(id) {
		return nil, domain.ErrNotFound
	}
	query := `SELECT` + transferColumns + ` FROM branch_stock_transfers WHERE id = $1`
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// List devuelve traslados, opcionalmente filtrados por bodega (origen o
// destino) y estado, más recientes primero.
func (r *TransferRepo) List(ctx context.Context, f repository.TransferFilter) ([]*entity.BranchStockTransfer, error) {
	query := `SELECT` + transferColumns + ` FROM branch_stock_transfers WHERE 1=1`
	args := []any{}
	if f.WarehouseID != "" && !validUUID(f.WarehouseID) {
		return nil, nil
	}
	if f.WarehouseID != "" {
		args = append(args, f.WarehouseID)
		query += fmt.Sprintf(" AND (from_warehouse_id = $%d OR to_warehouse_id = $%d)", len(args), len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []*entity.BranchStockTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByNotification devuelve los traslados anclados a la notificación.
func (r *TransferRepo) ListByNotification(ctx context.Context, notificationID string) ([]*entity.BranchStockTransfer, error) {
	if !validUUID(notificationID) {
		return nil, nil
	}
	query := `
		SELECT` + transferColumns + `
		FROM branch_stock_transfers WHERE notification_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by notification: %w", err)
	}
	defer rows.Close()

	var out []*entity.BranchStockTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado del traslado, anexando las notas si vienen.
func (r *TransferRepo) UpdateStatus(ctx context.Context, id, status, userID, notes string, at time.Time) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	const query = `
		UPDATE branch_stock_transfers
		SET status = $2,
		    notes = CASE WHEN $3 = '' THEN notes ELSE $3 END,
		    updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, notes, at)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BulkUpdate aplica los campos no nulos a todos los ids en una sola sentencia;
// devuelve cuántas filas existían y fueron modificadas. Los ids sin forma de
// UUID se descartan antes de la sentencia: no existen, solo reducen el conteo.
func (r *TransferRepo) BulkUpdate(ctx context.Context, ids []string, u repository.TransferUpdate, userID string, at time.Time) (int64, error) {
	ids = filterUUIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	const query = `
		UPDATE branch_stock_transfers
		SET status           = COALESCE($2, status),
		    method           = COALESCE($3, method),
		    notes            = COALESCE($4, notes),
		    delivery_address = COALESCE($5, delivery_address),
		    updated_at       = $6
		WHERE id = ANY($1::uuid[])`
	tag, err := r.q.Exec(ctx, query, ids, u.Status, u.Method, u.Notes, u.DeliveryAddress, at)
	if err != nil {
		return 0, fmt.Errorf("bulk update transfers: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountByStatus cuenta traslados que tocan la bodega desde since, agrupados
// por estado.
func (r *TransferRepo) CountByStatus(ctx context.Context, warehouseID string, since time.Time) ([]repository.StatusCount, error) {
	if !validUUID(warehouseID) {
		return nil, nil
	}
	const query = `
		SELECT status, COUNT(*)
		FROM branch_stock_transfers
		WHERE (from_warehouse_id = $1 OR to_warehouse_id = $1) AND created_at >= $2
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(ctx, query, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("count transfers by status: %w", err)
	}
	defer rows.Close()

	var out []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
