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

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre
// PostgreSQL (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `
	id, from_warehouse_id, to_warehouse_id, item_id, requested_qty, status,
	responded_by, responded_at, response_notes, assigned_to, estimated_time,
	linked_pos_order_id, created_by, created_at, updated_at`

func scanNotification(row pgx.Row) (*entity.BranchNotification, error) {
	var n entity.BranchNotification
	err := row.Scan(
		&n.ID, &n.FromWarehouseID, &n.ToWarehouseID, &n.ItemID, &n.RequestedQty, &n.Status,
		&n.RespondedBy, &n.RespondedAt, &n.ResponseNotes, &n.AssignedTo, &n.EstimatedTime,
		&n.LinkedPosOrderID, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste una notificación nueva.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.BranchNotification) error {
	const query = `
		INSERT INTO branch_notifications (
			id, from_warehouse_id, to_warehouse_id, item_id, requested_qty, status,
			responded_by, response_notes, assigned_to, estimated_time, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.FromWarehouseID, n.ToWarehouseID, n.ItemID, n.RequestedQty, n.Status,
		n.RespondedBy, n.ResponseNotes, n.AssignedTo, n.EstimatedTime, n.CreatedBy,
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.BranchNotification, error) {
	if !validUUID(id) {
		return nil, domain.ErrNotFound
	}
	query := `SELECT` + notificationColumns + ` FROM branch_notifications WHERE id = $1`
	n, err := scanNotification(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// UpdateStatusIf transiciona el estado en un único UPDATE condicional guardado
// por el estado actual. Dos llamadas concurrentes sobre la misma fila: solo la
// que observa expected gana; la otra recibe false.
func (r *NotificationRepo) UpdateStatusIf(ctx context.Context, id, expected, next, respondedBy, notes string, at time.Time) (bool, error) {
	if !validUUID(id) {
		return false, domain.ErrNotFound
	}
	const query = `
		UPDATE branch_notifications
		SET status = $3, responded_by = $4, responded_at = $5,
		    response_notes = $6, updated_at = $5
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, expected, next, respondedBy, at, notes)
	if err != nil {
		return false, fmt.Errorf("conditional status update: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Patch aplica el override administrativo: solo los campos no nulos.
func (r *NotificationRepo) Patch(ctx context.Context, id string, p repository.NotificationPatch) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	const query = `
		UPDATE branch_notifications
		SET status         = COALESCE($2, status),
		    assigned_to    = COALESCE($3, assigned_to),
		    response_notes = COALESCE($4, response_notes),
		    estimated_time = COALESCE($5, estimated_time),
		    updated_at     = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, p.Status, p.AssignedTo, p.Notes, p.EstimatedTime)
	if err != nil {
		return fmt.Errorf("patch notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LinkPosOrder fija la referencia a la orden POS. Idempotente: repetir el
// mismo enlace deja la fila igual; un id inexistente no es error.
func (r *NotificationRepo) LinkPosOrder(ctx context.Context, id, posOrderID string) error {
	if !validUUID(id) {
		return nil
	}
	const query = `
		UPDATE branch_notifications
		SET linked_pos_order_id = $2, updated_at = now()
		WHERE id = $1 AND (linked_pos_order_id IS DISTINCT FROM $2)`
	if _, err := r.q.Exec(ctx, query, id, posOrderID); err != nil {
		return fmt.Errorf("link pos order: %w", err)
	}
	return nil
}

// ListRecent devuelve las notificaciones más recientes que tocan la bodega
// (origen o destino) desde since.
func (r *NotificationRepo) ListRecent(ctx context.Context, warehouseID string, since time.Time, limit int) ([]*entity.BranchNotification, error) {
	if !validUUID(warehouseID) {
		return nil, nil
	}
	query := `
		SELECT` + notificationColumns + `
		FROM branch_notifications
		WHERE (from_warehouse_id = $1 OR to_warehouse_id = $1) AND created_at >= $2
		ORDER BY created_at DESC, id ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, warehouseID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent notifications: %w", err)
	}
	defer rows.Close()

	var out []*entity.BranchNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountByStatus cuenta notificaciones que tocan la bodega desde since,
// agrupadas por estado.
func (r *NotificationRepo) CountByStatus(ctx context.Context, warehouseID string, since time.Time) ([]repository.StatusCount, error) {
	if !validUUID(warehouseID) {
		return nil, nil
	}
	const query = `
		SELECT status, COUNT(*)
		FROM branch_notifications
		WHERE (from_warehouse_id = $1 OR to_warehouse_id = $1) AND created_at >= $2
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(ctx, query, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("count notifications by status: %w", err)
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

// CountPendingIncoming cuenta la bandeja de entrada viva de la bodega destino.
func (r *NotificationRepo) CountPendingIncoming(ctx context.Context, warehouseID string) (int64, error) {
	if !validUUID(warehouseID) {
		return 0, nil
	}
	const query = `
		SELECT COUNT(*)
		FROM branch_notifications
		WHERE to_warehouse_id = $1 AND status IN ('PENDING', 'ACKNOWLEDGED')`
	var count int64
	if err := r.q.QueryRow(ctx, query, warehouseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending incoming: %w", err)
	}
	return count, nil
}

// TopRequestedItems devuelve los items más solicitados desde since. Empates en
// el conteo se desempatan por item_id ascendente para un orden determinista.
func (r *NotificationRepo) TopRequestedItems(ctx context.Context, since time.Time, limit int) ([]repository.ItemRequestCount, error) {
	const query = `
		SELECT n.item_id, i.name, COUNT(*) AS requests
		FROM branch_notifications n
		JOIN items i ON i.id = n.item_id
		WHERE n.created_at >= $1
		GROUP BY n.item_id, i.name
		ORDER BY requests DESC, n.item_id ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top requested items: %w", err)
	}
	defer rows.Close()

	var out []repository.ItemRequestCount
	for rows.Next() {
		var c repository.ItemRequestCount
		if err := rows.Scan(&c.ItemID, &c.ItemName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan item count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
