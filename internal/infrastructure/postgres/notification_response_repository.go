package postgres

import (
	"context"
	"fmt"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

var _ repository.NotificationResponseRepository = (*NotificationResponseRepo)(nil)

// NotificationResponseRepo historial append-only de respuestas sobre PostgreSQL.
type NotificationResponseRepo struct {
	q Querier
}

// NewNotificationResponseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationResponseRepository(q Querier) *NotificationResponseRepo {
	return &NotificationResponseRepo{q: q}
}

// Create agrega una entrada al historial.
func (r *NotificationResponseRepo) Create(ctx context.Context, resp *entity.NotificationResponse) error {
	const query = `
		INSERT INTO notification_responses (
			id, notification_id, response_type, message, confirmed_qty,
			estimated_time, responded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		resp.ID, resp.NotificationID, resp.ResponseType, resp.Message, resp.ConfirmedQty,
		resp.EstimatedTime, resp.RespondedBy, resp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification response: %w", err)
	}
	return nil
}

// ListByNotification devuelve el historial en orden cronológico.
func (r *NotificationResponseRepo) ListByNotification(ctx context.Context, notificationID string) ([]*entity.NotificationResponse, error) {
	const query = `
		SELECT id, notification_id, response_type, message, confirmed_qty,
		       estimated_time, responded_by, created_at
		FROM notification_responses
		WHERE notification_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("list notification responses: %w", err)
	}
	defer rows.Close()

	var out []*entity.NotificationResponse
	for rows.Next() {
		var resp entity.NotificationResponse
		if err := rows.Scan(
			&resp.ID, &resp.NotificationID, &resp.ResponseType, &resp.Message, &resp.ConfirmedQty,
			&resp.EstimatedTime, &resp.RespondedBy, &resp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification response: %w", err)
		}
		out = append(out, &resp)
	}
	return out, rows.Err()
}
