package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas del motor si no existen. Idempotente; se invoca
// al arrancar la API.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS warehouses (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS items (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		sku        TEXT NOT NULL DEFAULT '',
		price      NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS stock (
		warehouse_id UUID NOT NULL REFERENCES warehouses(id),
		item_id      UUID NOT NULL REFERENCES items(id),
		quantity     BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (warehouse_id, item_id)
	);

	CREATE TABLE IF NOT EXISTS branch_notifications (
		id                  UUID PRIMARY KEY,
		from_warehouse_id   UUID NOT NULL REFERENCES warehouses(id),
		to_warehouse_id     UUID NOT NULL REFERENCES warehouses(id),
		item_id             UUID NOT NULL REFERENCES items(id),
		requested_qty       BIGINT NOT NULL CHECK (requested_qty > 0),
		status              TEXT NOT NULL DEFAULT 'PENDING',
		responded_by        TEXT NOT NULL DEFAULT '',
		responded_at        TIMESTAMPTZ,
		response_notes      TEXT NOT NULL DEFAULT '',
		assigned_to         TEXT NOT NULL DEFAULT '',
		estimated_time      TEXT NOT NULL DEFAULT '',
		linked_pos_order_id TEXT,
		created_by          TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (from_warehouse_id <> to_warehouse_id)
	);

	CREATE TABLE IF NOT EXISTS notification_responses (
		id              UUID PRIMARY KEY,
		notification_id UUID NOT NULL REFERENCES branch_notifications(id),
		response_type   TEXT NOT NULL,
		message         TEXT NOT NULL DEFAULT '',
		confirmed_qty   BIGINT,
		estimated_time  TEXT NOT NULL DEFAULT '',
		responded_by    TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS branch_stock_transfers (
		id                UUID PRIMARY KEY,
		notification_id   UUID NOT NULL REFERENCES branch_notifications(id),
		from_warehouse_id UUID NOT NULL REFERENCES warehouses(id),
		to_warehouse_id   UUID NOT NULL REFERENCES warehouses(id),
		item_id           UUID NOT NULL REFERENCES items(id),
		requested_qty     BIGINT NOT NULL CHECK (requested_qty > 0),
		method            TEXT NOT NULL DEFAULT '',
		delivery_address  TEXT NOT NULL DEFAULT '',
		customer_info     TEXT NOT NULL DEFAULT '',
		notes             TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'REQUESTED',
		created_by        TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_stock_item ON stock (item_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_to ON branch_notifications (to_warehouse_id, status);
	CREATE INDEX IF NOT EXISTS idx_notifications_created ON branch_notifications (created_at);
	CREATE INDEX IF NOT EXISTS idx_responses_notification ON notification_responses (notification_id);
	CREATE INDEX IF NOT EXISTS idx_transfers_notification ON branch_stock_transfers (notification_id);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
