package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if !validUUID(id) {
		return nil, domain.ErrNotFound
	}
	const query = `SELECT id, name, sku, price, created_at FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(&it.ID, &it.Name, &it.SKU, &it.Price, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
