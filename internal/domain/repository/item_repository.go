package repository

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/entity"
)

// ItemRepository define el puerto de lectura del catálogo de items (DIP).
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
}
