package repository

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// ProductMovementRepository persistencia del libro de stock de productos por unidades.
type ProductMovementRepository interface {
	Create(ctx context.Context, m *entity.ProductStockMovement) error
	GetByID(ctx context.Context, id string) (*entity.ProductStockMovement, error)
	ListByProduct(ctx context.Context, venueID, productID string, limit int) ([]*entity.ProductStockMovement, error)
}
