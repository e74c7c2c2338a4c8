package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia de productos vendibles.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByVenueAndSKU(ctx context.Context, venueID, sku string) (*entity.Product, error)
	List(ctx context.Context, venueID string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	// GetForUpdate bloquea la fila para ajustes de stock por conteo de unidades.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
}
