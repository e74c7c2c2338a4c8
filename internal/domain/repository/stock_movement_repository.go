package repository

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de stock.
// Solo inserta y lee: los movimientos nunca se actualizan ni se borran.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByMaterial devuelve movimientos del más reciente al más antiguo, sin cursor implícito.
	ListByMaterial(ctx context.Context, venueID, rawMaterialID string, limit int) ([]*entity.StockMovement, error)
}
