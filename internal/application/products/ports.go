package products

import (
	"context"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del inventario de productos atados a esa tx.
type TxRunner interface {
	RunProduct(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		proposalRepo repository.ProposalRepository,
	) error) error
}

// RecipeCreator crea la receta durante la conversión QUANTITY -> RECIPE y deja
// el producto en control por receta, todo en una transacción. Lo implementa el
// motor de recetas.
type RecipeCreator interface {
	CreateForConversion(ctx context.Context, venueID, productID string, in dto.CreateRecipeRequest) (*entity.Recipe, error)
}
