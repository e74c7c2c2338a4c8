package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia de recetas y sus líneas.
type RecipeRepository interface {
	// Create persiste la receta con todas sus líneas.
	Create(ctx context.Context, r *entity.Recipe) error
	GetByProductID(ctx context.Context, productID string) (*entity.Recipe, error)
	Update(ctx context.Context, r *entity.Recipe) error
	UpdateTotalCost(ctx context.Context, recipeID string, totalCost decimal.Decimal) error
	AddLine(ctx context.Context, line *entity.RecipeLine) error
	// RemoveLine es idempotente: borrar una línea inexistente no es error.
	RemoveLine(ctx context.Context, lineID string) error
	// DeleteByProductID elimina la receta y todas sus líneas como unidad.
	DeleteByProductID(ctx context.Context, productID string) error
	// CountByRawMaterial cuenta cuántas recetas referencian la materia prima.
	CountByRawMaterial(ctx context.Context, rawMaterialID string) (int, error)
}
