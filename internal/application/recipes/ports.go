package recipes

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repos de
// recetas y productos atados a esa tx. Garantiza que receta, líneas y método de
// control del producto cambien juntos: los dos métodos de inventario son
// excluyentes en todo momento, también ante un fallo a mitad de operación.
type TxRunner interface {
	RunRecipe(ctx context.Context, fn func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
	) error) error
}
