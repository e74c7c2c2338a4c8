package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastano/fogon-api/internal/application/products"
	"github.com/dcastano/fogon-api/internal/application/recipes"
	"github.com/dcastano/fogon-api/internal/application/stock"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ products.TxRunner = (*TxRunner)(nil)
var _ recipes.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del libro de materias
// primas atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.StockMovementRepository,
	proposalRepo repository.ProposalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewRawMaterialRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	proposalRepo := NewProposalRepository(tx)

	if err := fn(materialRepo, movRepo, proposalRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduct inicia una transacción con los repos del inventario de productos
// por conteo de unidades.
func (r *TxRunner) RunProduct(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	proposalRepo repository.ProposalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	movRepo := NewProductMovementRepository(tx)
	proposalRepo := NewProposalRepository(tx)

	if err := fn(productRepo, movRepo, proposalRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRecipe inicia una transacción con los repos de recetas y productos, para
// que la receta y el método de control del producto cambien como unidad.
func (r *TxRunner) RunRecipe(ctx context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recipeRepo := NewRecipeRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(recipeRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
