package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo persistencia de recetas y sus líneas sobre PostgreSQL.
// La receta y sus líneas se tratan como un agregado: recipe_lines tiene
// FK ON DELETE CASCADE hacia recipes.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la receta con todas sus líneas. El constraint único sobre
// product_id hace cumplir la relación uno a uno producto-receta.
func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, venue_id, product_id, portion_yield, prep_time_minutes,
			cook_time_minutes, notes, total_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.VenueID, rec.ProductID, rec.PortionYield, rec.PrepTimeMinutes,
		rec.CookTimeMinutes, rec.Notes, rec.TotalCost, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecipe
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	for i := range rec.Lines {
		if err := r.AddLine(ctx, &rec.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByProductID obtiene la receta de un producto con sus líneas.
func (r *RecipeRepo) GetByProductID(ctx context.Context, productID string) (*entity.Recipe, error) {
	query := `
		SELECT id, venue_id, product_id, portion_yield, prep_time_minutes,
			cook_time_minutes, notes, total_cost, created_at, updated_at
		FROM recipes WHERE product_id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&rec.ID, &rec.VenueID, &rec.ProductID, &rec.PortionYield, &rec.PrepTimeMinutes,
		&rec.CookTimeMinutes, &rec.Notes, &rec.TotalCost, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	lines, err := r.linesByRecipe(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return &rec, nil
}

// Update actualiza la cabecera de la receta (no toca las líneas).
func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) error {
	query := `
		UPDATE recipes SET portion_yield = $2, prep_time_minutes = $3,
			cook_time_minutes = $4, notes = $5, total_cost = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.PortionYield, rec.PrepTimeMinutes,
		rec.CookTimeMinutes, rec.Notes, rec.TotalCost, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// UpdateTotalCost materializa el costo total recalculado de la receta.
func (r *RecipeRepo) UpdateTotalCost(ctx context.Context, recipeID string, totalCost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE recipes SET total_cost = $2, updated_at = now() WHERE id = $1`,
		recipeID, totalCost,
	)
	if err != nil {
		return fmt.Errorf("update recipe total cost: %w", err)
	}
	return nil
}

// AddLine inserta una línea de receta.
func (r *RecipeRepo) AddLine(ctx context.Context, line *entity.RecipeLine) error {
	query := `
		INSERT INTO recipe_lines (id, recipe_id, raw_material_id, quantity, unit,
			is_optional, substitute_notes, is_variable, modifier_group_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.RecipeID, line.RawMaterialID, line.Quantity, line.Unit,
		line.IsOptional, line.SubstituteNotes, line.IsVariable, line.ModifierGroupID, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recipe line: %w", err)
	}
	return nil
}

// RemoveLine borra una línea. Idempotente: cero filas afectadas no es error.
func (r *RecipeRepo) RemoveLine(ctx context.Context, lineID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete recipe line: %w", err)
	}
	return nil
}

// DeleteByProductID elimina la receta del producto; las líneas caen por cascade.
func (r *RecipeRepo) DeleteByProductID(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// CountByRawMaterial cuenta cuántas recetas referencian la materia prima.
func (r *RecipeRepo) CountByRawMaterial(ctx context.Context, rawMaterialID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(DISTINCT recipe_id) FROM recipe_lines WHERE raw_material_id = $1`,
		rawMaterialID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recipes by raw material: %w", err)
	}
	return count, nil
}

func (r *RecipeRepo) linesByRecipe(ctx context.Context, recipeID string) ([]entity.RecipeLine, error) {
	query := `
		SELECT id, recipe_id, raw_material_id, quantity, unit,
			is_optional, substitute_notes, is_variable, modifier_group_id, created_at
		FROM recipe_lines WHERE recipe_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.RawMaterialID, &l.Quantity, &l.Unit,
			&l.IsOptional, &l.SubstituteNotes, &l.IsVariable, &l.ModifierGroupID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
