package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineInput línea de receta en creación o en POST de línea suelta.
type RecipeLineInput struct {
	RawMaterialID   string          `json:"raw_material_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit" validate:"omitempty,max=10"`
	IsOptional      bool            `json:"is_optional"`
	SubstituteNotes string          `json:"substitute_notes" validate:"omitempty,max=500"`
	IsVariable      bool            `json:"is_variable"`
	ModifierGroupID *string         `json:"modifier_group_id,omitempty"`
}

// CreateRecipeRequest body para POST /products/:id/recipe.
type CreateRecipeRequest struct {
	PortionYield    int               `json:"portion_yield" validate:"required,min=1"`
	PrepTimeMinutes *int              `json:"prep_time_minutes,omitempty" validate:"omitempty,min=0"`
	CookTimeMinutes *int              `json:"cook_time_minutes,omitempty" validate:"omitempty,min=0"`
	Notes           string            `json:"notes" validate:"omitempty,max=2000"`
	Lines           []RecipeLineInput `json:"lines"`
}

// UpdateRecipeRequest body para PATCH /products/:id/recipe (sin líneas).
type UpdateRecipeRequest struct {
	PortionYield    *int    `json:"portion_yield,omitempty" validate:"omitempty,min=1"`
	PrepTimeMinutes *int    `json:"prep_time_minutes,omitempty" validate:"omitempty,min=0"`
	CookTimeMinutes *int    `json:"cook_time_minutes,omitempty" validate:"omitempty,min=0"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	ID              string          `json:"id"`
	RawMaterialID   string          `json:"raw_material_id"`
	RawMaterialName string          `json:"raw_material_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	LineCost        decimal.Decimal `json:"line_cost"` // cero para líneas variables
	IsOptional      bool            `json:"is_optional"`
	SubstituteNotes string          `json:"substitute_notes,omitempty"`
	IsVariable      bool            `json:"is_variable"`
	ModifierGroupID *string         `json:"modifier_group_id,omitempty"`
}

// RecipeResponse receta con costos derivados.
type RecipeResponse struct {
	ID               string               `json:"id"`
	ProductID        string               `json:"product_id"`
	PortionYield     int                  `json:"portion_yield"`
	PrepTimeMinutes  *int                 `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes  *int                 `json:"cook_time_minutes,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	TotalCost        decimal.Decimal      `json:"total_cost"`
	CostPerServing   decimal.Decimal      `json:"cost_per_serving"`
	HasVariableLines bool                 `json:"has_variable_lines"`
	Lines            []RecipeLineResponse `json:"lines"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}
