package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertPricingPolicyRequest body para PUT /products/:id/pricing-policy.
type UpsertPricingPolicyRequest struct {
	Strategy                 string           `json:"strategy" validate:"required,oneof=MANUAL AUTO_MARKUP AUTO_TARGET_MARGIN"`
	TargetFoodCostPercentage decimal.Decimal  `json:"target_food_cost_percentage"`
	TargetMarkupPercentage   decimal.Decimal  `json:"target_markup_percentage"`
	MinimumPrice             *decimal.Decimal `json:"minimum_price,omitempty"`
}

// PricingPolicyResponse salida de la política de precios.
type PricingPolicyResponse struct {
	ID                       string           `json:"id"`
	ProductID                string           `json:"product_id"`
	Strategy                 string           `json:"strategy"`
	TargetFoodCostPercentage decimal.Decimal  `json:"target_food_cost_percentage"`
	TargetMarkupPercentage   decimal.Decimal  `json:"target_markup_percentage"`
	MinimumPrice             *decimal.Decimal `json:"minimum_price,omitempty"`
	CreatedAt                time.Time        `json:"created_at"`
	UpdatedAt                time.Time        `json:"updated_at"`
}

// PriceCalculationResponse salida de GET /products/:id/pricing/calculate.
type PriceCalculationResponse struct {
	ProductID          string          `json:"product_id"`
	RecipeCost         decimal.Decimal `json:"recipe_cost"`
	CurrentPrice       decimal.Decimal `json:"current_price"`
	SuggestedPrice     decimal.Decimal `json:"suggested_price"`
	FoodCostPercentage decimal.Decimal `json:"food_cost_percentage"`
	Profitability      string          `json:"profitability"`
	MinimumApplied     bool            `json:"minimum_applied"`
}

// ApplySuggestedResponse salida de POST /products/:id/pricing/apply-suggested.
type ApplySuggestedResponse struct {
	ProductID     string          `json:"product_id"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
}
