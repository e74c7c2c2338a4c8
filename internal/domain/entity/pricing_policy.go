package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estrategias de precio.
const (
	PricingStrategyManual       = "MANUAL"
	PricingStrategyAutoMarkup   = "AUTO_MARKUP"
	PricingStrategyTargetMargin = "AUTO_TARGET_MARGIN"
)

// ValidPricingStrategy indica si la estrategia pertenece al conjunto enumerado.
func ValidPricingStrategy(s string) bool {
	switch s {
	case PricingStrategyManual, PricingStrategyAutoMarkup, PricingStrategyTargetMargin:
		return true
	}
	return false
}

// Clasificación de rentabilidad según porcentaje de costo de insumos.
const (
	ProfitabilityExcellent  = "EXCELLENT"  // < 20%
	ProfitabilityGood       = "GOOD"       // < 30%
	ProfitabilityAcceptable = "ACCEPTABLE" // < 40%
	ProfitabilityPoor       = "POOR"       // >= 40%
)

// PricingPolicy define cómo se sugiere el precio de venta de un producto
// a partir del costo de su receta. Uno a uno con el producto.
type PricingPolicy struct {
	ID                       string
	VenueID                  string
	ProductID                string
	Strategy                 string
	TargetFoodCostPercentage decimal.Decimal // solo AUTO_TARGET_MARGIN
	TargetMarkupPercentage   decimal.Decimal // solo AUTO_MARKUP
	MinimumPrice             *decimal.Decimal
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
