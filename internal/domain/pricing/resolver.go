package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// SuggestedPrice resuelve el precio sugerido según la estrategia de la política.
//
//	MANUAL:             el precio actual, sin cálculo.
//	AUTO_MARKUP:        costo × (1 + markup/100).
//	AUTO_TARGET_MARGIN: costo / (foodCost%/100). foodCost% <= 0 -> ErrInvalidTarget.
//
// Tras una fórmula automática, si hay MinimumPrice y el sugerido queda por debajo,
// se eleva al mínimo.
func SuggestedPrice(recipeCost decimal.Decimal, policy *entity.PricingPolicy, currentPrice decimal.Decimal) (decimal.Decimal, error) {
	var suggested decimal.Decimal
	switch policy.Strategy {
	case entity.PricingStrategyManual:
		return currentPrice, nil
	case entity.PricingStrategyAutoMarkup:
		factor := decimal.NewFromInt(1).Add(policy.TargetMarkupPercentage.Div(hundred))
		suggested = recipeCost.Mul(factor)
	case entity.PricingStrategyTargetMargin:
		if policy.TargetFoodCostPercentage.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidTarget
		}
		suggested = recipeCost.Div(policy.TargetFoodCostPercentage.Div(hundred))
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}

	if policy.MinimumPrice != nil && suggested.LessThan(*policy.MinimumPrice) {
		suggested = *policy.MinimumPrice
	}
	return suggested, nil
}

// FoodCostPercentage devuelve costo/precio × 100. Con precio cero el valor no
// está definido: el caller debe guardar antes de llamar.
func FoodCostPercentage(recipeCost, price decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return recipeCost.Div(price).Mul(hundred)
}

// Umbrales de clasificación (límite superior estricto del bucket inferior:
// exactamente 20.0 es GOOD, 30.0 es ACCEPTABLE, 40.0 es POOR).
var (
	excellentBelow  = decimal.NewFromInt(20)
	goodBelow       = decimal.NewFromInt(30)
	acceptableBelow = decimal.NewFromInt(40)
)

// Classify clasifica la rentabilidad según el porcentaje de costo de insumos.
func Classify(foodCostPct decimal.Decimal) string {
	switch {
	case foodCostPct.LessThan(excellentBelow):
		return entity.ProfitabilityExcellent
	case foodCostPct.LessThan(goodBelow):
		return entity.ProfitabilityGood
	case foodCostPct.LessThan(acceptableBelow):
		return entity.ProfitabilityAcceptable
	default:
		return entity.ProfitabilityPoor
	}
}
