package costing

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// TotalCost calcula el costo de una receta: Σ cantidad × costo unitario de la
// materia prima, sobre las líneas no variables. Las líneas variables dependen de
// modificadores elegidos en la venta y quedan fuera del cálculo.
// unitCosts mapea RawMaterialID -> costo por unidad; una línea sin costo conocido
// aporta cero.
func TotalCost(lines []entity.RecipeLine, unitCosts map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.IsVariable {
			continue
		}
		cost, ok := unitCosts[line.RawMaterialID]
		if !ok {
			continue
		}
		total = total.Add(line.Quantity.Mul(cost))
	}
	return total
}

// CostPerServing divide el costo total entre las porciones que rinde la tanda.
// portionYield < 1 devuelve cero; la validación de entrada vive en el caso de uso.
func CostPerServing(totalCost decimal.Decimal, portionYield int) decimal.Decimal {
	if portionYield < 1 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(int64(portionYield)))
}

// WeightedAverageCost recalcula el costo promedio ponderado tras una compra.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentStock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
