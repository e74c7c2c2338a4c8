package stock

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain"
)

var half = decimal.NewFromFloat(0.5)

// Apply calcula el stock resultante de un delta con signo.
// Devuelve ErrNegativeStock si previous + delta < 0; el caller no debe escribir nada.
func Apply(previous, delta decimal.Decimal) (decimal.Decimal, error) {
	next := previous.Add(delta)
	if next.IsNegative() {
		return decimal.Decimal{}, domain.ErrNegativeStock
	}
	return next, nil
}

// IsLargeAdjustment indica si el delta supera el 50% del stock previo (con stock
// previo positivo). Un ajuste grande no se aplica directo: primero queda como
// propuesta y solo una segunda llamada confirmada lo compromete. El umbral existe
// para atrapar errores de digitación (1000 en vez de 100) antes de ensuciar la
// pista de auditoría.
func IsLargeAdjustment(previous, delta decimal.Decimal) bool {
	if !previous.IsPositive() {
		return false
	}
	return delta.Abs().GreaterThan(previous.Mul(half))
}
