package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStockMovement es el libro paralelo (más simple) para productos con
// inventario por conteo de unidades. Mismas reglas que StockMovement:
// NewStock = PreviousStock + Quantity, NewStock >= 0, inmutable.
type ProductStockMovement struct {
	ID            string
	VenueID       string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	Reference     string
	CreatedAt     time.Time
	CreatedBy     string
}
