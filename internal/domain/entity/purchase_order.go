package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Para el conciliador solo cuentan las abiertas.
const (
	POStatusDraft     = "DRAFT"
	POStatusSent      = "SENT"
	POStatusConfirmed = "CONFIRMED"
	POStatusShipped   = "SHIPPED"
	POStatusPartial   = "PARTIAL"
	POStatusCompleted = "COMPLETED"
	POStatusCancelled = "CANCELLED"
)

// OpenPOStatuses son los estados con mercancía confirmada/en tránsito.
var OpenPOStatuses = []string{POStatusSent, POStatusConfirmed, POStatusShipped, POStatusPartial}

// IsOpenPOStatus indica si el estado cuenta para stock en tránsito.
func IsOpenPOStatus(s string) bool {
	for _, open := range OpenPOStatuses {
		if s == open {
			return true
		}
	}
	return false
}

// PurchaseOrder es una orden de compra a proveedor. Este motor la lee pero no la
// administra: la recepción real entra como movimiento PURCHASE del libro de stock.
type PurchaseOrder struct {
	ID           string
	VenueID      string
	SupplierName string
	Status       string
	OrderedAt    time.Time
	ExpectedAt   *time.Time
	Lines        []PurchaseOrderLine
}

// PurchaseOrderLine es una línea de orden de compra (solo lectura aquí).
type PurchaseOrderLine struct {
	ID               string
	PurchaseOrderID  string
	RawMaterialID    string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitCost         decimal.Decimal
}
