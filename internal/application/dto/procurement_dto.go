package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineResponse línea de orden de compra (solo lectura).
type PurchaseOrderLineResponse struct {
	ID               string          `json:"id"`
	RawMaterialID    string          `json:"raw_material_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	Outstanding      decimal.Decimal `json:"outstanding"` // max(0, ordered - received)
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra (solo lectura).
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	SupplierName string                      `json:"supplier_name,omitempty"`
	Status       string                      `json:"status"`
	OrderedAt    time.Time                   `json:"ordered_at"`
	ExpectedAt   *time.Time                  `json:"expected_at,omitempty"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
}

// InTransitRow stock actual y confirmado/en tránsito de una materia prima.
// Se reportan lado a lado: el confirmado nunca se suma al actual.
type InTransitRow struct {
	RawMaterialID  string          `json:"raw_material_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ConfirmedStock decimal.Decimal `json:"confirmed_stock"`
}

// InTransitReportResponse reporte de stock en tránsito de la sede.
type InTransitReportResponse struct {
	Items []InTransitRow `json:"items"`
	Total int            `json:"total"`
}
