package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /raw-materials/:id/adjust y /products/:id/adjust.
// Quantity es el delta con signo. Para confirmar un ajuste grande se reenvía la
// misma petición con Confirm=true y el ProposalID devuelto por la primera llamada.
type AdjustStockRequest struct {
	Type       string           `json:"type" validate:"required"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"` // solo PURCHASE
	Reason     string           `json:"reason" validate:"omitempty,max=500"`
	Reference  string           `json:"reference" validate:"omitempty,max=200"`
	Confirm    bool             `json:"confirm,omitempty"`
	ProposalID string           `json:"proposal_id,omitempty"`
}

// StockMovementResponse salida de un movimiento del libro de stock.
type StockMovementResponse struct {
	ID            string           `json:"id"`
	RawMaterialID string           `json:"raw_material_id,omitempty"`
	ProductID     string           `json:"product_id,omitempty"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PreviousStock decimal.Decimal  `json:"previous_stock"`
	NewStock      decimal.Decimal  `json:"new_stock"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	Reference     string           `json:"reference,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CreatedBy     string           `json:"created_by,omitempty"`
}

// ConfirmationRequiredResponse cuerpo 409 del primer intento de un ajuste grande.
type ConfirmationRequiredResponse struct {
	Code       string          `json:"code"` // CONFIRMATION_REQUIRED
	Message    string          `json:"message"`
	ProposalID string          `json:"proposal_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// MovementListResponse historial de movimientos, del más reciente al más antiguo.
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Total int                     `json:"total"`
}
