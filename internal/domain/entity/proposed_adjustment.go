package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Destino de una propuesta de ajuste.
const (
	AdjustmentTargetRawMaterial = "RAW_MATERIAL"
	AdjustmentTargetProduct     = "PRODUCT"
)

// Estados de una propuesta de ajuste grande.
const (
	ProposalStatusProposed  = "PROPOSED"
	ProposalStatusConfirmed = "CONFIRMED"
)

// ProposedAdjustment es el paso servidor del protocolo de confirmación en dos fases
// para ajustes grandes (|delta| > 50% del stock actual). El ID funciona como token
// de idempotencia: confirmar dos veces la misma propuesta no duplica el movimiento.
// Una propuesta sin confirmar no tiene efectos y puede abandonarse.
type ProposedAdjustment struct {
	ID           string // token de idempotencia
	VenueID      string
	TargetKind   string // RAW_MATERIAL | PRODUCT
	TargetID     string
	MovementType string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reason       string
	Reference    string
	Status       string
	MovementID   *string // movimiento generado al confirmar
	CreatedAt    time.Time
	CreatedBy    string
	ConfirmedAt  *time.Time
}
