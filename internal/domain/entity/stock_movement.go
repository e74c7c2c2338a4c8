package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypePURCHASE   = "PURCHASE"   // recepción de compra
	MovementTypeUSAGE      = "USAGE"      // consumo en cocina
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
	MovementTypeSPOILAGE   = "SPOILAGE"   // merma / vencimiento
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre sedes
	MovementTypeRETURN     = "RETURN"     // devolución a proveedor
	MovementTypeCOUNT      = "COUNT"      // conteo físico (delta contra lo contado)
)

// ValidMovementType indica si el tipo pertenece al conjunto enumerado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePURCHASE, MovementTypeUSAGE, MovementTypeADJUSTMENT,
		MovementTypeSPOILAGE, MovementTypeTRANSFER, MovementTypeRETURN,
		MovementTypeCOUNT:
		return true
	}
	return false
}

// StockMovement es el registro inmutable de un cambio de stock de materia prima.
// Invariante: NewStock = PreviousStock + Quantity y NewStock >= 0.
// Nunca se reescribe ni se borra: es la pista de auditoría.
type StockMovement struct {
	ID            string
	VenueID       string
	RawMaterialID string
	Type          string
	Quantity      decimal.Decimal // delta con signo
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	UnitCost      *decimal.Decimal // solo PURCHASE, opcional
	Reason        string
	Reference     string // factura, orden de compra, nota
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
