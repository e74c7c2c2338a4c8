package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de materia prima.
const (
	CategoryProduce   = "PRODUCE"
	CategoryMeat      = "MEAT"
	CategorySeafood   = "SEAFOOD"
	CategoryDairy     = "DAIRY"
	CategoryDryGoods  = "DRY_GOODS"
	CategoryBeverage  = "BEVERAGE"
	CategoryAlcohol   = "ALCOHOL"
	CategoryPackaging = "PACKAGING"
	CategoryCleaning  = "CLEANING"
	CategoryOther     = "OTHER"
)

// Unidades de medida soportadas para materias primas.
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitLiter    = "l"
	UnitMillilit = "ml"
	UnitUnit     = "un"
)

// ValidCategory indica si la categoría pertenece al conjunto enumerado.
func ValidCategory(c string) bool {
	switch c {
	case CategoryProduce, CategoryMeat, CategorySeafood, CategoryDairy,
		CategoryDryGoods, CategoryBeverage, CategoryAlcohol,
		CategoryPackaging, CategoryCleaning, CategoryOther:
		return true
	}
	return false
}

// ValidUnit indica si la unidad de medida es una de las soportadas.
func ValidUnit(u string) bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLiter, UnitMillilit, UnitUnit:
		return true
	}
	return false
}

// RawMaterial representa un insumo comprable de la sede, con stock y costo por unidad.
// CurrentStock solo se muta vía movimientos del libro de stock; AvgCostPerUnit es
// promedio ponderado recalculado en cada compra.
type RawMaterial struct {
	ID             string
	VenueID        string
	SKU            string // único por sede
	GTIN           string // código de barras, opcional
	Name           string
	Category       string
	Unit           string
	CurrentStock   decimal.Decimal
	MinimumStock   decimal.Decimal
	ReorderPoint   decimal.Decimal // invariante: MinimumStock <= ReorderPoint
	MaximumStock   *decimal.Decimal
	CostPerUnit    decimal.Decimal // costo de la última compra
	AvgCostPerUnit decimal.Decimal // promedio ponderado
	Perishable     bool
	ShelfLifeDays  *int
	Active         bool
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
