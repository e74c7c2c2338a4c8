package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe es la lista de materiales (receta) de un producto vendible: uno a uno
// con el producto. TotalCost es derivado de las líneas no variables y se
// materializa para consultas rápidas.
type Recipe struct {
	ID              string
	VenueID         string
	ProductID       string
	PortionYield    int // porciones por tanda, >= 1
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Notes           string
	TotalCost       decimal.Decimal
	Lines           []RecipeLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecipeLine es un ingrediente de la receta. Pertenece a exactamente una receta;
// nunca se comparte. Una línea variable depende de un modificador elegido al
// momento de la venta y queda fuera del cálculo de costo.
type RecipeLine struct {
	ID              string
	RecipeID        string
	RawMaterialID   string
	Quantity        decimal.Decimal // en la unidad de la materia prima
	Unit            string
	IsOptional      bool
	SubstituteNotes string
	IsVariable      bool
	ModifierGroupID *string
	CreatedAt       time.Time
}

// HasVariableLines indica si alguna línea depende de modificadores de venta.
func (r *Recipe) HasVariableLines() bool {
	for _, l := range r.Lines {
		if l.IsVariable {
			return true
		}
	}
	return false
}
