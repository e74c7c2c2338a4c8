package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de control de inventario de un producto vendible.
// Mutuamente excluyentes: TrackInventory=false XOR exactamente uno de {QUANTITY, RECIPE}.
const (
	InventoryMethodQuantity = "QUANTITY" // conteo simple de unidades
	InventoryMethodRecipe   = "RECIPE"   // derivado de la receta (ingredientes)
)

// Product representa un producto vendible de la sede.
// Price se fija manualmente o aplicando el precio sugerido de la política de precios.
// CurrentStock solo aplica cuando InventoryMethod es QUANTITY.
type Product struct {
	ID              string
	VenueID         string
	SKU             string
	Name            string
	Description     string
	Category        string
	Price           decimal.Decimal
	TrackInventory  bool
	InventoryMethod string // "" | QUANTITY | RECIPE
	CurrentStock    decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TracksByQuantity indica si el producto lleva inventario por conteo de unidades.
func (p *Product) TracksByQuantity() bool {
	return p.TrackInventory && p.InventoryMethod == InventoryMethodQuantity
}

// TracksByRecipe indica si el inventario del producto se deriva de su receta.
func (p *Product) TracksByRecipe() bool {
	return p.TrackInventory && p.InventoryMethod == InventoryMethodRecipe
}
