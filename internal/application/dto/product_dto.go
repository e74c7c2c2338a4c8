package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto vendible.
// TrackInventory=true exige InventoryMethod=QUANTITY; el método RECIPE se
// obtiene creando la receta o con la conversión explícita.
type CreateProductRequest struct {
	SKU             string          `json:"sku" validate:"omitempty,max=50"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"omitempty,max=100"`
	Price           decimal.Decimal `json:"price"`
	TrackInventory  bool            `json:"track_inventory"`
	InventoryMethod string          `json:"inventory_method" validate:"omitempty,oneof=QUANTITY"`
	InitialStock    decimal.Decimal `json:"initial_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (PATCH parcial).
// Stock y método de inventario no se tocan aquí: movimientos y conversión explícita.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	VenueID         string          `json:"venue_id"`
	SKU             string          `json:"sku,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Price           decimal.Decimal `json:"price"`
	TrackInventory  bool            `json:"track_inventory"`
	InventoryMethod string          `json:"inventory_method,omitempty"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ConvertToRecipeRequest body para POST /products/:id/convert-to-recipe.
// Incluye la receta inicial para que el producto nunca quede sin método de control.
type ConvertToRecipeRequest struct {
	Recipe CreateRecipeRequest `json:"recipe"`
}
