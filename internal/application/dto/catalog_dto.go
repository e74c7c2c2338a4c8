package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest entrada para crear una materia prima.
// SKU vacío: el servidor genera uno único para la sede.
type CreateRawMaterialRequest struct {
	SKU           string           `json:"sku" validate:"omitempty,min=1,max=50"`
	GTIN          string           `json:"gtin" validate:"omitempty,max=14"`
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Category      string           `json:"category" validate:"required"`
	Unit          string           `json:"unit" validate:"required"`
	MinimumStock  decimal.Decimal  `json:"minimum_stock"`
	ReorderPoint  decimal.Decimal  `json:"reorder_point"`
	MaximumStock  *decimal.Decimal `json:"maximum_stock,omitempty"`
	CostPerUnit   decimal.Decimal  `json:"cost_per_unit"`
	Perishable    bool             `json:"perishable"`
	ShelfLifeDays *int             `json:"shelf_life_days,omitempty"`
	Description   string           `json:"description"`
}

// UpdateRawMaterialRequest entrada para actualizar (PATCH parcial).
// CurrentStock no es editable aquí: se muta solo vía movimientos.
type UpdateRawMaterialRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	GTIN          *string          `json:"gtin" validate:"omitempty,max=14"`
	Category      *string          `json:"category"`
	Unit          *string          `json:"unit"`
	MinimumStock  *decimal.Decimal `json:"minimum_stock,omitempty"`
	ReorderPoint  *decimal.Decimal `json:"reorder_point,omitempty"`
	MaximumStock  *decimal.Decimal `json:"maximum_stock,omitempty"`
	CostPerUnit   *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Perishable    *bool            `json:"perishable,omitempty"`
	ShelfLifeDays *int             `json:"shelf_life_days,omitempty"`
	Active        *bool            `json:"active,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

// RawMaterialResponse salida de una materia prima.
type RawMaterialResponse struct {
	ID             string           `json:"id"`
	VenueID        string           `json:"venue_id"`
	SKU            string           `json:"sku"`
	GTIN           string           `json:"gtin,omitempty"`
	Name           string           `json:"name"`
	Category       string           `json:"category"`
	Unit           string           `json:"unit"`
	CurrentStock   decimal.Decimal  `json:"current_stock"`
	MinimumStock   decimal.Decimal  `json:"minimum_stock"`
	ReorderPoint   decimal.Decimal  `json:"reorder_point"`
	MaximumStock   *decimal.Decimal `json:"maximum_stock,omitempty"`
	CostPerUnit    decimal.Decimal  `json:"cost_per_unit"`
	AvgCostPerUnit decimal.Decimal  `json:"avg_cost_per_unit"`
	Perishable     bool             `json:"perishable"`
	ShelfLifeDays  *int             `json:"shelf_life_days,omitempty"`
	Active         bool             `json:"active"`
	Description    string           `json:"description,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// RawMaterialListResponse lista paginada de materias primas.
type RawMaterialListResponse struct {
	Items []RawMaterialResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// GeneratedSkuResponse salida de GET /raw-materials/generate-sku.
type GeneratedSkuResponse struct {
	SKU string `json:"sku"`
}
