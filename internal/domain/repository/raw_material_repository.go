package repository

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// RawMaterialFilter filtros de listado del catálogo.
type RawMaterialFilter struct {
	Search       string // búsqueda por nombre, insensible a tildes
	Category     string
	Active       *bool
	BelowReorder bool // solo materias bajo punto de reorden
}

// RawMaterialRepository define el puerto de persistencia del catálogo de materias primas.
type RawMaterialRepository interface {
	Create(ctx context.Context, m *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	GetByVenueAndSKU(ctx context.Context, venueID, sku string) (*entity.RawMaterial, error)
	List(ctx context.Context, venueID string, filter RawMaterialFilter, limit, offset int) ([]*entity.RawMaterial, error)
	Update(ctx context.Context, m *entity.RawMaterial) error
	Delete(ctx context.Context, id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Usar dentro de transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error)
}
