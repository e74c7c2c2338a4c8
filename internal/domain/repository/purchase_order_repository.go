package repository

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de solo lectura sobre órdenes de compra.
// Las órdenes se administran en otro subsistema; aquí solo se consultan para
// calcular stock confirmado/en tránsito.
type PurchaseOrderRepository interface {
	ListByVenue(ctx context.Context, venueID string, statuses []string) ([]*entity.PurchaseOrder, error)
	// OpenLinesByMaterial devuelve las líneas de órdenes abiertas (SENT, CONFIRMED,
	// SHIPPED, PARTIAL) que referencian la materia prima.
	OpenLinesByMaterial(ctx context.Context, venueID, rawMaterialID string) ([]entity.PurchaseOrderLine, error)
	// OpenLinesByVenue devuelve todas las líneas abiertas de la sede.
	OpenLinesByVenue(ctx context.Context, venueID string) ([]entity.PurchaseOrderLine, error)
}
