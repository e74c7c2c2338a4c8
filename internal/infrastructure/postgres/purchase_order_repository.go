package postgres

import (
	"context"
	"fmt"

	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo lectura de órdenes de compra sobre PostgreSQL. Este motor
// nunca escribe en estas tablas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// ListByVenue lista órdenes de la sede filtrando por estados (vacío = todas),
// con sus líneas.
func (r *PurchaseOrderRepo) ListByVenue(ctx context.Context, venueID string, statuses []string) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, venue_id, supplier_name, status, ordered_at, expected_at
		FROM purchase_orders
		WHERE venue_id = $1 AND ($2::text[] IS NULL OR status = ANY($2))
		ORDER BY ordered_at DESC`
	var statusArg any
	if len(statuses) > 0 {
		statusArg = statuses
	}
	rows, err := r.q.Query(ctx, query, venueID, statusArg)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.VenueID, &po.SupplierName, &po.Status, &po.OrderedAt, &po.ExpectedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range orders {
		lines, err := r.linesByOrder(ctx, po.ID)
		if err != nil {
			return nil, err
		}
		po.Lines = lines
	}
	return orders, nil
}

// OpenLinesByMaterial devuelve las líneas de órdenes abiertas que referencian
// la materia prima.
func (r *PurchaseOrderRepo) OpenLinesByMaterial(ctx context.Context, venueID, rawMaterialID string) ([]entity.PurchaseOrderLine, error) {
	query := openLinesQuery + ` AND l.raw_material_id = $3`
	return r.queryLines(ctx, query, venueID, entity.OpenPOStatuses, rawMaterialID)
}

// OpenLinesByVenue devuelve todas las líneas abiertas de la sede.
func (r *PurchaseOrderRepo) OpenLinesByVenue(ctx context.Context, venueID string) ([]entity.PurchaseOrderLine, error) {
	return r.queryLines(ctx, openLinesQuery, venueID, entity.OpenPOStatuses)
}

const openLinesQuery = `
	SELECT l.id, l.purchase_order_id, l.raw_material_id,
		l.quantity_ordered, l.quantity_received, l.unit_cost
	FROM purchase_order_lines l
	JOIN purchase_orders o ON o.id = l.purchase_order_id
	WHERE o.venue_id = $1 AND o.status = ANY($2)`

func (r *PurchaseOrderRepo) queryLines(ctx context.Context, query string, args ...any) ([]entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.RawMaterialID,
			&l.QuantityOrdered, &l.QuantityReceived, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PurchaseOrderRepo) linesByOrder(ctx context.Context, orderID string) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, purchase_order_id, raw_material_id,
			quantity_ordered, quantity_received, unit_cost
		FROM purchase_order_lines WHERE purchase_order_id = $1`
	return r.queryLines(ctx, query, orderID)
}
