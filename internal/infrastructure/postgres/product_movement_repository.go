package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ repository.ProductMovementRepository = (*ProductMovementRepo)(nil)

// ProductMovementRepo libro de stock de productos por unidades. Solo INSERT y SELECT.
type ProductMovementRepo struct {
	q Querier
}

// NewProductMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductMovementRepository(q Querier) *ProductMovementRepo {
	return &ProductMovementRepo{q: q}
}

// Create inserta un movimiento de producto.
func (r *ProductMovementRepo) Create(ctx context.Context, m *entity.ProductStockMovement) error {
	query := `
		INSERT INTO product_stock_movements (id, venue_id, product_id, type, quantity,
			previous_stock, new_stock, reason, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.VenueID, m.ProductID, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, m.Reason, m.Reference, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert product movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento de producto por ID.
func (r *ProductMovementRepo) GetByID(ctx context.Context, id string) (*entity.ProductStockMovement, error) {
	query := `
		SELECT id, venue_id, product_id, type, quantity,
			previous_stock, new_stock, reason, reference, created_at, created_by
		FROM product_stock_movements
		WHERE id = $1`
	var m entity.ProductStockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.VenueID, &m.ProductID, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.NewStock, &m.Reason, &m.Reference, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product movement: %w", err)
	}
	return &m, nil
}

// ListByProduct devuelve movimientos del producto, del más reciente al más antiguo.
func (r *ProductMovementRepo) ListByProduct(ctx context.Context, venueID, productID string, limit int) ([]*entity.ProductStockMovement, error) {
	query := `
		SELECT id, venue_id, product_id, type, quantity,
			previous_stock, new_stock, reason, reference, created_at, created_by
		FROM product_stock_movements
		WHERE venue_id = $1 AND product_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, venueID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list product movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductStockMovement
	for rows.Next() {
		var m entity.ProductStockMovement
		if err := rows.Scan(&m.ID, &m.VenueID, &m.ProductID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reason, &m.Reference, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan product movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
