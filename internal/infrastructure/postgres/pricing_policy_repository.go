package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ repository.PricingPolicyRepository = (*PricingPolicyRepo)(nil)

// PricingPolicyRepo persistencia de políticas de precio sobre PostgreSQL.
type PricingPolicyRepo struct {
	q Querier
}

// NewPricingPolicyRepository construye el adaptador de políticas. Pasar pool o tx (Querier).
func NewPricingPolicyRepository(q Querier) *PricingPolicyRepo {
	return &PricingPolicyRepo{q: q}
}

// GetByProductID obtiene la política de precio de un producto.
func (r *PricingPolicyRepo) GetByProductID(ctx context.Context, productID string) (*entity.PricingPolicy, error) {
	query := `
		SELECT id, venue_id, product_id, strategy, target_food_cost_pct,
			target_markup_pct, minimum_price, created_at, updated_at
		FROM pricing_policies WHERE product_id = $1`
	var p entity.PricingPolicy
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.VenueID, &p.ProductID, &p.Strategy, &p.TargetFoodCostPercentage,
		&p.TargetMarkupPercentage, &p.MinimumPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing policy: %w", err)
	}
	return &p, nil
}

// Upsert inserta o reemplaza la política del producto (uno a uno).
func (r *PricingPolicyRepo) Upsert(ctx context.Context, p *entity.PricingPolicy) error {
	query := `
		INSERT INTO pricing_policies (id, venue_id, product_id, strategy, target_food_cost_pct,
			target_markup_pct, minimum_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) DO UPDATE SET
			strategy = EXCLUDED.strategy,
			target_food_cost_pct = EXCLUDED.target_food_cost_pct,
			target_markup_pct = EXCLUDED.target_markup_pct,
			minimum_price = EXCLUDED.minimum_price,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.VenueID, p.ProductID, p.Strategy, p.TargetFoodCostPercentage,
		p.TargetMarkupPercentage, p.MinimumPrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert pricing policy: %w", err)
	}
	return nil
}

// DeleteByProductID elimina la política del producto.
func (r *PricingPolicyRepo) DeleteByProductID(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM pricing_policies WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete pricing policy: %w", err)
	}
	return nil
}
