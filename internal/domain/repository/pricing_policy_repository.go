package repository

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// PricingPolicyRepository define el puerto de persistencia de políticas de precio.
type PricingPolicyRepository interface {
	GetByProductID(ctx context.Context, productID string) (*entity.PricingPolicy, error)
	Upsert(ctx context.Context, p *entity.PricingPolicy) error
	DeleteByProductID(ctx context.Context, productID string) error
}
