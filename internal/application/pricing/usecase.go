package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	pricingrules "github.com/dcastano/fogon-api/internal/domain/pricing"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// CostProvider entrega el costo vigente de la receta de un producto.
// Lo implementa el motor de recetas.
type CostProvider interface {
	TotalCost(ctx context.Context, venueID, productID string) (decimal.Decimal, error)
}

// UseCase resuelve precios sugeridos y clasificación de rentabilidad a partir de
// la política de precios del producto y el costo de su receta.
type UseCase struct {
	policyRepo  repository.PricingPolicyRepository
	productRepo repository.ProductRepository
	costs       CostProvider
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	policyRepo repository.PricingPolicyRepository,
	productRepo repository.ProductRepository,
	costs CostProvider,
) *UseCase {
	return &UseCase{policyRepo: policyRepo, productRepo: productRepo, costs: costs}
}

// GetPolicy devuelve la política de precios del producto.
func (uc *UseCase) GetPolicy(ctx context.Context, venueID, productID string) (*dto.PricingPolicyResponse, error) {
	if _, err := uc.ownedProduct(ctx, venueID, productID); err != nil {
		return nil, err
	}
	policy, err := uc.policyRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.ErrNoPolicy
	}
	return toPolicyResponse(policy), nil
}

// UpsertPolicy crea o reemplaza la política de precios del producto.
// AUTO_TARGET_MARGIN exige porcentaje objetivo > 0 (ErrInvalidTarget).
func (uc *UseCase) UpsertPolicy(ctx context.Context, venueID, productID string, in dto.UpsertPricingPolicyRequest) (*dto.PricingPolicyResponse, error) {
	if _, err := uc.ownedProduct(ctx, venueID, productID); err != nil {
		return nil, err
	}
	if !entity.ValidPricingStrategy(in.Strategy) {
		return nil, domain.ErrInvalidInput
	}
	if in.Strategy == entity.PricingStrategyTargetMargin && in.TargetFoodCostPercentage.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidTarget
	}
	if in.Strategy == entity.PricingStrategyAutoMarkup && in.TargetMarkupPercentage.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumPrice != nil && in.MinimumPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	policy, err := uc.policyRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = &entity.PricingPolicy{
			ID:        uuid.New().String(),
			VenueID:   venueID,
			ProductID: productID,
			CreatedAt: now,
		}
	}
	policy.Strategy = in.Strategy
	policy.TargetFoodCostPercentage = in.TargetFoodCostPercentage
	policy.TargetMarkupPercentage = in.TargetMarkupPercentage
	policy.MinimumPrice = in.MinimumPrice
	policy.UpdatedAt = now

	if err := uc.policyRepo.Upsert(ctx, policy); err != nil {
		return nil, err
	}
	return toPolicyResponse(policy), nil
}

// Calculate computa precio sugerido, porcentaje de costo y clasificación de
// rentabilidad para el producto. Requiere receta (el costo sale de ahí).
func (uc *UseCase) Calculate(ctx context.Context, venueID, productID string) (*dto.PriceCalculationResponse, error) {
	product, err := uc.ownedProduct(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	policy, err := uc.policyRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.ErrNoPolicy
	}

	recipeCost, err := uc.costs.TotalCost(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}

	suggested, err := pricingrules.SuggestedPrice(recipeCost, policy, product.Price)
	if err != nil {
		return nil, err
	}

	foodCostPct := decimal.Zero
	if !suggested.IsZero() {
		foodCostPct = pricingrules.FoodCostPercentage(recipeCost, suggested)
	}

	minimumApplied := policy.MinimumPrice != nil &&
		policy.Strategy != entity.PricingStrategyManual &&
		suggested.Equal(*policy.MinimumPrice)

	return &dto.PriceCalculationResponse{
		ProductID:          productID,
		RecipeCost:         recipeCost,
		CurrentPrice:       product.Price,
		SuggestedPrice:     suggested,
		FoodCostPercentage: foodCostPct,
		Profitability:      pricingrules.Classify(foodCostPct),
		MinimumApplied:     minimumApplied,
	}, nil
}

// ApplySuggested fija el precio actual del producto al precio sugerido vigente.
// ErrNoPolicy si el producto no tiene política.
func (uc *UseCase) ApplySuggested(ctx context.Context, venueID, productID string) (*dto.ApplySuggestedResponse, error) {
	product, err := uc.ownedProduct(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	policy, err := uc.policyRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.ErrNoPolicy
	}

	recipeCost, err := uc.costs.TotalCost(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	suggested, err := pricingrules.SuggestedPrice(recipeCost, policy, product.Price)
	if err != nil {
		return nil, err
	}

	previous := product.Price
	if err := uc.productRepo.UpdatePrice(ctx, productID, suggested); err != nil {
		return nil, err
	}
	return &dto.ApplySuggestedResponse{
		ProductID:     productID,
		PreviousPrice: previous,
		NewPrice:      suggested,
	}, nil
}

func (uc *UseCase) ownedProduct(ctx context.Context, venueID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.VenueID != venueID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toPolicyResponse(p *entity.PricingPolicy) *dto.PricingPolicyResponse {
	return &dto.PricingPolicyResponse{
		ID:                       p.ID,
		ProductID:                p.ProductID,
		Strategy:                 p.Strategy,
		TargetFoodCostPercentage: p.TargetFoodCostPercentage,
		TargetMarkupPercentage:   p.TargetMarkupPercentage,
		MinimumPrice:             p.MinimumPrice,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}
