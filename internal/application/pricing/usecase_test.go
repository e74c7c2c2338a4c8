package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/pricing"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
)

const testVenue = "venue-1"

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// ── fakes en memoria ─────────────────────────────────────────────────────────

type fakePolicyRepo struct {
	byProduct map[string]*entity.PricingPolicy
}

func (r *fakePolicyRepo) GetByProductID(_ context.Context, productID string) (*entity.PricingPolicy, error) {
	p, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePolicyRepo) Upsert(_ context.Context, p *entity.PricingPolicy) error {
	cp := *p
	r.byProduct[p.ProductID] = &cp
	return nil
}

func (r *fakePolicyRepo) DeleteByProductID(_ context.Context, productID string) error {
	delete(r.byProduct, productID)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByVenueAndSKU(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) List(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) UpdatePrice(_ context.Context, id string, price decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Price = price
	return nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// fakeCostProvider devuelve un costo de receta fijo.
type fakeCostProvider struct {
	cost decimal.Decimal
	err  error
}

func (p *fakeCostProvider) TotalCost(context.Context, string, string) (decimal.Decimal, error) {
	return p.cost, p.err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func setup(recipeCost decimal.Decimal) (*pricing.UseCase, *fakePolicyRepo, *fakeProductRepo) {
	policies := &fakePolicyRepo{byProduct: make(map[string]*entity.PricingPolicy)}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-pizza": {
			ID: "prod-pizza", VenueID: testVenue, Name: "Pizza margarita",
			Price: dec(12.00), Active: true,
		},
	}}
	costs := &fakeCostProvider{cost: recipeCost}
	return pricing.NewUseCase(policies, products, costs), policies, products
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestGetPolicy_SinPolitica(t *testing.T) {
	uc, _, _ := setup(dec(3.00))

	_, err := uc.GetPolicy(context.Background(), testVenue, "prod-pizza")
	assert.ErrorIs(t, err, domain.ErrNoPolicy)
}

func TestUpsertPolicy_CreaYReemplaza(t *testing.T) {
	uc, _, _ := setup(dec(3.00))
	ctx := context.Background()

	created, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:               entity.PricingStrategyAutoMarkup,
		TargetMarkupPercentage: dec(200),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PricingStrategyAutoMarkup, created.Strategy)

	// El upsert reemplaza la política conservando su identidad
	replaced, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:                 entity.PricingStrategyTargetMargin,
		TargetFoodCostPercentage: dec(30),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, entity.PricingStrategyTargetMargin, replaced.Strategy)
}

func TestUpsertPolicy_Validaciones(t *testing.T) {
	uc, _, _ := setup(dec(3.00))
	ctx := context.Background()

	_, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy: "REGATEO",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estrategia desconocida")

	_, err = uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:                 entity.PricingStrategyTargetMargin,
		TargetFoodCostPercentage: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget, "food cost objetivo cero")

	_, err = uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:               entity.PricingStrategyAutoMarkup,
		TargetMarkupPercentage: dec(-10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "markup negativo")

	badMin := dec(-5)
	_, err = uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:               entity.PricingStrategyAutoMarkup,
		TargetMarkupPercentage: dec(100),
		MinimumPrice:           &badMin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio mínimo negativo")
}

// TestCalculate_AutoMarkup: costo 3.00 con markup 200% sugiere 9.00; el food
// cost resultante (33.33%) clasifica ACCEPTABLE.
func TestCalculate_AutoMarkup(t *testing.T) {
	uc, _, _ := setup(dec(3.00))
	ctx := context.Background()

	_, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:               entity.PricingStrategyAutoMarkup,
		TargetMarkupPercentage: dec(200),
	})
	require.NoError(t, err)

	calc, err := uc.Calculate(ctx, testVenue, "prod-pizza")

	require.NoError(t, err)
	assert.True(t, dec(9.00).Equal(calc.SuggestedPrice), "sugerido 9.00, obtuvo %s", calc.SuggestedPrice)
	assert.True(t, dec(12.00).Equal(calc.CurrentPrice))
	assert.Equal(t, entity.ProfitabilityAcceptable, calc.Profitability)
	assert.False(t, calc.MinimumApplied)
}

// TestCalculate_MinimoAplicado: la fórmula da 9.00 pero el mínimo 10.00 manda;
// el food cost se evalúa contra el precio final.
func TestCalculate_MinimoAplicado(t *testing.T) {
	uc, _, _ := setup(dec(3.00))
	ctx := context.Background()

	minimum := dec(10.00)
	_, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:               entity.PricingStrategyAutoMarkup,
		TargetMarkupPercentage: dec(200),
		MinimumPrice:           &minimum,
	})
	require.NoError(t, err)

	calc, err := uc.Calculate(ctx, testVenue, "prod-pizza")

	require.NoError(t, err)
	assert.True(t, dec(10.00).Equal(calc.SuggestedPrice))
	assert.True(t, calc.MinimumApplied)
	assert.True(t, dec(30).Equal(calc.FoodCostPercentage), "3.00/10.00 = 30%%")
	assert.Equal(t, entity.ProfitabilityAcceptable, calc.Profitability)
}

// TestCalculate_Manual: la estrategia MANUAL sugiere el precio vigente.
func TestCalculate_Manual(t *testing.T) {
	uc, _, _ := setup(dec(3.00))
	ctx := context.Background()

	_, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy: entity.PricingStrategyManual,
	})
	require.NoError(t, err)

	calc, err := uc.Calculate(ctx, testVenue, "prod-pizza")

	require.NoError(t, err)
	assert.True(t, dec(12.00).Equal(calc.SuggestedPrice), "MANUAL mantiene el precio actual")
	assert.Equal(t, entity.ProfitabilityGood, calc.Profitability, "3.00/12.00 = 25%%")
}

func TestCalculate_SinPolitica(t *testing.T) {
	uc, _, _ := setup(dec(3.00))

	_, err := uc.Calculate(context.Background(), testVenue, "prod-pizza")
	assert.ErrorIs(t, err, domain.ErrNoPolicy)
}

// TestApplySuggested_FijaElPrecio aplica el sugerido sobre el producto y
// devuelve el antes y el después.
func TestApplySuggested_FijaElPrecio(t *testing.T) {
	uc, _, products := setup(dec(3.00))
	ctx := context.Background()

	_, err := uc.UpsertPolicy(ctx, testVenue, "prod-pizza", dto.UpsertPricingPolicyRequest{
		Strategy:                 entity.PricingStrategyTargetMargin,
		TargetFoodCostPercentage: dec(30),
	})
	require.NoError(t, err)

	resp, err := uc.ApplySuggested(ctx, testVenue, "prod-pizza")

	require.NoError(t, err)
	assert.True(t, dec(12.00).Equal(resp.PreviousPrice))
	assert.True(t, dec(10.00).Equal(resp.NewPrice), "3.00 / 0.30 = 10.00")

	p, _ := products.GetByID(ctx, "prod-pizza")
	assert.True(t, dec(10.00).Equal(p.Price), "el precio del producto queda actualizado")
}

func TestCalculate_ProductoInexistente(t *testing.T) {
	uc, _, _ := setup(dec(3.00))

	_, err := uc.Calculate(context.Background(), testVenue, "prod-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
