package products_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/products"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

const (
	testVenue = "venue-1"
	testUser  = "user-1"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// ── fakes en memoria ─────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	// skuErr simula un fallo de BD en la búsqueda por SKU
	skuErr error
}

func newFakeProductRepo(ps ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range ps {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
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

func (r *fakeProductRepo) GetByVenueAndSKU(_ context.Context, venueID, sku string) (*entity.Product, error) {
	if r.skuErr != nil {
		return nil, r.skuErr
	}
	for _, p := range r.products {
		if p.VenueID == venueID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context, venueID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.VenueID == venueID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
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

type fakeMovementRepo struct {
	movements []*entity.ProductStockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.ProductStockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.ProductStockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, venueID, productID string, limit int) ([]*entity.ProductStockMovement, error) {
	var out []*entity.ProductStockMovement
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.movements[i]
		if m.VenueID == venueID && m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProposalRepo struct {
	proposals map[string]*entity.ProposedAdjustment
}

func (r *fakeProposalRepo) Create(_ context.Context, p *entity.ProposedAdjustment) error {
	if _, ok := r.proposals[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeProposalRepo) GetForUpdate(_ context.Context, id string) (*entity.ProposedAdjustment, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProposalRepo) MarkConfirmed(_ context.Context, id, movementID string, at time.Time) error {
	p, ok := r.proposals[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.ProposalStatusConfirmed
	p.MovementID = &movementID
	p.ConfirmedAt = &at
	return nil
}

type fakeRecipeRepo struct {
	byProduct map[string]*entity.Recipe
}

func (r *fakeRecipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	cp := *rec
	r.byProduct[rec.ProductID] = &cp
	return nil
}

func (r *fakeRecipeRepo) GetByProductID(_ context.Context, productID string) (*entity.Recipe, error) {
	rec, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecipeRepo) Update(context.Context, *entity.Recipe) error { return nil }
func (r *fakeRecipeRepo) UpdateTotalCost(context.Context, string, decimal.Decimal) error {
	return nil
}
func (r *fakeRecipeRepo) AddLine(context.Context, *entity.RecipeLine) error { return nil }
func (r *fakeRecipeRepo) RemoveLine(context.Context, string) error          { return nil }
func (r *fakeRecipeRepo) DeleteByProductID(_ context.Context, productID string) error {
	delete(r.byProduct, productID)
	return nil
}
func (r *fakeRecipeRepo) CountByRawMaterial(context.Context, string) (int, error) { return 0, nil }

type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
	proposals *fakeProposalRepo
}

func (r *fakeTxRunner) RunProduct(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	proposalRepo repository.ProposalRepository,
) error) error {
	return fn(r.products, r.movements, r.proposals)
}

// fakeRecipeCreator registra la receta creada durante una conversión y, como la
// implementación real, deja el producto en control por receta con el contador
// en cero; si falla, no toca nada.
type fakeRecipeCreator struct {
	products *fakeProductRepo
	created  map[string]dto.CreateRecipeRequest
	err      error
}

func (c *fakeRecipeCreator) CreateForConversion(_ context.Context, _, productID string, in dto.CreateRecipeRequest) (*entity.Recipe, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.created[productID] = in
	if p, ok := c.products.products[productID]; ok {
		p.TrackInventory = true
		p.InventoryMethod = entity.InventoryMethodRecipe
		p.CurrentStock = decimal.Zero
	}
	return &entity.Recipe{ID: "rec-1", ProductID: productID, PortionYield: in.PortionYield}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func gaseosa(stock float64) *entity.Product {
	return &entity.Product{
		ID:              "prod-gaseosa",
		VenueID:         testVenue,
		SKU:             "G000001",
		Name:            "Gaseosa lata",
		Price:           dec(2.00),
		TrackInventory:  true,
		InventoryMethod: entity.InventoryMethodQuantity,
		CurrentStock:    dec(stock),
		Active:          true,
	}
}

func pizza() *entity.Product {
	return &entity.Product{
		ID:      "prod-pizza",
		VenueID: testVenue,
		Name:    "Pizza margarita",
		Price:   dec(12.00),
		Active:  true,
	}
}

func newAdapter(ps ...*entity.Product) (*products.InventoryAdapter, *fakeProductRepo, *fakeMovementRepo, *fakeProposalRepo, *fakeRecipeCreator) {
	productRepo := newFakeProductRepo(ps...)
	movements := &fakeMovementRepo{}
	proposals := &fakeProposalRepo{proposals: make(map[string]*entity.ProposedAdjustment)}
	creator := &fakeRecipeCreator{products: productRepo, created: make(map[string]dto.CreateRecipeRequest)}
	runner := &fakeTxRunner{products: productRepo, movements: movements, proposals: proposals}
	return products.NewInventoryAdapter(runner, productRepo, movements, creator), productRepo, movements, proposals, creator
}

// ── tests del CRUD ───────────────────────────────────────────────────────────

func TestCreate_ProductoConInventarioPorUnidades(t *testing.T) {
	uc := products.NewUseCase(newFakeProductRepo(), &fakeRecipeRepo{byProduct: make(map[string]*entity.Recipe)})

	resp, err := uc.Create(context.Background(), testVenue, dto.CreateProductRequest{
		Name:            "Gaseosa lata",
		Price:           dec(2.00),
		TrackInventory:  true,
		InventoryMethod: entity.InventoryMethodQuantity,
		InitialStock:    dec(24),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.InventoryMethodQuantity, resp.InventoryMethod)
	assert.True(t, dec(24).Equal(resp.CurrentStock))
	assert.True(t, resp.Active)
}

func TestCreate_MetodoInconsistente(t *testing.T) {
	uc := products.NewUseCase(newFakeProductRepo(), &fakeRecipeRepo{byProduct: make(map[string]*entity.Recipe)})
	ctx := context.Background()

	// TrackInventory sin método
	_, err := uc.Create(ctx, testVenue, dto.CreateProductRequest{
		Name: "Gaseosa", Price: dec(2.00), TrackInventory: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Método declarado sin TrackInventory
	_, err = uc.Create(ctx, testVenue, dto.CreateProductRequest{
		Name: "Gaseosa", Price: dec(2.00), InventoryMethod: entity.InventoryMethodQuantity,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCreate_FalloEnBusquedaDeSku: un error de BD al verificar el SKU se
// propaga, no se confunde con "SKU libre".
func TestCreate_FalloEnBusquedaDeSku(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.skuErr = errors.New("conexión perdida")
	uc := products.NewUseCase(productRepo, &fakeRecipeRepo{byProduct: make(map[string]*entity.Recipe)})

	_, err := uc.Create(context.Background(), testVenue, dto.CreateProductRequest{
		SKU:   "G000001",
		Name:  "Gaseosa lata",
		Price: dec(2.00),
	})

	assert.ErrorIs(t, err, productRepo.skuErr)
	assert.Empty(t, productRepo.products, "no se crea nada ante el fallo")
}

// TestDelete_ProductoConReceta: primero se borra la receta, luego el producto.
func TestDelete_ProductoConReceta(t *testing.T) {
	recipeRepo := &fakeRecipeRepo{byProduct: map[string]*entity.Recipe{
		"prod-pizza": {ID: "rec-1", ProductID: "prod-pizza"},
	}}
	uc := products.NewUseCase(newFakeProductRepo(pizza()), recipeRepo)

	err := uc.Delete(context.Background(), testVenue, "prod-pizza")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ── tests del libro de stock por unidades ────────────────────────────────────

func TestAdjustStock_DescuentaUnidades(t *testing.T) {
	adapter, productRepo, movements, _, _ := newAdapter(gaseosa(24))

	mov, err := adapter.AdjustStock(context.Background(), testVenue, testUser, products.AdjustInput{
		ProductID: "prod-gaseosa",
		Type:      entity.MovementTypeUSAGE,
		Quantity:  dec(-6),
	})

	require.NoError(t, err)
	assert.True(t, dec(24).Equal(mov.PreviousStock))
	assert.True(t, dec(18).Equal(mov.NewStock))

	p, _ := productRepo.GetByID(context.Background(), "prod-gaseosa")
	assert.True(t, dec(18).Equal(p.CurrentStock))
	assert.Len(t, movements.movements, 1)
}

// TestAdjustStock_SoloProductosPorUnidades: un producto con receta (o sin
// control) no acepta ajustes de unidades.
func TestAdjustStock_SoloProductosPorUnidades(t *testing.T) {
	adapter, _, _, _, _ := newAdapter(pizza())

	_, err := adapter.AdjustStock(context.Background(), testVenue, testUser, products.AdjustInput{
		ProductID: "prod-pizza",
		Type:      entity.MovementTypeUSAGE,
		Quantity:  dec(-1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdjustStock_StockNegativoRechazado(t *testing.T) {
	adapter, productRepo, movements, _, _ := newAdapter(gaseosa(5))

	_, err := adapter.AdjustStock(context.Background(), testVenue, testUser, products.AdjustInput{
		ProductID: "prod-gaseosa",
		Type:      entity.MovementTypeUSAGE,
		Quantity:  dec(-10),
	})

	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	p, _ := productRepo.GetByID(context.Background(), "prod-gaseosa")
	assert.True(t, dec(5).Equal(p.CurrentStock))
	assert.Empty(t, movements.movements)
}

// TestAdjustStock_AjusteGrandeConConfirmacion: mismo protocolo de dos fases que
// el libro de materias primas, incluido el reintento idempotente.
func TestAdjustStock_AjusteGrandeConConfirmacion(t *testing.T) {
	adapter, productRepo, movements, proposals, _ := newAdapter(gaseosa(20))
	ctx := context.Background()

	_, err := adapter.AdjustStock(ctx, testVenue, testUser, products.AdjustInput{
		ProductID: "prod-gaseosa",
		Type:      entity.MovementTypeADJUSTMENT,
		Quantity:  dec(-15), // 75% del stock
		Reason:    "conteo físico",
	})

	var confirmation *domain.ConfirmationRequiredError
	require.True(t, errors.As(err, &confirmation))
	assert.Empty(t, movements.movements)
	p, _ := productRepo.GetByID(ctx, "prod-gaseosa")
	assert.True(t, dec(20).Equal(p.CurrentStock), "sin confirmar no se aplica")

	confirmIn := products.AdjustInput{
		ProductID:  "prod-gaseosa",
		Confirm:    true,
		ProposalID: confirmation.ProposalID,
	}
	first, err := adapter.AdjustStock(ctx, testVenue, testUser, confirmIn)
	require.NoError(t, err)
	assert.True(t, dec(5).Equal(first.NewStock))

	// Movimiento posterior a la confirmación
	_, err = adapter.AdjustStock(ctx, testVenue, testUser, products.AdjustInput{
		ProductID: "prod-gaseosa",
		Type:      entity.MovementTypeUSAGE,
		Quantity:  dec(-1),
	})
	require.NoError(t, err)

	// Reintento de la misma confirmación: devuelve el movimiento original aunque
	// ya haya actividad más reciente
	second, err := adapter.AdjustStock(ctx, testVenue, testUser, confirmIn)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, dec(5).Equal(second.NewStock))
	assert.Len(t, movements.movements, 2, "el reintento no duplica el movimiento")

	prop := proposals.proposals[confirmation.ProposalID]
	assert.Equal(t, entity.ProposalStatusConfirmed, prop.Status)
}

// ── tests de la conversión QUANTITY -> RECIPE ────────────────────────────────

// TestConvertToRecipeTracking: la conversión crea la receta en la misma llamada,
// cambia el método y deja el contador de unidades inerte (stock en cero).
func TestConvertToRecipeTracking(t *testing.T) {
	adapter, productRepo, _, _, creator := newAdapter(gaseosa(24))

	req := dto.ConvertToRecipeRequest{Recipe: dto.CreateRecipeRequest{
		PortionYield: 1,
		Lines: []dto.RecipeLineInput{
			{RawMaterialID: "mat-jarabe", Quantity: dec(0.05)},
		},
	}}
	resp, err := adapter.ConvertToRecipeTracking(context.Background(), testVenue, "prod-gaseosa", req)

	require.NoError(t, err)
	assert.Equal(t, entity.InventoryMethodRecipe, resp.InventoryMethod)
	assert.True(t, resp.CurrentStock.IsZero(), "el contador de unidades queda en cero")
	assert.Contains(t, creator.created, "prod-gaseosa", "la receta se crea en la misma llamada")

	p, _ := productRepo.GetByID(context.Background(), "prod-gaseosa")
	assert.True(t, p.TracksByRecipe())
}

// TestConvertToRecipeTracking_SoloUnaVez: convertir un producto que no controla
// por unidades (ya convertido o sin control) es ErrConflict.
func TestConvertToRecipeTracking_SoloUnaVez(t *testing.T) {
	adapter, _, _, _, _ := newAdapter(gaseosa(24))
	ctx := context.Background()

	req := dto.ConvertToRecipeRequest{Recipe: dto.CreateRecipeRequest{
		PortionYield: 1,
		Lines:        []dto.RecipeLineInput{{RawMaterialID: "mat-jarabe", Quantity: dec(0.05)}},
	}}
	_, err := adapter.ConvertToRecipeTracking(ctx, testVenue, "prod-gaseosa", req)
	require.NoError(t, err)

	_, err = adapter.ConvertToRecipeTracking(ctx, testVenue, "prod-gaseosa", req)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// TestConvertToRecipeTracking_RecetaInvalidaNoConvierte: si la receta falla,
// el producto sigue controlando por unidades.
func TestConvertToRecipeTracking_RecetaInvalidaNoConvierte(t *testing.T) {
	adapter, productRepo, _, _, creator := newAdapter(gaseosa(24))
	creator.err = domain.ErrEmptyRecipe

	_, err := adapter.ConvertToRecipeTracking(context.Background(), testVenue, "prod-gaseosa", dto.ConvertToRecipeRequest{
		Recipe: dto.CreateRecipeRequest{PortionYield: 1},
	})

	assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
	p, _ := productRepo.GetByID(context.Background(), "prod-gaseosa")
	assert.True(t, p.TracksByQuantity(), "la conversión fallida no cambia el método")
	assert.True(t, dec(24).Equal(p.CurrentStock))
}

func TestHistory_LimiteYPertenencia(t *testing.T) {
	adapter, _, _, _, _ := newAdapter(gaseosa(100))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := adapter.AdjustStock(ctx, testVenue, testUser, products.AdjustInput{
			ProductID: "prod-gaseosa",
			Type:      entity.MovementTypeUSAGE,
			Quantity:  dec(-1),
		})
		require.NoError(t, err)
	}

	list, err := adapter.History(ctx, testVenue, "prod-gaseosa", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = adapter.History(ctx, "venue-ajena", "prod-gaseosa", 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
