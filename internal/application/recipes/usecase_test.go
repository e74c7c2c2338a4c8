package recipes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/recipes"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

const testVenue = "venue-1"

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// ── fakes en memoria ─────────────────────────────────────────────────────────

type fakeMaterialRepo struct {
	materials map[string]*entity.RawMaterial
}

func (r *fakeMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	cp := *m
	r.materials[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetByVenueAndSKU(context.Context, string, string) (*entity.RawMaterial, error) {
	return nil, nil
}

func (r *fakeMaterialRepo) List(context.Context, string, repository.RawMaterialFilter, int, int) ([]*entity.RawMaterial, error) {
	return nil, nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, m *entity.RawMaterial) error {
	cp := *m
	r.materials[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) Delete(_ context.Context, id string) error {
	delete(r.materials, id)
	return nil
}

func (r *fakeMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

type fakeRecipeRepo struct {
	byProduct map[string]*entity.Recipe
}

func (r *fakeRecipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	if _, ok := r.byProduct[rec.ProductID]; ok {
		return domain.ErrDuplicateRecipe
	}
	cp := *rec
	cp.Lines = append([]entity.RecipeLine(nil), rec.Lines...)
	r.byProduct[rec.ProductID] = &cp
	return nil
}

func (r *fakeRecipeRepo) GetByProductID(_ context.Context, productID string) (*entity.Recipe, error) {
	rec, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	cp.Lines = append([]entity.RecipeLine(nil), rec.Lines...)
	return &cp, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, rec *entity.Recipe) error {
	stored, ok := r.byProduct[rec.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := stored.Lines
	cp := *rec
	cp.Lines = lines
	r.byProduct[rec.ProductID] = &cp
	return nil
}

func (r *fakeRecipeRepo) UpdateTotalCost(_ context.Context, recipeID string, totalCost decimal.Decimal) error {
	for _, rec := range r.byProduct {
		if rec.ID == recipeID {
			rec.TotalCost = totalCost
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRecipeRepo) AddLine(_ context.Context, line *entity.RecipeLine) error {
	for _, rec := range r.byProduct {
		if rec.ID == line.RecipeID {
			rec.Lines = append(rec.Lines, *line)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRecipeRepo) RemoveLine(_ context.Context, lineID string) error {
	for _, rec := range r.byProduct {
		kept := rec.Lines[:0]
		for _, l := range rec.Lines {
			if l.ID != lineID {
				kept = append(kept, l)
			}
		}
		rec.Lines = kept
	}
	return nil
}

func (r *fakeRecipeRepo) DeleteByProductID(_ context.Context, productID string) error {
	delete(r.byProduct, productID)
	return nil
}

func (r *fakeRecipeRepo) CountByRawMaterial(_ context.Context, rawMaterialID string) (int, error) {
	count := 0
	for _, rec := range r.byProduct {
		for _, l := range rec.Lines {
			if l.RawMaterialID == rawMaterialID {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeProductRepo struct {
	products   map[string]*entity.Product
	failUpdate error
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
	if r.failUpdate != nil {
		return r.failUpdate
	}
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

// fakeTxRunner emula la atomicidad de la transacción real: si fn falla, los
// repos vuelven al estado previo.
type fakeTxRunner struct {
	recipeRepo  *fakeRecipeRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) RunRecipe(_ context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
) error) error {
	recipesBefore := make(map[string]*entity.Recipe, len(r.recipeRepo.byProduct))
	for k, rec := range r.recipeRepo.byProduct {
		cp := *rec
		cp.Lines = append([]entity.RecipeLine(nil), rec.Lines...)
		recipesBefore[k] = &cp
	}
	productsBefore := make(map[string]*entity.Product, len(r.productRepo.products))
	for k, p := range r.productRepo.products {
		cp := *p
		productsBefore[k] = &cp
	}
	if err := fn(r.recipeRepo, r.productRepo); err != nil {
		r.recipeRepo.byProduct = recipesBefore
		r.productRepo.products = productsBefore
		return err
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func setup() (*recipes.UseCase, *fakeMaterialRepo, *fakeRecipeRepo, *fakeProductRepo) {
	materials := &fakeMaterialRepo{materials: map[string]*entity.RawMaterial{
		"mat-harina": {
			ID: "mat-harina", VenueID: testVenue, SKU: "H000001", Name: "Harina de trigo",
			Category: entity.CategoryDryGoods, Unit: entity.UnitKilogram,
			CostPerUnit: dec(2.00), Active: true,
		},
		"mat-queso": {
			ID: "mat-queso", VenueID: testVenue, SKU: "Q000001", Name: "Queso mozzarella",
			Category: entity.CategoryDairy, Unit: entity.UnitKilogram,
			CostPerUnit: dec(10.00), Active: true,
		},
		"mat-vencida": {
			ID: "mat-vencida", VenueID: testVenue, SKU: "V000001", Name: "Materia inactiva",
			Category: entity.CategoryOther, Unit: entity.UnitUnit,
			CostPerUnit: dec(1.00), Active: false,
		},
	}}
	recipeRepo := &fakeRecipeRepo{byProduct: make(map[string]*entity.Recipe)}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-pizza": {
			ID: "prod-pizza", VenueID: testVenue, Name: "Pizza margarita",
			Price: dec(12.00), Active: true,
		},
		"prod-gaseosa": {
			ID: "prod-gaseosa", VenueID: testVenue, Name: "Gaseosa lata",
			Price: dec(2.00), TrackInventory: true,
			InventoryMethod: entity.InventoryMethodQuantity, Active: true,
		},
	}}
	txRunner := &fakeTxRunner{recipeRepo: recipeRepo, productRepo: products}
	return recipes.NewUseCase(txRunner, recipeRepo, materials, products), materials, recipeRepo, products
}

func pizzaRequest() dto.CreateRecipeRequest {
	return dto.CreateRecipeRequest{
		PortionYield: 2,
		Lines: []dto.RecipeLineInput{
			{RawMaterialID: "mat-harina", Quantity: dec(0.5)},
			{RawMaterialID: "mat-queso", Quantity: dec(0.2)},
		},
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

// TestCreate_RecetaConCostoDerivado: la receta de referencia cuesta 3.00 en
// total y 1.50 por porción (rinde 2), y el producto pasa a control por receta.
func TestCreate_RecetaConCostoDerivado(t *testing.T) {
	uc, _, _, products := setup()

	resp, err := uc.Create(context.Background(), testVenue, "prod-pizza", pizzaRequest())

	require.NoError(t, err)
	assert.True(t, dec(3.00).Equal(resp.TotalCost), "0.5*2.00 + 0.2*10.00 = 3.00, obtuvo %s", resp.TotalCost)
	assert.True(t, dec(1.50).Equal(resp.CostPerServing))
	require.Len(t, resp.Lines, 2)
	assert.True(t, dec(1.00).Equal(resp.Lines[0].LineCost))
	assert.Equal(t, "Harina de trigo", resp.Lines[0].RawMaterialName)

	p, _ := products.GetByID(context.Background(), "prod-pizza")
	assert.True(t, p.TracksByRecipe(), "crear la receta activa el control por receta")
}

func TestCreate_RecetaDuplicada(t *testing.T) {
	uc, _, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.NoError(t, err)

	_, err = uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicateRecipe)
}

func TestCreate_RecetaSinLineas(t *testing.T) {
	uc, _, _, _ := setup()

	_, err := uc.Create(context.Background(), testVenue, "prod-pizza", dto.CreateRecipeRequest{PortionYield: 1})
	assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
}

func TestCreate_RendimientoInvalido(t *testing.T) {
	uc, _, _, _ := setup()
	in := pizzaRequest()
	in.PortionYield = 0

	_, err := uc.Create(context.Background(), testVenue, "prod-pizza", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCreate_ProductoPorUnidadesRechazado: los métodos de control son
// excluyentes; pasar de QUANTITY a RECIPE es la conversión explícita.
func TestCreate_ProductoPorUnidadesRechazado(t *testing.T) {
	uc, _, _, _ := setup()

	_, err := uc.Create(context.Background(), testVenue, "prod-gaseosa", pizzaRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// TestCreate_LineaVariableFueraDelCosto: la línea variable no exige cantidad
// positiva y no aporta al costo base, pero marca la receta.
func TestCreate_LineaVariableFueraDelCosto(t *testing.T) {
	uc, _, _, _ := setup()
	modGroup := "grupo-quesos"
	in := pizzaRequest()
	in.Lines = append(in.Lines, dto.RecipeLineInput{
		RawMaterialID:   "mat-queso",
		IsVariable:      true,
		ModifierGroupID: &modGroup,
	})

	resp, err := uc.Create(context.Background(), testVenue, "prod-pizza", in)

	require.NoError(t, err)
	assert.True(t, dec(3.00).Equal(resp.TotalCost), "la línea variable no suma")
	assert.True(t, resp.HasVariableLines)
}

func TestCreate_LineaFijaSinCantidad(t *testing.T) {
	uc, _, _, _ := setup()
	in := pizzaRequest()
	in.Lines[0].Quantity = decimal.Zero

	_, err := uc.Create(context.Background(), testVenue, "prod-pizza", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_MateriaInactivaRechazada(t *testing.T) {
	uc, _, _, _ := setup()
	in := pizzaRequest()
	in.Lines[0].RawMaterialID = "mat-vencida"
	in.Lines[0].Quantity = dec(1)

	_, err := uc.Create(context.Background(), testVenue, "prod-pizza", in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// TestAddLine_RecalculaTotal y RemoveLine lo restaura.
func TestAddLine_RemoveLine_RecalculanTotal(t *testing.T) {
	uc, _, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.NoError(t, err)

	// +0.1 kg de queso: total 3.00 + 1.00 = 4.00
	resp, err := uc.AddLine(ctx, testVenue, "prod-pizza", dto.RecipeLineInput{
		RawMaterialID: "mat-queso",
		Quantity:      dec(0.1),
	})
	require.NoError(t, err)
	assert.True(t, dec(4.00).Equal(resp.TotalCost), "tras agregar, total 4.00, obtuvo %s", resp.TotalCost)
	require.Len(t, resp.Lines, 3)

	// Quitar la línea agregada restaura el total original
	added := resp.Lines[2].ID
	resp, err = uc.RemoveLine(ctx, testVenue, "prod-pizza", added)
	require.NoError(t, err)
	assert.True(t, dec(3.00).Equal(resp.TotalCost), "tras quitar, total de vuelta a 3.00")
	assert.Len(t, resp.Lines, 2)
}

// TestRemoveLine_Idempotente: quitar una línea inexistente no falla y no cambia
// el costo.
func TestRemoveLine_Idempotente(t *testing.T) {
	uc, _, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.NoError(t, err)

	resp, err := uc.RemoveLine(ctx, testVenue, "prod-pizza", "linea-fantasma")
	require.NoError(t, err)
	assert.True(t, dec(3.00).Equal(resp.TotalCost))
	assert.Len(t, resp.Lines, 2)
}

// TestUpdate_CambiaRendimientoSinTocarLineas: el PATCH de cabecera recalcula
// el costo por porción con el nuevo rendimiento.
func TestUpdate_CambiaRendimientoSinTocarLineas(t *testing.T) {
	uc, _, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.NoError(t, err)

	newYield := 4
	resp, err := uc.Update(ctx, testVenue, "prod-pizza", dto.UpdateRecipeRequest{PortionYield: &newYield})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.PortionYield)
	assert.True(t, dec(0.75).Equal(resp.CostPerServing), "3.00 / 4 porciones")
	assert.Len(t, resp.Lines, 2, "las líneas no se tocan")
}

// TestDelete_RecetaYProductoQuedanConsistentes: borrar la receta elimina sus
// líneas y el producto deja de controlar inventario.
func TestDelete_RecetaYProductoQuedanConsistentes(t *testing.T) {
	uc, _, recipeRepo, products := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, testVenue, "prod-pizza"))

	stored, _ := recipeRepo.GetByProductID(ctx, "prod-pizza")
	assert.Nil(t, stored)

	p, _ := products.GetByID(ctx, "prod-pizza")
	assert.False(t, p.TrackInventory)
	assert.Empty(t, p.InventoryMethod)

	_, err = uc.Get(ctx, testVenue, "prod-pizza")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_ProductoDeOtraSede(t *testing.T) {
	uc, _, _, _ := setup()

	_, err := uc.Get(context.Background(), "venue-ajena", "prod-pizza")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestTotalCost_ReflejaCostoVigenteDeMateria: el costo expuesto al resolver de
// precios usa el costo unitario actual, no el del momento de crear la receta.
func TestTotalCost_ReflejaCostoVigenteDeMateria(t *testing.T) {
	uc, materials, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.NoError(t, err)

	// La harina sube de 2.00 a 4.00: el total pasa de 3.00 a 4.00
	m, _ := materials.GetByID(ctx, "mat-harina")
	m.CostPerUnit = dec(4.00)
	require.NoError(t, materials.Update(ctx, m))

	total, err := uc.TotalCost(ctx, testVenue, "prod-pizza")
	require.NoError(t, err)
	assert.True(t, dec(4.00).Equal(total), "0.5*4.00 + 0.2*10.00 = 4.00, obtuvo %s", total)
}

// TestCreate_FalloAlActualizarProductoRevierteReceta: receta y cambio de método
// del producto se comprometen juntos; si la escritura del producto falla, la
// receta no queda persistida a medias.
func TestCreate_FalloAlActualizarProductoRevierteReceta(t *testing.T) {
	uc, _, recipeRepo, products := setup()
	ctx := context.Background()
	products.failUpdate = errors.New("conexión perdida")

	_, err := uc.Create(ctx, testVenue, "prod-pizza", pizzaRequest())
	require.Error(t, err)

	stored, _ := recipeRepo.GetByProductID(ctx, "prod-pizza")
	assert.Nil(t, stored, "la receta no debe sobrevivir al fallo del producto")
	p, _ := products.GetByID(ctx, "prod-pizza")
	assert.False(t, p.TrackInventory, "el producto queda como estaba")
}

// TestCreateForConversion_DejaProductoPorReceta: la conversión persiste la
// receta y deja el producto en control por receta con el contador en cero.
func TestCreateForConversion_DejaProductoPorReceta(t *testing.T) {
	uc, _, recipeRepo, products := setup()
	ctx := context.Background()
	products.products["prod-gaseosa"].CurrentStock = dec(24)

	rec, err := uc.CreateForConversion(ctx, testVenue, "prod-gaseosa", pizzaRequest())
	require.NoError(t, err)
	require.NotNil(t, rec)

	stored, _ := recipeRepo.GetByProductID(ctx, "prod-gaseosa")
	require.NotNil(t, stored)
	p, _ := products.GetByID(ctx, "prod-gaseosa")
	assert.True(t, p.TracksByRecipe())
	assert.True(t, p.CurrentStock.IsZero(), "el contador por unidades queda en cero")
}

// TestCreateForConversion_FalloDejaProductoPorUnidades: si la conversión falla a
// mitad de camino el producto sigue controlando por unidades, con su stock
// intacto, y no queda receta; los dos métodos nunca coexisten.
func TestCreateForConversion_FalloDejaProductoPorUnidades(t *testing.T) {
	uc, _, recipeRepo, products := setup()
	ctx := context.Background()
	products.products["prod-gaseosa"].CurrentStock = dec(24)
	products.failUpdate = errors.New("conexión perdida")

	_, err := uc.CreateForConversion(ctx, testVenue, "prod-gaseosa", pizzaRequest())
	require.Error(t, err)

	stored, _ := recipeRepo.GetByProductID(ctx, "prod-gaseosa")
	assert.Nil(t, stored, "no debe quedar receta de una conversión fallida")
	p, _ := products.GetByID(ctx, "prod-gaseosa")
	assert.True(t, p.TracksByQuantity(), "sigue en control por unidades")
	assert.True(t, dec(24).Equal(p.CurrentStock), "el stock por unidades no se toca")
}
