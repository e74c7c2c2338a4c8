package recipes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/costing"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// UseCase es el motor de costeo de recetas: ciclo de vida de la receta de un
// producto y costo derivado de sus líneas. TotalCost se recalcula y materializa
// tras cada mutación de líneas. Receta y método de control del producto se
// escriben dentro de la misma transacción.
type UseCase struct {
	txRunner     TxRunner
	recipeRepo   repository.RecipeRepository
	materialRepo repository.RawMaterialRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	recipeRepo repository.RecipeRepository,
	materialRepo repository.RawMaterialRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, recipeRepo: recipeRepo, materialRepo: materialRepo, productRepo: productRepo}
}

// Create crea la receta de un producto.
// ErrDuplicateRecipe si el producto ya tiene receta; ErrEmptyRecipe sin líneas;
// ErrConflict si el producto controla inventario por unidades (la conversión
// QUANTITY -> RECIPE es una operación explícita aparte).
func (uc *UseCase) Create(ctx context.Context, venueID, productID string, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	product, err := uc.ownedProduct(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	if product.TracksByQuantity() {
		return nil, domain.ErrConflict
	}

	recipe, err := uc.buildRecipe(ctx, venueID, productID, in)
	if err != nil {
		return nil, err
	}

	// Receta y cambio de método del producto se comprometen juntos
	err = uc.txRunner.RunRecipe(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
	) error {
		existing, err := recipeRepo.GetByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateRecipe
		}
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}
		locked, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// El producto pasa a controlar inventario por receta
		locked.TrackInventory = true
		locked.InventoryMethod = entity.InventoryMethodRecipe
		locked.UpdatedAt = time.Now()
		return productRepo.Update(ctx, locked)
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(ctx, recipe)
}

// buildRecipe valida y arma la receta con sus líneas y costo total.
// Compartido con la conversión QUANTITY -> RECIPE del adaptador de productos.
func (uc *UseCase) buildRecipe(ctx context.Context, venueID, productID string, in dto.CreateRecipeRequest) (*entity.Recipe, error) {
	if in.PortionYield < 1 {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyRecipe
	}

	now := time.Now()
	recipe := &entity.Recipe{
		ID:              uuid.New().String(),
		VenueID:         venueID,
		ProductID:       productID,
		PortionYield:    in.PortionYield,
		PrepTimeMinutes: in.PrepTimeMinutes,
		CookTimeMinutes: in.CookTimeMinutes,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, li := range in.Lines {
		line, err := uc.buildLine(ctx, venueID, recipe.ID, li, now)
		if err != nil {
			return nil, err
		}
		recipe.Lines = append(recipe.Lines, *line)
	}

	total, err := uc.totalCost(ctx, recipe.Lines)
	if err != nil {
		return nil, err
	}
	recipe.TotalCost = total
	return recipe, nil
}

func (uc *UseCase) buildLine(ctx context.Context, venueID, recipeID string, in dto.RecipeLineInput, now time.Time) (*entity.RecipeLine, error) {
	material, err := uc.materialRepo.GetByID(ctx, in.RawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.VenueID != venueID {
		return nil, domain.ErrForbidden
	}
	if !material.Active {
		return nil, domain.ErrConflict
	}
	// Una línea fija necesita cantidad positiva; la variable se resuelve en venta
	if !in.IsVariable && !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = material.Unit
	}
	return &entity.RecipeLine{
		ID:              uuid.New().String(),
		RecipeID:        recipeID,
		RawMaterialID:   in.RawMaterialID,
		Quantity:        in.Quantity,
		Unit:            unit,
		IsOptional:      in.IsOptional,
		SubstituteNotes: in.SubstituteNotes,
		IsVariable:      in.IsVariable,
		ModifierGroupID: in.ModifierGroupID,
		CreatedAt:       now,
	}, nil
}

// CreateForConversion persiste la receta y deja el producto en control por
// receta, con el contador de unidades en cero, dentro de una sola transacción:
// si algo falla el producto sigue controlando por unidades y no queda receta.
// Lo invoca el adaptador de productos dentro de la conversión explícita.
func (uc *UseCase) CreateForConversion(ctx context.Context, venueID, productID string, in dto.CreateRecipeRequest) (*entity.Recipe, error) {
	recipe, err := uc.buildRecipe(ctx, venueID, productID, in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunRecipe(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
	) error {
		existing, err := recipeRepo.GetByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateRecipe
		}
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}
		locked, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		locked.TrackInventory = true
		locked.InventoryMethod = entity.InventoryMethodRecipe
		locked.CurrentStock = decimal.Zero
		locked.UpdatedAt = time.Now()
		return productRepo.Update(ctx, locked)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get devuelve la receta del producto con costos derivados.
func (uc *UseCase) Get(ctx context.Context, venueID, productID string) (*dto.RecipeResponse, error) {
	recipe, err := uc.ownedRecipe(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, recipe)
}

// Update modifica porciones, tiempos o notas (las líneas tienen operaciones propias).
func (uc *UseCase) Update(ctx context.Context, venueID, productID string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.ownedRecipe(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	if in.PortionYield != nil {
		if *in.PortionYield < 1 {
			return nil, domain.ErrInvalidInput
		}
		recipe.PortionYield = *in.PortionYield
	}
	if in.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = in.PrepTimeMinutes
	}
	if in.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = in.CookTimeMinutes
	}
	if in.Notes != nil {
		recipe.Notes = *in.Notes
	}
	recipe.UpdatedAt = time.Now()
	if err := uc.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, recipe)
}

// AddLine agrega un ingrediente y recalcula TotalCost. No requiere reenviar el
// resto de las líneas.
func (uc *UseCase) AddLine(ctx context.Context, venueID, productID string, in dto.RecipeLineInput) (*dto.RecipeResponse, error) {
	recipe, err := uc.ownedRecipe(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	line, err := uc.buildLine(ctx, venueID, recipe.ID, in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.recipeRepo.AddLine(ctx, line); err != nil {
		return nil, err
	}
	recipe.Lines = append(recipe.Lines, *line)
	if err := uc.recalcTotal(ctx, recipe); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, recipe)
}

// RemoveLine quita un ingrediente por ID y recalcula TotalCost. Idempotente:
// quitar una línea ya inexistente no es error.
func (uc *UseCase) RemoveLine(ctx context.Context, venueID, productID, lineID string) (*dto.RecipeResponse, error) {
	recipe, err := uc.ownedRecipe(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	if err := uc.recipeRepo.RemoveLine(ctx, lineID); err != nil {
		return nil, err
	}
	kept := recipe.Lines[:0]
	for _, l := range recipe.Lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	recipe.Lines = kept
	if err := uc.recalcTotal(ctx, recipe); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, recipe)
}

// Delete elimina la receta y todas sus líneas como unidad, y el producto deja de
// controlar inventario.
func (uc *UseCase) Delete(ctx context.Context, venueID, productID string) error {
	if _, err := uc.ownedRecipe(ctx, venueID, productID); err != nil {
		return err
	}
	return uc.txRunner.RunRecipe(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := recipeRepo.DeleteByProductID(ctx, productID); err != nil {
			return err
		}
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil || product == nil {
			return err
		}
		product.TrackInventory = false
		product.InventoryMethod = ""
		product.UpdatedAt = time.Now()
		return productRepo.Update(ctx, product)
	})
}

// TotalCost expone el costo actual de la receta de un producto (para el resolver
// de precios).
func (uc *UseCase) TotalCost(ctx context.Context, venueID, productID string) (decimal.Decimal, error) {
	recipe, err := uc.ownedRecipe(ctx, venueID, productID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return uc.totalCost(ctx, recipe.Lines)
}

func (uc *UseCase) recalcTotal(ctx context.Context, recipe *entity.Recipe) error {
	total, err := uc.totalCost(ctx, recipe.Lines)
	if err != nil {
		return err
	}
	recipe.TotalCost = total
	recipe.UpdatedAt = time.Now()
	return uc.recipeRepo.UpdateTotalCost(ctx, recipe.ID, total)
}

// totalCost resuelve los costos unitarios vigentes y delega la suma al servicio
// de dominio (líneas variables excluidas).
func (uc *UseCase) totalCost(ctx context.Context, lines []entity.RecipeLine) (decimal.Decimal, error) {
	unitCosts := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		if l.IsVariable {
			continue
		}
		if _, ok := unitCosts[l.RawMaterialID]; ok {
			continue
		}
		material, err := uc.materialRepo.GetByID(ctx, l.RawMaterialID)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if material == nil {
			// Protegido por MaterialInUseError en el catálogo; por si acaso
			return decimal.Decimal{}, domain.ErrNotFound
		}
		unitCosts[l.RawMaterialID] = material.CostPerUnit
	}
	return costing.TotalCost(lines, unitCosts), nil
}

func (uc *UseCase) ownedRecipe(ctx context.Context, venueID, productID string) (*entity.Recipe, error) {
	if _, err := uc.ownedProduct(ctx, venueID, productID); err != nil {
		return nil, err
	}
	recipe, err := uc.recipeRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
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

func (uc *UseCase) toResponse(ctx context.Context, recipe *entity.Recipe) (*dto.RecipeResponse, error) {
	resp := &dto.RecipeResponse{
		ID:               recipe.ID,
		ProductID:        recipe.ProductID,
		PortionYield:     recipe.PortionYield,
		PrepTimeMinutes:  recipe.PrepTimeMinutes,
		CookTimeMinutes:  recipe.CookTimeMinutes,
		Notes:            recipe.Notes,
		TotalCost:        recipe.TotalCost,
		CostPerServing:   costing.CostPerServing(recipe.TotalCost, recipe.PortionYield),
		HasVariableLines: recipe.HasVariableLines(),
		CreatedAt:        recipe.CreatedAt,
		UpdatedAt:        recipe.UpdatedAt,
	}
	for _, l := range recipe.Lines {
		lineResp := dto.RecipeLineResponse{
			ID:              l.ID,
			RawMaterialID:   l.RawMaterialID,
			Quantity:        l.Quantity,
			Unit:            l.Unit,
			IsOptional:      l.IsOptional,
			SubstituteNotes: l.SubstituteNotes,
			IsVariable:      l.IsVariable,
			ModifierGroupID: l.ModifierGroupID,
		}
		material, err := uc.materialRepo.GetByID(ctx, l.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material != nil {
			lineResp.RawMaterialName = material.Name
			lineResp.UnitCost = material.CostPerUnit
			if !l.IsVariable {
				lineResp.LineCost = l.Quantity.Mul(material.CostPerUnit)
			}
		}
		resp.Lines = append(resp.Lines, lineResp)
	}
	return resp, nil
}
