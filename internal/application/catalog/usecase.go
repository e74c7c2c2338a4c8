package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// skuAttempts intentos de generación antes de ErrSkuGenerationExhausted.
const skuAttempts = 5

// UseCase casos de uso CRUD del catálogo de materias primas. CurrentStock y
// AvgCostPerUnit se mutan solo vía el libro de stock.
type UseCase struct {
	materialRepo repository.RawMaterialRepository
	recipeRepo   repository.RecipeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(materialRepo repository.RawMaterialRepository, recipeRepo repository.RecipeRepository) *UseCase {
	return &UseCase{materialRepo: materialRepo, recipeRepo: recipeRepo}
}

// Create crea una materia prima. SKU vacío genera uno único para la sede.
func (uc *UseCase) Create(ctx context.Context, venueID string, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if err := validateMaterialFields(in.Category, in.Unit, in.MinimumStock, in.ReorderPoint, in.CostPerUnit, in.Perishable, in.ShelfLifeDays); err != nil {
		return nil, err
	}

	sku := in.SKU
	if sku == "" {
		generated, err := uc.GenerateUniqueSku(ctx, venueID)
		if err != nil {
			return nil, err
		}
		sku = generated
	} else {
		existing, err := uc.materialRepo.GetByVenueAndSKU(ctx, venueID, sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	material := &entity.RawMaterial{
		ID:             uuid.New().String(),
		VenueID:        venueID,
		SKU:            sku,
		GTIN:           in.GTIN,
		Name:           in.Name,
		Category:       in.Category,
		Unit:           in.Unit,
		CurrentStock:   decimal.Zero,
		MinimumStock:   in.MinimumStock,
		ReorderPoint:   in.ReorderPoint,
		MaximumStock:   in.MaximumStock,
		CostPerUnit:    in.CostPerUnit,
		AvgCostPerUnit: in.CostPerUnit,
		Perishable:     in.Perishable,
		ShelfLifeDays:  in.ShelfLifeDays,
		Active:         true,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima de la sede.
func (uc *UseCase) GetByID(ctx context.Context, venueID, id string) (*dto.RawMaterialResponse, error) {
	material, err := uc.ownedMaterial(ctx, venueID, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Update actualiza una materia prima (PATCH parcial). Mantiene el invariante
// MinimumStock <= ReorderPoint sobre el estado resultante.
func (uc *UseCase) Update(ctx context.Context, venueID, id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	material, err := uc.ownedMaterial(ctx, venueID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.GTIN != nil {
		material.GTIN = *in.GTIN
	}
	if in.Category != nil {
		material.Category = *in.Category
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.MinimumStock != nil {
		material.MinimumStock = *in.MinimumStock
	}
	if in.ReorderPoint != nil {
		material.ReorderPoint = *in.ReorderPoint
	}
	if in.MaximumStock != nil {
		material.MaximumStock = in.MaximumStock
	}
	if in.CostPerUnit != nil {
		material.CostPerUnit = *in.CostPerUnit
	}
	if in.Perishable != nil {
		material.Perishable = *in.Perishable
	}
	if in.ShelfLifeDays != nil {
		material.ShelfLifeDays = in.ShelfLifeDays
	}
	if in.Active != nil {
		material.Active = *in.Active
	}
	if in.Description != nil {
		material.Description = *in.Description
	}

	if err := validateMaterialFields(material.Category, material.Unit, material.MinimumStock,
		material.ReorderPoint, material.CostPerUnit, material.Perishable, material.ShelfLifeDays); err != nil {
		return nil, err
	}

	material.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina una materia prima. Falla con MaterialInUseError si alguna línea
// de receta la referencia: borrar nunca debe dejar recetas huérfanas.
func (uc *UseCase) Delete(ctx context.Context, venueID, id string) error {
	if _, err := uc.ownedMaterial(ctx, venueID, id); err != nil {
		return err
	}
	count, err := uc.recipeRepo.CountByRawMaterial(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.MaterialInUseError{RecipeCount: count}
	}
	return uc.materialRepo.Delete(ctx, id)
}

// List lista materias primas con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, venueID string, filter repository.RawMaterialFilter, page dto.PageRequest) (*dto.RawMaterialListResponse, error) {
	page.DefaultPage()
	list, err := uc.materialRepo.List(ctx, venueID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.RawMaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GenerateUniqueSku produce un candidato <letra><6 dígitos> y reintenta hasta 5
// veces contra el catálogo; si todos colisionan devuelve ErrSkuGenerationExhausted.
func (uc *UseCase) GenerateUniqueSku(ctx context.Context, venueID string) (string, error) {
	for i := 0; i < skuAttempts; i++ {
		candidate := randomSku()
		existing, err := uc.materialRepo.GetByVenueAndSKU(ctx, venueID, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", domain.ErrSkuGenerationExhausted
}

func randomSku() string {
	letter := byte('A' + rand.Intn(26))
	return fmt.Sprintf("%c%06d", letter, rand.Intn(1_000_000))
}

func validateMaterialFields(category, unit string, minimum, reorder, cost decimal.Decimal, perishable bool, shelfLifeDays *int) error {
	if !entity.ValidCategory(category) || !entity.ValidUnit(unit) {
		return domain.ErrInvalidInput
	}
	if minimum.IsNegative() || reorder.IsNegative() || cost.IsNegative() {
		return domain.ErrInvalidInput
	}
	// Invariante del catálogo: el mínimo nunca por encima del punto de reorden
	if minimum.GreaterThan(reorder) {
		return domain.ErrInvalidInput
	}
	if perishable && shelfLifeDays != nil && *shelfLifeDays < 1 {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *UseCase) ownedMaterial(ctx context.Context, venueID, id string) (*entity.RawMaterial, error) {
	material, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.VenueID != venueID {
		return nil, domain.ErrForbidden
	}
	return material, nil
}

func toMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.RawMaterialResponse{
		ID:             m.ID,
		VenueID:        m.VenueID,
		SKU:            m.SKU,
		GTIN:           m.GTIN,
		Name:           m.Name,
		Category:       m.Category,
		Unit:           m.Unit,
		CurrentStock:   m.CurrentStock,
		MinimumStock:   m.MinimumStock,
		ReorderPoint:   m.ReorderPoint,
		MaximumStock:   m.MaximumStock,
		CostPerUnit:    m.CostPerUnit,
		AvgCostPerUnit: m.AvgCostPerUnit,
		Perishable:     m.Perishable,
		ShelfLifeDays:  m.ShelfLifeDays,
		Active:         m.Active,
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
