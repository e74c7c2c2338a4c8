package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// UseCase casos de uso CRUD de productos vendibles. El stock por unidades se
// muta solo vía AdjustStock; el método de inventario solo vía receta o conversión.
type UseCase struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, recipeRepo repository.RecipeRepository) *UseCase {
	return &UseCase{productRepo: productRepo, recipeRepo: recipeRepo}
}

// Create crea un producto. Con TrackInventory=true el método debe ser QUANTITY;
// el método RECIPE nace al crear la receta o al convertir.
func (uc *UseCase) Create(ctx context.Context, venueID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.TrackInventory && in.InventoryMethod != entity.InventoryMethodQuantity {
		return nil, domain.ErrInvalidInput
	}
	if !in.TrackInventory && in.InventoryMethod != "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.productRepo.GetByVenueAndSKU(ctx, venueID, in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		VenueID:         venueID,
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Price:           in.Price,
		TrackInventory:  in.TrackInventory,
		InventoryMethod: in.InventoryMethod,
		CurrentStock:    decimal.Zero,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.TrackInventory {
		product.CurrentStock = in.InitialStock
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la sede.
func (uc *UseCase) GetByID(ctx context.Context, venueID, id string) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(ctx, venueID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza campos editables del producto. No toca stock ni método de
// inventario.
func (uc *UseCase) Update(ctx context.Context, venueID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(ctx, venueID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la sede con paginación.
func (uc *UseCase) List(ctx context.Context, venueID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(ctx, venueID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto. Si tiene receta, se elimina primero la receta
// (operación propia); aquí solo se rechaza para no dejar líneas huérfanas.
func (uc *UseCase) Delete(ctx context.Context, venueID, id string) error {
	if _, err := uc.ownedProduct(ctx, venueID, id); err != nil {
		return err
	}
	recipe, err := uc.recipeRepo.GetByProductID(ctx, id)
	if err != nil {
		return err
	}
	if recipe != nil {
		return domain.ErrConflict
	}
	return uc.productRepo.Delete(ctx, id)
}

func (uc *UseCase) ownedProduct(ctx context.Context, venueID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
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

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		VenueID:         p.VenueID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		TrackInventory:  p.TrackInventory,
		InventoryMethod: p.InventoryMethod,
		CurrentStock:    p.CurrentStock,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
