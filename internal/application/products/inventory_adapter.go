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
	stockrules "github.com/dcastano/fogon-api/internal/domain/stock"
)

// InventoryAdapter es el libro de stock paralelo (más simple) para productos con
// inventario por conteo de unidades. Mismas reglas que el libro de materias
// primas: stock nunca negativo, movimiento inmutable por ajuste, y propuesta/
// confirmación en dos fases para ajustes grandes.
type InventoryAdapter struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.ProductMovementRepository
	recipes      RecipeCreator
}

// NewInventoryAdapter construye el adaptador.
func NewInventoryAdapter(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.ProductMovementRepository,
	recipes RecipeCreator,
) *InventoryAdapter {
	return &InventoryAdapter{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		recipes:      recipes,
	}
}

// AdjustInput entrada para un ajuste de stock de producto.
type AdjustInput struct {
	ProductID  string
	Type       string
	Quantity   decimal.Decimal
	Reason     string
	Reference  string
	Confirm    bool
	ProposalID string
}

// AdjustStock registra un movimiento sobre el stock por unidades del producto.
// Solo aplica a productos con InventoryMethod=QUANTITY (ErrConflict en otro caso).
func (a *InventoryAdapter) AdjustStock(ctx context.Context, venueID, userID string, in AdjustInput) (*entity.ProductStockMovement, error) {
	if in.Confirm {
		return a.confirm(ctx, venueID, userID, in)
	}

	if !entity.ValidMovementType(in.Type) || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	product, err := a.ownedProduct(ctx, venueID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.TracksByQuantity() {
		return nil, domain.ErrConflict
	}

	var movement *entity.ProductStockMovement
	var confirmation *domain.ConfirmationRequiredError

	err = a.txRunner.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		proposalRepo repository.ProposalRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		if _, err := stockrules.Apply(locked.CurrentStock, in.Quantity); err != nil {
			return err
		}

		if stockrules.IsLargeAdjustment(locked.CurrentStock, in.Quantity) {
			proposal := &entity.ProposedAdjustment{
				ID:           uuid.New().String(),
				VenueID:      venueID,
				TargetKind:   entity.AdjustmentTargetProduct,
				TargetID:     in.ProductID,
				MovementType: in.Type,
				Quantity:     in.Quantity,
				Reason:       in.Reason,
				Reference:    in.Reference,
				Status:       entity.ProposalStatusProposed,
				CreatedAt:    time.Now(),
				CreatedBy:    userID,
			}
			if err := proposalRepo.Create(ctx, proposal); err != nil {
				return err
			}
			confirmation = &domain.ConfirmationRequiredError{ProposalID: proposal.ID}
			return nil
		}

		mov, err := commitProductAdjustment(ctx, productRepo, movRepo, locked, venueID, userID, in.Type, in.Quantity, in.Reason, in.Reference)
		if err != nil {
			return err
		}
		movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	if confirmation != nil {
		return nil, confirmation
	}
	return movement, nil
}

func (a *InventoryAdapter) confirm(ctx context.Context, venueID, userID string, in AdjustInput) (*entity.ProductStockMovement, error) {
	if in.ProposalID == "" {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.ProductStockMovement

	err := a.txRunner.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		proposalRepo repository.ProposalRepository,
	) error {
		proposal, err := proposalRepo.GetForUpdate(ctx, in.ProposalID)
		if err != nil {
			return err
		}
		if proposal == nil || proposal.VenueID != venueID {
			return domain.ErrNotFound
		}
		if proposal.TargetKind != entity.AdjustmentTargetProduct || proposal.TargetID != in.ProductID {
			return domain.ErrConflict
		}

		// Reintento de confirmación: devolver lo ya comprometido, sin escribir
		if proposal.Status == entity.ProposalStatusConfirmed {
			if proposal.MovementID == nil {
				return domain.ErrConflict
			}
			mov, err := movRepo.GetByID(ctx, *proposal.MovementID)
			if err != nil {
				return err
			}
			if mov == nil {
				return domain.ErrNotFound
			}
			movement = mov
			return nil
		}

		locked, err := productRepo.GetForUpdate(ctx, proposal.TargetID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		mov, err := commitProductAdjustment(ctx, productRepo, movRepo, locked, venueID, userID,
			proposal.MovementType, proposal.Quantity, proposal.Reason, proposal.Reference)
		if err != nil {
			return err
		}
		if err := proposalRepo.MarkConfirmed(ctx, proposal.ID, mov.ID, time.Now()); err != nil {
			return err
		}
		movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func commitProductAdjustment(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	product *entity.Product,
	venueID, userID, movType string,
	quantity decimal.Decimal,
	reason, reference string,
) (*entity.ProductStockMovement, error) {
	previous := product.CurrentStock
	next, err := stockrules.Apply(previous, quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product.CurrentStock = next
	product.UpdatedAt = now
	if err := productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	mov := &entity.ProductStockMovement{
		ID:            uuid.New().String(),
		VenueID:       venueID,
		ProductID:     product.ID,
		Type:          movType,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reason:        reason,
		Reference:     reference,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// History devuelve los movimientos del producto, del más reciente al más antiguo.
func (a *InventoryAdapter) History(ctx context.Context, venueID, productID string, limit int) ([]*entity.ProductStockMovement, error) {
	if _, err := a.ownedProduct(ctx, venueID, productID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return a.movementRepo.ListByProduct(ctx, venueID, productID, limit)
}

// ConvertToRecipeTracking cambia el producto de control por unidades a control
// por receta, exactamente una vez. La receta llega en la misma llamada para que
// el producto nunca quede sin método de control: receta y cambio de método se
// comprometen en una sola transacción, así los dos métodos siguen siendo
// excluyentes incluso si la conversión falla a mitad de camino.
func (a *InventoryAdapter) ConvertToRecipeTracking(ctx context.Context, venueID, productID string, in dto.ConvertToRecipeRequest) (*dto.ProductResponse, error) {
	product, err := a.ownedProduct(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	if !product.TracksByQuantity() {
		return nil, domain.ErrConflict
	}

	if _, err := a.recipes.CreateForConversion(ctx, venueID, productID, in.Recipe); err != nil {
		return nil, err
	}

	converted, err := a.ownedProduct(ctx, venueID, productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(converted), nil
}

func (a *InventoryAdapter) ownedProduct(ctx context.Context, venueID, id string) (*entity.Product, error) {
	product, err := a.productRepo.GetByID(ctx, id)
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
