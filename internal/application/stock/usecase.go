package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/costing"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
	stockrules "github.com/dcastano/fogon-api/internal/domain/stock"
)

// LedgerUseCase es el libro de stock de materias primas: registra cada cambio como
// movimiento inmutable y mantiene CurrentStock, con bloqueo de fila (SELECT FOR
// UPDATE) y Commit/Rollback. Los ajustes grandes pasan por el protocolo de
// propuesta/confirmación en dos fases.
type LedgerUseCase struct {
	txRunner     TxRunner
	materialRepo repository.RawMaterialRepository
	movementRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	materialRepo repository.RawMaterialRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		movementRepo: movementRepo,
	}
}

// AdjustInput entrada para un ajuste de stock. Quantity es el delta con signo.
// Confirm + ProposalID reenvían una propuesta de ajuste grande.
type AdjustInput struct {
	RawMaterialID string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal // solo PURCHASE
	Reason        string
	Reference     string
	Confirm       bool
	ProposalID    string
}

// Adjust registra un movimiento de stock de forma transaccional. Reglas:
//
//   - previousStock + quantity < 0 -> ErrNegativeStock, sin escritura alguna.
//   - |quantity| > 50% del stock previo (previo > 0) -> la primera llamada solo
//     persiste una propuesta y devuelve ConfirmationRequiredError; compromete la
//     segunda llamada con Confirm=true y el ProposalID.
//   - PURCHASE con UnitCost recalcula el costo promedio ponderado y fija
//     CostPerUnit al costo de la última compra.
//
// Cada llamada exitosa escribe exactamente un movimiento y actualiza exactamente
// una materia prima.
func (uc *LedgerUseCase) Adjust(ctx context.Context, venueID, userID string, in AdjustInput) (*entity.StockMovement, error) {
	if in.Confirm {
		return uc.confirm(ctx, venueID, userID, in)
	}

	if !entity.ValidMovementType(in.Type) || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validar que la materia exista y sea de la sede antes de abrir transacción
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

	var movement *entity.StockMovement
	var confirmation *domain.ConfirmationRequiredError

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.StockMovementRepository,
		proposalRepo repository.ProposalRepository,
	) error {
		// Bloquea la fila de la materia prima para serializar ajustes concurrentes
		locked, err := materialRepo.GetForUpdate(ctx, in.RawMaterialID)
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
				TargetKind:   entity.AdjustmentTargetRawMaterial,
				TargetID:     in.RawMaterialID,
				MovementType: in.Type,
				Quantity:     in.Quantity,
				UnitCost:     in.UnitCost,
				Reason:       in.Reason,
				Reference:    in.Reference,
				Status:       entity.ProposalStatusProposed,
				CreatedAt:    time.Now(),
				CreatedBy:    userID,
			}
			if err := proposalRepo.Create(ctx, proposal); err != nil {
				return err
			}
			// La propuesta sí se comete; el ajuste no
			confirmation = &domain.ConfirmationRequiredError{ProposalID: proposal.ID}
			return nil
		}

		mov, err := commitAdjustment(ctx, materialRepo, movRepo, locked, venueID, userID, in.Type, in.Quantity, in.UnitCost, in.Reason, in.Reference)
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

// confirm compromete una propuesta de ajuste grande. Idempotente: si la propuesta
// ya está CONFIRMED devuelve el movimiento existente sin escribir nada, así un
// reintento de red no duplica el movimiento.
func (uc *LedgerUseCase) confirm(ctx context.Context, venueID, userID string, in AdjustInput) (*entity.StockMovement, error) {
	if in.ProposalID == "" {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.StockMovementRepository,
		proposalRepo repository.ProposalRepository,
	) error {
		proposal, err := proposalRepo.GetForUpdate(ctx, in.ProposalID)
		if err != nil {
			return err
		}
		if proposal == nil || proposal.VenueID != venueID {
			return domain.ErrNotFound
		}
		if proposal.TargetKind != entity.AdjustmentTargetRawMaterial || proposal.TargetID != in.RawMaterialID {
			return domain.ErrConflict
		}

		if proposal.Status == entity.ProposalStatusConfirmed {
			if proposal.MovementID == nil {
				return domain.ErrConflict
			}
			existing, err := movRepo.GetByID(ctx, *proposal.MovementID)
			if err != nil {
				return err
			}
			movement = existing
			return nil
		}

		locked, err := materialRepo.GetForUpdate(ctx, proposal.TargetID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		// Se compromete con los valores de la propuesta, no con los del request:
		// lo confirmado es exactamente lo que se propuso.
		mov, err := commitAdjustment(ctx, materialRepo, movRepo, locked, venueID, userID,
			proposal.MovementType, proposal.Quantity, proposal.UnitCost, proposal.Reason, proposal.Reference)
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

// commitAdjustment aplica el delta sobre la fila ya bloqueada: valida no-negativo,
// actualiza stock y costos, y escribe el movimiento. Compartido por el camino
// directo y el de confirmación.
func commitAdjustment(
	ctx context.Context,
	materialRepo repository.RawMaterialRepository,
	movRepo repository.StockMovementRepository,
	material *entity.RawMaterial,
	venueID, userID, movType string,
	quantity decimal.Decimal,
	unitCost *decimal.Decimal,
	reason, reference string,
) (*entity.StockMovement, error) {
	previous := material.CurrentStock
	next, err := stockrules.Apply(previous, quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if movType == entity.MovementTypePURCHASE && unitCost != nil && quantity.IsPositive() {
		material.AvgCostPerUnit = costing.WeightedAverageCost(previous, material.AvgCostPerUnit, quantity, *unitCost)
		material.CostPerUnit = *unitCost
	}
	material.CurrentStock = next
	material.UpdatedAt = now
	if err := materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		VenueID:       venueID,
		RawMaterialID: material.ID,
		Type:          movType,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		UnitCost:      unitCost,
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

// History devuelve los movimientos de una materia prima, del más reciente al más
// antiguo. Lectura sin estado: no hay cursor implícito.
func (uc *LedgerUseCase) History(ctx context.Context, venueID, rawMaterialID string, limit int) ([]*entity.StockMovement, error) {
	material, err := uc.materialRepo.GetByID(ctx, rawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.VenueID != venueID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movementRepo.ListByMaterial(ctx, venueID, rawMaterialID, limit)
}
