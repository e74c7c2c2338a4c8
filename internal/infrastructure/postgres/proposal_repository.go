package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

const proposalColumns = `id, venue_id, target_kind, target_id, movement_type,
	quantity, unit_cost, reason, reference, status, movement_id,
	created_at, created_by, confirmed_at`

// ProposalRepo persistencia de propuestas de ajuste grande sobre PostgreSQL.
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository construye el adaptador de propuestas. Pasar pool o tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

// Create persiste una propuesta en estado PROPOSED. El ID es el token de
// idempotencia, por eso duplicados son ErrDuplicate.
func (r *ProposalRepo) Create(ctx context.Context, p *entity.ProposedAdjustment) error {
	query := `
		INSERT INTO proposed_adjustments (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.VenueID, p.TargetKind, p.TargetID, p.MovementType,
		p.Quantity, p.UnitCost, p.Reason, p.Reference, p.Status, p.MovementID,
		p.CreatedAt, p.CreatedBy, p.ConfirmedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proposed adjustment: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la propuesta y bloquea la fila para que dos
// confirmaciones concurrentes del mismo token se serialicen.
func (r *ProposalRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProposedAdjustment, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposed_adjustments WHERE id = $1 FOR UPDATE`
	var p entity.ProposedAdjustment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.VenueID, &p.TargetKind, &p.TargetID, &p.MovementType,
		&p.Quantity, &p.UnitCost, &p.Reason, &p.Reference, &p.Status, &p.MovementID,
		&p.CreatedAt, &p.CreatedBy, &p.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposed adjustment for update: %w", err)
	}
	return &p, nil
}

// MarkConfirmed pasa la propuesta a CONFIRMED apuntando al movimiento generado.
func (r *ProposalRepo) MarkConfirmed(ctx context.Context, id, movementID string, at time.Time) error {
	query := `
		UPDATE proposed_adjustments
		SET status = $2, movement_id = $3, confirmed_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, entity.ProposalStatusConfirmed, movementID, at)
	if err != nil {
		return fmt.Errorf("confirm proposed adjustment: %w", err)
	}
	return nil
}
