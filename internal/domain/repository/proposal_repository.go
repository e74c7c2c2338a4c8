package repository

import (
	"context"
	"time"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// ProposalRepository define el puerto de persistencia para propuestas de ajuste grande.
type ProposalRepository interface {
	Create(ctx context.Context, p *entity.ProposedAdjustment) error
	// GetForUpdate bloquea la propuesta para que dos confirmaciones concurrentes
	// del mismo token no dupliquen el movimiento.
	GetForUpdate(ctx context.Context, id string) (*entity.ProposedAdjustment, error)
	MarkConfirmed(ctx context.Context, id, movementID string, at time.Time) error
}
