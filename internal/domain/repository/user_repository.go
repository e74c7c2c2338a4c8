package repository

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmailAndVenue(ctx context.Context, email, venueID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// VenueRepository define el puerto de persistencia para Venue (tenant).
type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	GetByID(ctx context.Context, id string) (*entity.Venue, error)
}
