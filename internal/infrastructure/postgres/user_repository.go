package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.VenueRepository = (*VenueRepo)(nil)

const userColumns = `id, venue_id, email, name, password_hash, role, active, created_at, updated_at`

// UserRepo persistencia de usuarios sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario. Email único por sede.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.VenueID, u.Email, u.Name, u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmailAndVenue obtiene un usuario por email dentro de una sede.
func (r *UserRepo) GetByEmailAndVenue(ctx context.Context, email, venueID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND venue_id = $2`
	return r.getOne(ctx, query, email, venueID)
}

// GetByEmail obtiene un usuario por email (primera coincidencia).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 ORDER BY created_at ASC LIMIT 1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.VenueID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// VenueRepo persistencia de sedes (tenants) sobre PostgreSQL.
type VenueRepo struct {
	q Querier
}

// NewVenueRepository construye el adaptador de sedes. Pasar pool o tx (Querier).
func NewVenueRepository(q Querier) *VenueRepo {
	return &VenueRepo{q: q}
}

// Create persiste una sede.
func (r *VenueRepo) Create(ctx context.Context, v *entity.Venue) error {
	query := `
		INSERT INTO venues (id, name, tax_id, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Name, v.TaxID, v.Address, v.Active, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

// GetByID obtiene una sede por ID.
func (r *VenueRepo) GetByID(ctx context.Context, id string) (*entity.Venue, error) {
	query := `SELECT id, name, tax_id, address, active, created_at, updated_at FROM venues WHERE id = $1`
	var v entity.Venue
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.TaxID, &v.Address, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return &v, nil
}
