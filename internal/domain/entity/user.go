package entity

import "time"

// Roles de usuario dentro de una sede.
const (
	RoleAdmin      = "admin"
	RoleInventario = "inventario"
	RoleCaja       = "caja"
)

// User usuario del back-office, siempre atado a una sede.
type User struct {
	ID           string
	VenueID      string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
