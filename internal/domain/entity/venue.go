package entity

import "time"

// Venue es la sede (tenant). Todo el motor opera con venueID explícito;
// no hay "sede actual" ambiente en el backend.
type Venue struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
