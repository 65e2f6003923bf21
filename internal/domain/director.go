package domain

import "time"

// Director represents a movie director. Directors are pre-seeded and
// managed outside the API surface.
type Director struct {
	ID          int64
	Name        string
	BirthYear   *int
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
