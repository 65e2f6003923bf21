package domain

import "time"

// Genre represents a movie genre. Genre names are unique.
type Genre struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
