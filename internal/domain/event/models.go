package event

import (
	"time"

	"hrconsole/internal/domain/auth"
)

type Event struct {
	auth.Ownership
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListFilter struct {
	// ActiveAt keeps only events whose end is at or after the given instant.
	ActiveAt *time.Time
}

type Input struct {
	Title         string
	Description   string
	StartDateTime time.Time
	EndDateTime   time.Time
}
