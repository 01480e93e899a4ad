package activity

import "time"

// Entry es una acción de cuidado aceptada por el motor.
type Entry struct {
	ID         string
	UserID     string
	PetName    string
	Action     string
	XPGained   int
	OccurredAt time.Time
}
