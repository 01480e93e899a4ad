package care

import (
	"context"
	"time"
)

// Record es lo que se persiste por (user, pet).
// UpdatedAt lo escribe el store; el motor no lo lee.
type Record struct {
	Hunger    float64 `json:"hunger"`
	Happiness float64 `json:"happiness"`
	Health    float64 `json:"health"`
	Energy    float64 `json:"energy"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xpToNextLevel"`

	UpdatedAt time.Time `json:"lastUpdated"`
}

// Store es el key-value de stats. Load devuelve found=false si no hay registro.
type Store interface {
	Load(ctx context.Context, userID, petName string) (Record, bool, error)
	Save(ctx context.Context, userID, petName string, rec Record) error
}

func RecordOf(s Stats) Record {
	return Record{
		Hunger:        s.Hunger,
		Happiness:     s.Happiness,
		Health:        s.Health,
		Energy:        s.Energy,
		Level:         s.Level,
		XP:            s.XP,
		XPToNextLevel: s.XPToNextLevel,
	}
}

func (r Record) Stats() Stats {
	return Stats{
		Hunger:        r.Hunger,
		Happiness:     r.Happiness,
		Health:        r.Health,
		Energy:        r.Energy,
		Level:         r.Level,
		XP:            r.XP,
		XPToNextLevel: r.XPToNextLevel,
	}
}
