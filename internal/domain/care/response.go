package care

import "time"

// statsResponse: los cuatro valores en [0,1] más progreso.
type statsResponse struct {
	Hunger        float64 `json:"hunger"`
	Happiness     float64 `json:"happiness"`
	Health        float64 `json:"health"`
	Energy        float64 `json:"energy"`
	Level         int     `json:"level"`
	XP            int     `json:"xp"`
	XPToNextLevel int     `json:"xp_to_next_level"`
}

type moodResponse struct {
	Label string `json:"label" enums:"Feeling Great,Doing Well,Needs Attention,Not Happy,Critical"`
	Color Color  `json:"color"`
}

// snapshotResponse es lo que lee la capa de presentación.
// Sin mascota activa solo se envía {"active": false}.
type snapshotResponse struct {
	Active   bool           `json:"active"`
	Pet      string         `json:"pet,omitempty"`
	ModelURL string         `json:"model_url,omitempty"`
	Stats    *statsResponse `json:"stats,omitempty"`
	Mood     *moodResponse  `json:"mood,omitempty"`
	Colors   *StatColors    `json:"colors,omitempty"`
	Saves    int64          `json:"saves"`
	At       time.Time      `json:"at"`
}

// sceneResponse es lo único que consume la capa de render.
type sceneResponse struct {
	Active   bool   `json:"active"`
	Pet      string `json:"pet,omitempty"`
	ModelURL string `json:"model_url,omitempty"`
}

func toSnapshotResponse(s Snapshot) snapshotResponse {
	out := snapshotResponse{
		Active: s.Active,
		Saves:  s.Saves,
		At:     s.At,
	}
	if !s.Active {
		return out
	}

	out.Pet = s.Pet.Name
	out.ModelURL = s.Pet.ModelURL
	out.Stats = &statsResponse{
		Hunger:        s.Stats.Hunger,
		Happiness:     s.Stats.Happiness,
		Health:        s.Stats.Health,
		Energy:        s.Stats.Energy,
		Level:         s.Stats.Level,
		XP:            s.Stats.XP,
		XPToNextLevel: s.Stats.XPToNextLevel,
	}
	out.Mood = &moodResponse{Label: s.Mood.Label, Color: s.Mood.Color}
	colors := s.Colors
	out.Colors = &colors
	return out
}
