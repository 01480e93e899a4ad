package care

// Color es un color de presentación en hex. No participa de la lógica.
type Color string

const (
	ColorGreen      Color = "#4CAF50"
	ColorLightGreen Color = "#8BC34A"
	ColorAmber      Color = "#FFC107"
	ColorOrange     Color = "#FF9800"
	ColorRed        Color = "#F44336"
)

type Mood struct {
	Label string
	Color Color
}

var (
	MoodGreat    = Mood{Label: "Feeling Great", Color: ColorGreen}
	MoodWell     = Mood{Label: "Doing Well", Color: ColorLightGreen}
	MoodAttn     = Mood{Label: "Needs Attention", Color: ColorAmber}
	MoodUnhappy  = Mood{Label: "Not Happy", Color: ColorOrange}
	MoodCritical = Mood{Label: "Critical", Color: ColorRed}
)

// MoodOf clasifica la media de los cuatro stats.
// Comparación estricta contra el límite superior de cada banda.
func MoodOf(s Stats) Mood {
	avg := s.Average()
	switch {
	case avg > 0.8:
		return MoodGreat
	case avg > 0.6:
		return MoodWell
	case avg > 0.4:
		return MoodAttn
	case avg > 0.2:
		return MoodUnhappy
	default:
		return MoodCritical
	}
}

// StatColor colorea una barra individual, independiente del mood.
func StatColor(v float64) Color {
	v = quantize(v)
	switch {
	case v > 0.7:
		return ColorGreen
	case v > 0.4:
		return ColorAmber
	default:
		return ColorRed
	}
}

type StatColors struct {
	Hunger    Color `json:"hunger"`
	Happiness Color `json:"happiness"`
	Health    Color `json:"health"`
	Energy    Color `json:"energy"`
}

func ColorsOf(s Stats) StatColors {
	return StatColors{
		Hunger:    StatColor(s.Hunger),
		Happiness: StatColor(s.Happiness),
		Health:    StatColor(s.Health),
		Energy:    StatColor(s.Energy),
	}
}
