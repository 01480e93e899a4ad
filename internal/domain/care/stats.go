package care

import "math"

// Stats es el vector de cuidado de una mascota.
// Los cuatro floats viven siempre en [0,1]; 1.0 = perfecto.
type Stats struct {
	Hunger    float64
	Happiness float64
	Health    float64
	Energy    float64

	Level         int
	XP            int
	XPToNextLevel int
}

const (
	DefaultLevel         = 1
	DefaultXPToNextLevel = 100

	hungerDecay    = 0.05
	happinessDecay = 0.03
	energyDecay    = 0.04
)

func DefaultStats() Stats {
	return Stats{
		Hunger:        1,
		Happiness:     1,
		Health:        1,
		Energy:        1,
		Level:         DefaultLevel,
		XP:            0,
		XPToNextLevel: DefaultXPToNextLevel,
	}
}

// Tick aplica un paso de decay. Health no decae.
func Tick(s Stats) Stats {
	s.Hunger = shift(s.Hunger, -hungerDecay)
	s.Happiness = shift(s.Happiness, -happinessDecay)
	s.Energy = shift(s.Energy, -energyDecay)
	return s
}

// Apply aplica una acción de cuidado. Cada campo se clampa por separado;
// la XP se suma sin tope y no hay subida de nivel automática.
func Apply(s Stats, a Action) Stats {
	ef, ok := effects[a]
	if !ok {
		return s
	}
	s.Hunger = shift(s.Hunger, ef.hunger)
	s.Happiness = shift(s.Happiness, ef.happiness)
	s.Health = shift(s.Health, ef.health)
	s.Energy = shift(s.Energy, ef.energy)
	s.XP += ef.xp
	return s
}

// Average es la media de los cuatro stats, ya cuantizada.
func (s Stats) Average() float64 {
	return quantize((s.Hunger + s.Happiness + s.Health + s.Energy) / 4)
}

// InRange: los cuatro floats en [0,1] y los enteros coherentes.
func (s Stats) InRange() bool {
	for _, v := range []float64{s.Hunger, s.Happiness, s.Health, s.Energy} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return s.Level >= 1 && s.XP >= 0 && s.XPToNextLevel > 0
}

// shift suma d y clampa. Con d == 0 no toca el valor (evita re-cuantizar
// valores cargados del store).
func shift(v, d float64) float64 {
	if d == 0 {
		return v
	}
	return clamp01(v + d)
}

func clamp01(v float64) float64 {
	v = quantize(v)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// quantize redondea a 1e-6 para que el ruido de float no mueva los límites
// de banda (4 × 0.80 / 4 tiene que dar 0.80, no 0.8000000000000002).
func quantize(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
