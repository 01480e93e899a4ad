package care

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func uniform(v float64) Stats {
	s := DefaultStats()
	s.Hunger, s.Happiness, s.Health, s.Energy = v, v, v, v
	return s
}

func TestTick_FromFullStats(t *testing.T) {
	s := Tick(DefaultStats())

	assert.InDelta(t, 0.95, s.Hunger, eps)
	assert.InDelta(t, 0.97, s.Happiness, eps)
	assert.InDelta(t, 0.96, s.Energy, eps)
	assert.Equal(t, 1.0, s.Health, "health does not decay")
	assert.Equal(t, 0, s.XP)
}

func TestTick_FloorsAtZero(t *testing.T) {
	s := uniform(0)
	s.Health = 0.5
	for i := 0; i < 10; i++ {
		s = Tick(s)
	}
	assert.Equal(t, 0.0, s.Hunger)
	assert.Equal(t, 0.0, s.Happiness)
	assert.Equal(t, 0.0, s.Energy)
	assert.Equal(t, 0.5, s.Health)
}

func TestApply_FromFullStats(t *testing.T) {
	cases := []struct {
		action Action
		want   Stats
	}{
		{ActionFeed, Stats{Hunger: 1, Happiness: 1, Health: 1, Energy: 1, Level: 1, XP: 10, XPToNextLevel: 100}},
		{ActionPlay, Stats{Hunger: 1, Happiness: 1, Health: 1, Energy: 0.9, Level: 1, XP: 15, XPToNextLevel: 100}},
		{ActionClean, Stats{Hunger: 1, Happiness: 1, Health: 1, Energy: 1, Level: 1, XP: 10, XPToNextLevel: 100}},
		{ActionRest, Stats{Hunger: 1, Happiness: 1, Health: 1, Energy: 1, Level: 1, XP: 5, XPToNextLevel: 100}},
	}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			got := Apply(DefaultStats(), tc.action)
			assert.InDelta(t, tc.want.Hunger, got.Hunger, eps)
			assert.InDelta(t, tc.want.Happiness, got.Happiness, eps)
			assert.InDelta(t, tc.want.Health, got.Health, eps)
			assert.InDelta(t, tc.want.Energy, got.Energy, eps)
			assert.Equal(t, tc.want.XP, got.XP)
			assert.Equal(t, 1, got.Level)
			assert.Equal(t, 100, got.XPToNextLevel)
		})
	}
}

func TestApply_RaisesLowStats(t *testing.T) {
	s := uniform(0.5)

	assert.InDelta(t, 0.8, Apply(s, ActionFeed).Hunger, eps)
	assert.InDelta(t, 0.7, Apply(s, ActionClean).Health, eps)
	assert.InDelta(t, 0.9, Apply(s, ActionRest).Energy, eps)

	played := Apply(s, ActionPlay)
	assert.InDelta(t, 0.8, played.Happiness, eps)
	assert.InDelta(t, 0.4, played.Energy, eps)
}

func TestApply_PlayWithNoEnergyFloorsAtZero(t *testing.T) {
	s := uniform(0.05)
	got := Apply(s, ActionPlay)
	assert.Equal(t, 0.0, got.Energy)
}

func TestApply_XPHasNoLevelUp(t *testing.T) {
	s := DefaultStats()
	for i := 0; i < 20; i++ {
		s = Apply(s, ActionPlay)
	}
	assert.Equal(t, 300, s.XP)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 100, s.XPToNextLevel)
}

func TestStats_StayInRange_ForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := DefaultStats()

	for i := 0; i < 5000; i++ {
		if rng.Intn(3) == 0 {
			s = Tick(s)
		} else {
			s = Apply(s, Actions[rng.Intn(len(Actions))])
		}
		require.True(t, s.InRange(), "step %d out of range: %+v", i, s)
	}
}

func TestMoodOf_Boundaries(t *testing.T) {
	cases := []struct {
		v    float64
		want Mood
	}{
		{1.0, MoodGreat},
		{0.81, MoodGreat},
		{0.80, MoodWell},
		{0.61, MoodWell},
		{0.60, MoodAttn},
		{0.41, MoodAttn},
		{0.40, MoodUnhappy},
		{0.21, MoodUnhappy},
		{0.20, MoodCritical},
		{0.0, MoodCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MoodOf(uniform(tc.v)), "all stats = %v", tc.v)
	}
}

func TestMoodOf_UsesAverage(t *testing.T) {
	s := Stats{Hunger: 1, Happiness: 1, Health: 0.2, Energy: 0.2, Level: 1, XPToNextLevel: 100}
	// media 0.6 → banda (0.4, 0.6]
	assert.Equal(t, MoodAttn, MoodOf(s))
}

func TestStatColor(t *testing.T) {
	assert.Equal(t, ColorGreen, StatColor(0.71))
	assert.Equal(t, ColorAmber, StatColor(0.70))
	assert.Equal(t, ColorAmber, StatColor(0.41))
	assert.Equal(t, ColorRed, StatColor(0.40))
	assert.Equal(t, ColorRed, StatColor(0))
}

func TestColorsOf_IsPerStat(t *testing.T) {
	s := Stats{Hunger: 0.9, Happiness: 0.5, Health: 0.1, Energy: 0.7}
	c := ColorsOf(s)
	assert.Equal(t, StatColors{Hunger: ColorGreen, Happiness: ColorAmber, Health: ColorRed, Energy: ColorAmber}, c)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Feed ")
	require.NoError(t, err)
	assert.Equal(t, ActionFeed, a)

	_, err = ParseAction("dance")
	assert.ErrorIs(t, err, ErrUnknownAction)
}
