package care

import "strings"

// Action es una acción de cuidado disparada por el usuario.
// @Enum feed, play, clean, rest
type Action string

const (
	ActionFeed  Action = "feed"
	ActionPlay  Action = "play"
	ActionClean Action = "clean"
	ActionRest  Action = "rest"
)

// Actions en el orden en que se muestran los botones.
var Actions = []Action{ActionFeed, ActionPlay, ActionClean, ActionRest}

type effect struct {
	hunger    float64
	happiness float64
	health    float64
	energy    float64
	xp        int
}

var effects = map[Action]effect{
	ActionFeed:  {hunger: 0.30, xp: 10},
	ActionPlay:  {happiness: 0.30, energy: -0.10, xp: 15},
	ActionClean: {health: 0.20, xp: 10},
	ActionRest:  {energy: 0.40, xp: 5},
}

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := effects[a]; !ok {
		return "", ErrUnknownAction
	}
	return a, nil
}

// XPFor devuelve la XP que otorga la acción (0 si no existe).
func XPFor(a Action) int {
	return effects[a].xp
}
