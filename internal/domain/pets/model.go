package pets

import "time"

// Pet es una entrada del catálogo. Name es la key única y también la key
// bajo la que se guardan las stats.
type Pet struct {
	Name        string
	Glyph       string
	Description string
	Trait       string

	// Solo mascotas custom (generadas desde una foto por servicios externos).
	Custom      bool
	ID          string
	OwnerUserID string
	ModelURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomName es el nombre fijo de la entrada custom de cada usuario.
const CustomName = "Custom"

// builtins: catálogo fijo, en el orden en que se muestra.
var builtins = []Pet{
	{Name: "Bunny", Glyph: "🐰", Description: "A fluffy bunny that loves carrots and hopping around.", Trait: "Playful"},
	{Name: "Kitty", Glyph: "🐱", Description: "A curious cat who naps in sunbeams.", Trait: "Independent"},
	{Name: "Puppy", Glyph: "🐶", Description: "A loyal pup, always ready for a game of fetch.", Trait: "Loyal"},
	{Name: "Dragon", Glyph: "🐉", Description: "A tiny dragon with a big appetite.", Trait: "Fierce"},
	{Name: "Fox", Glyph: "🦊", Description: "A clever fox that hides snacks everywhere.", Trait: "Clever"},
	{Name: "Owl", Glyph: "🦉", Description: "A wise owl that stays up all night.", Trait: "Wise"},
}

// Builtins devuelve una copia del catálogo fijo.
func Builtins() []Pet {
	out := make([]Pet, len(builtins))
	copy(out, builtins)
	return out
}
