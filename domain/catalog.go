package domain

import "github.com/samber/lo"

// GenreOther is the catch-all genre. It accepts any non-empty game name.
const GenreOther = "Other"

// Catalog is the static genre -> allowed games reference used to validate
// party creation. It is loaded once at startup and never mutated.
type Catalog struct {
	games map[string][]string
}

func NewCatalog(gamesByGenre map[string][]string) Catalog {
	games := make(map[string][]string, len(gamesByGenre))
	for genre, list := range gamesByGenre {
		games[genre] = lo.Uniq(list)
	}
	if _, ok := games[GenreOther]; !ok {
		games[GenreOther] = nil
	}
	return Catalog{games: games}
}

// DefaultCatalog returns the built-in genre/game reference data.
func DefaultCatalog() Catalog {
	return NewCatalog(map[string][]string{
		"AOS":     {"League of Legends"},
		"FPS":     {"Valorant", "PUBG: Battlegrounds", "Overwatch 2", "Fortnite"},
		"RPG":     {"Lost Ark", "Diablo 4"},
		"RTS":     {"StarCraft 2"},
		"Sports":  {"FIFA Online 4"},
		"Racing":  {"KartRider Rush+"},
		"Sandbox": {"Minecraft"},
		"Party":   {"Among Us"},
	})
}

// Genres lists the known genres in no particular order.
func (c Catalog) Genres() []string {
	return lo.Keys(c.games)
}

func (c Catalog) KnownGenre(genre string) bool {
	_, ok := c.games[genre]
	return ok
}

// Allows reports whether a game may be hosted under the given genre.
// The Other genre accepts any non-empty game.
func (c Catalog) Allows(genre, game string) bool {
	list, ok := c.games[genre]
	if !ok {
		return false
	}
	if genre == GenreOther {
		return game != ""
	}
	return lo.Contains(list, game)
}
