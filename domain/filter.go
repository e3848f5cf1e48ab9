package domain

import (
	"strings"

	"github.com/samber/lo"
)

// FilterAll is the wildcard value for the Genre and Game filter fields.
// An empty string means the same thing.
const FilterAll = "all"

// ListFilter narrows a party listing. Zero value matches everything.
type ListFilter struct {
	Genre      string
	Game       string
	SearchText string
	RequireTag string
	// OldestFirst flips the stated default order (most recently
	// created first).
	OldestFirst bool
}

func wildcard(s string) bool {
	return s == "" || strings.EqualFold(s, FilterAll)
}

// Matches applies the listing rules: case-insensitive substring match of
// SearchText against the title, exact genre/game match unless wildcarded,
// and tag-set membership for RequireTag.
func (f ListFilter) Matches(p Party) bool {
	if !wildcard(f.Genre) && p.Genre != f.Genre {
		return false
	}
	if !wildcard(f.Game) && p.Game != f.Game {
		return false
	}
	if f.SearchText != "" &&
		!strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.SearchText)) {
		return false
	}
	if f.RequireTag != "" && !lo.Contains(p.Tags, f.RequireTag) {
		return false
	}
	return true
}
