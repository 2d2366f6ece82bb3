package highlights

import (
	"fmt"
	"strings"

	"github.com/forPelevin/hoopcut/internal/types"
)

const (
	Assists     types.Category = "assists"
	ThreeMade   types.Category = "3pt_made"
	ThreeMissed types.Category = "3pt_missed"
	ThreeAll    types.Category = "3pt_all"
	TwoMade     types.Category = "2pt_made"
	TwoMissed   types.Category = "2pt_missed"
	TwoAll      types.Category = "2pt_all"
	MadeShots   types.Category = "made_shots"
	MissedShots types.Category = "missed_shots"
	AllShots    types.Category = "all_shots"
	DefRebound  types.Category = "def_rebound"
	OffRebound  types.Category = "off_rebound"
	Rebounds    types.Category = "rebounds"
	Blocks      types.Category = "blocks"
	Steals      types.Category = "steals"
	Turnovers   types.Category = "turnovers"
	Fouls       types.Category = "fouls"
)

var vocabulary = []types.Category{
	Assists,
	ThreeMade, ThreeMissed, ThreeAll,
	TwoMade, TwoMissed, TwoAll,
	MadeShots, MissedShots, AllShots,
	DefRebound, OffRebound, Rebounds,
	Blocks, Steals, Turnovers, Fouls,
}

// AllCategories returns the closed tag vocabulary.
func AllCategories() []types.Category {
	out := make([]types.Category, len(vocabulary))
	copy(out, vocabulary)
	return out
}

func ParseCategory(s string) (types.Category, error) {
	c := types.Category(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range vocabulary {
		if v == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown highlight category %q", s)
}

// ParseCategories parses a list of category names; an empty list selects all.
func ParseCategories(names []string) ([]types.Category, error) {
	if len(names) == 0 {
		return AllCategories(), nil
	}
	out := make([]types.Category, 0, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
