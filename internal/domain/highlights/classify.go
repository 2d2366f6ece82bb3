package highlights

import (
	"sort"
	"strings"

	"github.com/forPelevin/hoopcut/internal/textutil"
	"github.com/forPelevin/hoopcut/internal/types"
)

// play is the normalised view every rule is evaluated against.
type play struct {
	text string
	name string

	shooter  bool
	made     bool
	assister bool
}

func (p play) has(sub string) bool { return strings.Contains(p.text, sub) }

func (p play) hasAny(subs ...string) bool {
	for _, s := range subs {
		if p.has(s) {
			return true
		}
	}
	return false
}

// credited reports whether a generic mention of an action (a rebound or a
// block with no name attached) can be credited to the player: not when the
// player is the shooter or passer of the same play.
func (p play) credited() bool { return !p.shooter && !p.assister }

type rule struct {
	name  string
	match func(p play) bool
	tags  []types.Category
}

var twoPointShots = []string{"jumper", "layup", "dunk", "tip"}

var rules = []rule{
	{
		name:  "assist",
		match: func(p play) bool { return p.assister },
		tags:  []types.Category{Assists},
	},
	{
		name:  "three made",
		match: func(p play) bool { return p.shooter && p.made && p.has("three point") },
		tags:  []types.Category{ThreeMade, ThreeAll},
	},
	{
		name:  "three missed",
		match: func(p play) bool { return p.shooter && !p.made && p.has("three point") },
		tags:  []types.Category{ThreeMissed, ThreeAll},
	},
	{
		name:  "two made",
		match: func(p play) bool { return p.shooter && p.made && !p.has("three point") && p.hasAny(twoPointShots...) },
		tags:  []types.Category{TwoMade, TwoAll},
	},
	{
		name:  "two missed",
		match: func(p play) bool { return p.shooter && !p.made && !p.has("three point") && p.hasAny(twoPointShots...) },
		tags:  []types.Category{TwoMissed, TwoAll},
	},
	{
		name:  "made shot",
		match: func(p play) bool { return p.shooter && p.made },
		tags:  []types.Category{MadeShots, AllShots},
	},
	{
		name:  "missed shot",
		match: func(p play) bool { return p.shooter && !p.made },
		tags:  []types.Category{MissedShots, AllShots},
	},
	{
		name:  "defensive rebound",
		match: func(p play) bool { return rebound(p, "defensive rebound") },
		tags:  []types.Category{DefRebound, Rebounds},
	},
	{
		name:  "offensive rebound",
		match: func(p play) bool { return rebound(p, "offensive rebound") },
		tags:  []types.Category{OffRebound, Rebounds},
	},
	{
		name: "block",
		match: func(p play) bool {
			return p.hasAny(p.name+" block", "blocked by "+p.name) || (p.has("block") && p.credited())
		},
		tags: []types.Category{Blocks},
	},
	{
		name:  "steal",
		match: func(p play) bool { return p.hasAny(p.name+" steal", "steal by "+p.name) },
		tags:  []types.Category{Steals},
	},
	{
		name:  "turnover",
		match: func(p play) bool { return p.hasAny("turnover", "lost the ball") },
		tags:  []types.Category{Turnovers},
	},
	{
		name:  "foul",
		match: func(p play) bool { return p.hasAny("foul on "+p.name, p.name+" foul") },
		tags:  []types.Category{Fouls},
	},
}

func rebound(p play, kind string) bool {
	if p.hasAny(p.name+" "+kind, kind+" by "+p.name) {
		return true
	}
	return p.has(kind) && p.credited()
}

// Classify returns the highlight tags of one play for player, sorted and
// without duplicates. Plays that do not involve the player and free throws
// have no tags.
func Classify(ev types.PlayEvent, player string) []types.Category {
	p, ok := newPlay(ev, player)
	if !ok {
		return nil
	}
	seen := make(map[types.Category]struct{})
	for _, r := range rules {
		if !r.match(p) {
			continue
		}
		for _, t := range r.tags {
			seen[t] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]types.Category, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func newPlay(ev types.PlayEvent, player string) (play, bool) {
	name := textutil.Normalize(player)
	text := textutil.Normalize(ev.Text)
	if name == "" || text == "" {
		return play{}, false
	}
	if !strings.Contains(text, name) && !participates(ev.Participants, player) {
		return play{}, false
	}
	if strings.Contains(text, "free throw") {
		return play{}, false
	}
	p := play{text: text, name: name}
	p.made = p.has(name + " made")
	p.shooter = p.made || p.has(name+" missed")
	p.assister = p.hasAny("assisted by "+name, "assist by "+name)
	return p, true
}

func participates(names []string, player string) bool {
	for _, n := range names {
		if textutil.EqualName(n, player) {
			return true
		}
	}
	return false
}
