package highlights

import (
	"sort"

	"github.com/forPelevin/hoopcut/internal/domain/timing"
	"github.com/forPelevin/hoopcut/internal/types"
)

// Locator finds the video position of a clock reading.
type Locator interface {
	Resolve(period types.Period, clock string) (timing.Match, error)
}

// BuildEvents classifies every play and stamps the tagged ones with a video
// time. Plays that cannot be located are returned separately so callers can
// report them; they never abort the batch.
func BuildEvents(plays []types.PlayEvent, player string, loc Locator) ([]types.HighlightEvent, []types.PlayEvent) {
	var (
		events     []types.HighlightEvent
		unresolved []types.PlayEvent
	)
	for _, p := range plays {
		cats := Classify(p, player)
		if len(cats) == 0 {
			continue
		}
		m, err := loc.Resolve(p.Period, p.Clock)
		if err != nil {
			unresolved = append(unresolved, p)
			continue
		}
		for _, c := range cats {
			events = append(events, types.HighlightEvent{
				Category:  c,
				Period:    p.Period,
				Clock:     p.Clock,
				VideoTime: m.VideoTime,
				Delta:     m.Delta,
				Text:      p.Text,
			})
		}
	}
	SortEvents(events)
	return events, unresolved
}

// SortEvents orders events by category, then by video time.
func SortEvents(events []types.HighlightEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Category != events[j].Category {
			return events[i].Category < events[j].Category
		}
		return events[i].VideoTime < events[j].VideoTime
	})
}

// Group is one category's events in video order.
type Group struct {
	Category types.Category
	Events   []types.HighlightEvent
}

// GroupByCategory splits events into per-category groups. Only categories in
// keep are returned; a nil keep returns every category present.
func GroupByCategory(events []types.HighlightEvent, keep []types.Category) []Group {
	sorted := make([]types.HighlightEvent, len(events))
	copy(sorted, events)
	SortEvents(sorted)

	var allowed map[types.Category]bool
	if keep != nil {
		allowed = make(map[types.Category]bool, len(keep))
		for _, c := range keep {
			allowed[c] = true
		}
	}

	var out []Group
	for _, ev := range sorted {
		if allowed != nil && !allowed[ev.Category] {
			continue
		}
		if len(out) == 0 || out[len(out)-1].Category != ev.Category {
			out = append(out, Group{Category: ev.Category})
		}
		g := &out[len(out)-1]
		g.Events = append(g.Events, ev)
	}
	return out
}

// Window is the amount of video kept around each highlight.
type Window struct {
	Pre  float64 `toml:"pre_sec"`
	Post float64 `toml:"post_sec"`
}

func DefaultWindow() Window { return Window{Pre: 7.5, Post: 2.5} }

// Range returns the clip bounds for ev, anchored on the delta-corrected time.
func (w Window) Range(ev types.HighlightEvent) (float64, float64) {
	at := ev.VideoTime + ev.Delta
	start := at - w.Pre
	if start < 0 {
		start = 0
	}
	return start, at + w.Post
}
