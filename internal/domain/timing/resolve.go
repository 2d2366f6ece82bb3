// Package timing maps game-clock readings back to positions in the broadcast video.
package timing

import (
	"errors"
	"math"

	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/types"
)

// ErrNotFound is returned when no clock reading in the requested period can be
// matched against the target.
var ErrNotFound = errors.New("timing: no clock reading matches")

// Match is the clock reading nearest to a requested clock value.
type Match struct {
	VideoTime float64
	// Delta is the matched reading minus the target, in seconds remaining.
	// Positive means the target happens Delta seconds of game time later.
	Delta float64
	Clock string
}

// Corrected projects the match onto the exact requested clock value. Only
// meaningful inside one continuous countdown run; matches next to a stoppage
// or a period reset are approximate.
func (m Match) Corrected() float64 { return m.VideoTime + m.Delta }

type row struct {
	videoTime float64
	secs      float64
	text      string
}

// Resolver answers clock lookups against one labeled clock table.
type Resolver struct {
	byPeriod map[types.Period][]row
}

func NewResolver(table []types.LabeledClockSample) *Resolver {
	r := &Resolver{byPeriod: make(map[types.Period][]row)}
	for _, s := range table {
		secs, ok := clock.ParseSeconds(s.ClockText)
		if !ok {
			continue
		}
		r.byPeriod[s.Period] = append(r.byPeriod[s.Period], row{videoTime: s.VideoTime, secs: secs, text: s.ClockText})
	}
	return r
}

// Periods reports how many readings are available per period.
func (r *Resolver) Periods() map[types.Period]int {
	out := make(map[types.Period]int, len(r.byPeriod))
	for p, rows := range r.byPeriod {
		out[p] = len(rows)
	}
	return out
}

// Resolve finds the reading in period closest to target. Ties go to the
// earliest video time.
func (r *Resolver) Resolve(period types.Period, target string) (Match, error) {
	rows := r.byPeriod[period]
	if len(rows) == 0 {
		return Match{}, ErrNotFound
	}
	want, ok := clock.ParseSeconds(target)
	if !ok {
		return Match{}, ErrNotFound
	}

	best := -1
	bestAbs := math.Inf(1)
	for i, rw := range rows {
		d := math.Abs(rw.secs - want)
		if d < bestAbs || (d == bestAbs && rw.videoTime < rows[best].videoTime) {
			best, bestAbs = i, d
		}
	}
	b := rows[best]
	return Match{VideoTime: b.videoTime, Delta: b.secs - want, Clock: b.text}, nil
}

// Range resolves a stint's clocks to a video time range, start before end.
func (r *Resolver) Range(period types.Period, startClock, endClock string) (float64, float64, error) {
	s, err := r.Resolve(period, startClock)
	if err != nil {
		return 0, 0, err
	}
	e, err := r.Resolve(period, endClock)
	if err != nil {
		return 0, 0, err
	}
	start, end := s.VideoTime, e.VideoTime
	if start > end {
		start, end = end, start
	}
	return start, end, nil
}
