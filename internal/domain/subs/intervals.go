package subs

import (
	"sort"

	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/types"
)

const endClock = "0:00"

type Config struct {
	HalfSeconds     float64 `toml:"half_seconds"`
	OvertimeSeconds float64 `toml:"overtime_seconds"`
	// InferStarters opens a stint at the period start when the player's first
	// event of the period is OUT. Starters are never announced as subbing in.
	InferStarters bool `toml:"infer_starters"`
}

func DefaultConfig() Config {
	return Config{HalfSeconds: 20 * 60, OvertimeSeconds: 5 * 60}
}

type Reconstructor struct {
	cfg Config
}

func NewReconstructor(cfg Config) Reconstructor { return Reconstructor{cfg: cfg} }

// PeriodStart is the clock shown when p tips off.
func (r Reconstructor) PeriodStart(p types.Period) string {
	if p.IsOvertime() {
		return clock.FormatSeconds(r.cfg.OvertimeSeconds)
	}
	return clock.FormatSeconds(r.cfg.HalfSeconds)
}

// FullGame is the interval list used when the log has nothing for the player.
func (r Reconstructor) FullGame() []types.OnCourtInterval {
	return []types.OnCourtInterval{r.full(types.FirstHalf), r.full(types.SecondHalf)}
}

func (r Reconstructor) full(p types.Period) types.OnCourtInterval {
	return types.OnCourtInterval{Period: p, StartClock: r.PeriodStart(p), EndClock: endClock}
}

// Reconstruct replays the substitution log as an OUT/IN state machine and
// returns one interval per stint. played is the last period the game is known
// to have reached; state carries into an overtime only when played or the log
// itself reaches it. Malformed sequences (IN after IN, OUT after OUT) are ignored.
func (r Reconstructor) Reconstruct(events []types.SubstitutionEvent, played types.Period) []types.OnCourtInterval {
	sorted := SortEvents(events)
	if len(sorted) == 0 {
		return r.FullGame()
	}

	last := types.SecondHalf
	if last.Before(played) {
		last = played
	}
	byPeriod := make(map[types.Period][]types.SubstitutionEvent)
	for _, ev := range sorted {
		byPeriod[ev.Period] = append(byPeriod[ev.Period], ev)
		if last.Before(ev.Period) {
			last = ev.Period
		}
	}

	var out []types.OnCourtInterval
	carry := false
	for p := types.FirstHalf; !last.Before(p); p = p.Next() {
		var ivs []types.OnCourtInterval
		ivs, carry = r.replay(p, byPeriod[p], carry)
		out = append(out, ivs...)
	}

	for _, p := range []types.Period{types.FirstHalf, types.SecondHalf} {
		if !hasPeriod(out, p) {
			out = append(out, r.full(p))
		}
	}
	SortIntervals(out)
	return out
}

// replay runs one period. onCourt is the state carried from the previous
// period; the returned bool is the state at the final buzzer.
func (r Reconstructor) replay(p types.Period, evs []types.SubstitutionEvent, onCourt bool) ([]types.OnCourtInterval, bool) {
	var out []types.OnCourtInterval
	var start string
	if onCourt {
		start = r.PeriodStart(p)
	}
	for i, ev := range evs {
		switch ev.Action {
		case types.ActionIn:
			if !onCourt {
				onCourt, start = true, ev.Clock
			}
		case types.ActionOut:
			switch {
			case onCourt:
				out = append(out, types.OnCourtInterval{Period: p, StartClock: start, EndClock: ev.Clock})
				onCourt = false
			case i == 0 && r.cfg.InferStarters:
				out = append(out, types.OnCourtInterval{Period: p, StartClock: r.PeriodStart(p), EndClock: ev.Clock})
			}
		}
	}
	if onCourt {
		out = append(out, types.OnCourtInterval{Period: p, StartClock: start, EndClock: endClock})
	}
	return out, onCourt
}

// SortEvents returns the parseable events in game order: by period, then by
// descending clock. Events on the same clock keep their log order.
func SortEvents(events []types.SubstitutionEvent) []types.SubstitutionEvent {
	type keyed struct {
		ev   types.SubstitutionEvent
		secs float64
	}
	ks := make([]keyed, 0, len(events))
	for _, ev := range events {
		secs, ok := clock.ParseSeconds(ev.Clock)
		if !ok || !ev.Period.Valid() {
			continue
		}
		ks = append(ks, keyed{ev: ev, secs: secs})
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ev.Period != ks[j].ev.Period {
			return ks[i].ev.Period.Before(ks[j].ev.Period)
		}
		return ks[i].secs > ks[j].secs
	})
	out := make([]types.SubstitutionEvent, len(ks))
	for i, k := range ks {
		out[i] = k.ev
	}
	return out
}

// SortIntervals orders intervals by period, then by descending start clock.
func SortIntervals(ivs []types.OnCourtInterval) {
	sort.SliceStable(ivs, func(i, j int) bool {
		if ivs[i].Period != ivs[j].Period {
			return ivs[i].Period.Before(ivs[j].Period)
		}
		a, _ := clock.ParseSeconds(ivs[i].StartClock)
		b, _ := clock.ParseSeconds(ivs[j].StartClock)
		return a > b
	})
}

func hasPeriod(ivs []types.OnCourtInterval, p types.Period) bool {
	for _, iv := range ivs {
		if iv.Period == p {
			return true
		}
	}
	return false
}
