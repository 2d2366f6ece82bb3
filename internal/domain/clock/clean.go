package clock

import (
	"sort"

	"github.com/forPelevin/hoopcut/internal/types"
)

// Config holds the thresholds used to tell OCR misreads from real clock
// movement. Windows are inclusive and expressed in seconds remaining.
type Config struct {
	// EndThreshold is the highest reading still treated as "period over".
	EndThreshold float64 `toml:"end_threshold"`
	HalfResetMin float64 `toml:"half_reset_min"`
	HalfResetMax float64 `toml:"half_reset_max"`
	OTResetMin   float64 `toml:"ot_reset_min"`
	OTResetMax   float64 `toml:"ot_reset_max"`

	MedianTolerance float64 `toml:"median_tolerance"`
	SpikeJump       float64 `toml:"spike_jump"`
	SpikeResume     float64 `toml:"spike_resume"`
}

func DefaultConfig() Config {
	return Config{
		EndThreshold:    2.5,
		HalfResetMin:    19*60 + 45,
		HalfResetMax:    20 * 60,
		OTResetMin:      4*60 + 50,
		OTResetMax:      5 * 60,
		MedianTolerance: 5.0,
		SpikeJump:       2.0,
		SpikeResume:     3.0,
	}
}

type Cleaner struct {
	cfg Config
}

func NewCleaner(cfg Config) Cleaner { return Cleaner{cfg: cfg} }

// IsReset reports whether prev -> curr is a legitimate period start: the clock
// was at the end of a period and now reads inside a half or overtime start window.
func (c Cleaner) IsReset(prev, curr float64) bool {
	if prev > c.cfg.EndThreshold {
		return false
	}
	return (curr >= c.cfg.HalfResetMin && curr <= c.cfg.HalfResetMax) ||
		(curr >= c.cfg.OTResetMin && curr <= c.cfg.OTResetMax)
}

// Clean drops unparseable readings and single-sample OCR spikes. Order is kept.
// Neighbours are the raw predecessor and successor of each sample.
func (c Cleaner) Clean(rows []types.ClockSample) []types.ClockSample {
	if len(rows) == 0 {
		return nil
	}
	secs := make([]float64, len(rows))
	ok := make([]bool, len(rows))
	for i, r := range rows {
		secs[i], ok[i] = ParseSeconds(r.ClockText)
	}

	out := make([]types.ClockSample, 0, len(rows))
	for i, r := range rows {
		if !ok[i] {
			continue
		}
		if i == 0 || i == len(rows)-1 || !ok[i-1] || !ok[i+1] {
			out = append(out, r)
			continue
		}
		prev, curr, next := secs[i-1], secs[i], secs[i+1]
		if c.IsReset(prev, curr) {
			out = append(out, r)
			continue
		}
		if abs(curr-median3(prev, curr, next)) > c.cfg.MedianTolerance {
			continue
		}
		// A forward jump that the next frame walks back from is a one-frame misread.
		if curr-prev > c.cfg.SpikeJump && abs(next-(prev-1.0)) < c.cfg.SpikeResume {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Label tags every sample with its period, advancing on each reset measured
// against the previous sample of the (already cleaned) sequence.
func (c Cleaner) Label(rows []types.ClockSample) []types.LabeledClockSample {
	out := make([]types.LabeledClockSample, 0, len(rows))
	idx := 1
	var prev float64
	havePrev := false
	for _, r := range rows {
		curr, ok := ParseSeconds(r.ClockText)
		if ok && havePrev && c.IsReset(prev, curr) {
			idx++
		}
		p, _ := types.PeriodFromIndex(idx)
		out = append(out, types.LabeledClockSample{ClockSample: r, Period: p})
		prev, havePrev = curr, ok
	}
	return out
}

// CleanAndLabel runs Clean followed by Label.
func (c Cleaner) CleanAndLabel(rows []types.ClockSample) []types.LabeledClockSample {
	return c.Label(c.Clean(rows))
}

func median3(a, b, c float64) float64 {
	v := []float64{a, b, c}
	sort.Float64s(v)
	return v[1]
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
