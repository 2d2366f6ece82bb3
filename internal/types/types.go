package types

import (
	"fmt"
	"strconv"
	"strings"
)

type PeriodKind int

const (
	KindFirstHalf PeriodKind = iota + 1
	KindSecondHalf
	KindOvertime
)

// Period is a half or an overtime session. The zero value is not a valid period.
type Period struct {
	Kind PeriodKind
	// OT is the overtime number (1-based); zero for halves.
	OT int
}

var (
	FirstHalf  = Period{Kind: KindFirstHalf}
	SecondHalf = Period{Kind: KindSecondHalf}
)

func Overtime(n int) Period {
	if n < 1 {
		n = 1
	}
	return Period{Kind: KindOvertime, OT: n}
}

// PeriodFromIndex maps the play-order index (1 = first half, 2 = second half,
// 3 = first overtime, ...) to a Period. ok is false for indexes below 1.
func PeriodFromIndex(i int) (Period, bool) {
	switch {
	case i == 1:
		return FirstHalf, true
	case i == 2:
		return SecondHalf, true
	case i > 2:
		return Overtime(i - 2), true
	}
	return Period{}, false
}

// Index is the play-order position of p, 0 for the zero value.
func (p Period) Index() int {
	switch p.Kind {
	case KindFirstHalf:
		return 1
	case KindSecondHalf:
		return 2
	case KindOvertime:
		return 2 + p.OT
	}
	return 0
}

func (p Period) Valid() bool { return p.Index() > 0 }

func (p Period) IsOvertime() bool { return p.Kind == KindOvertime }

// Next returns the period that follows p in play order.
func (p Period) Next() Period {
	n, _ := PeriodFromIndex(p.Index() + 1)
	return n
}

func (p Period) Before(o Period) bool { return p.Index() < o.Index() }

func (p Period) String() string {
	switch p.Kind {
	case KindFirstHalf:
		return "1st Half"
	case KindSecondHalf:
		return "2nd Half"
	case KindOvertime:
		return fmt.Sprintf("Overtime %d", p.OT)
	}
	return ""
}

// ParsePeriod reads the label written in clock and interval tables.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1st Half":
		return FirstHalf, nil
	case "2nd Half":
		return SecondHalf, nil
	}
	if rest, ok := strings.CutPrefix(s, "Overtime "); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err == nil && n >= 1 {
			return Overtime(n), nil
		}
	}
	return Period{}, fmt.Errorf("unknown period label %q", s)
}

func (p Period) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid period")
	}
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	v, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ClockSample is one OCR reading of the on-screen game clock.
type ClockSample struct {
	VideoTime float64 `json:"video_time_sec"`
	ClockText string  `json:"clock_text"`
}

type LabeledClockSample struct {
	ClockSample
	Period Period `json:"half"`
}

type Action string

const (
	ActionIn  Action = "IN"
	ActionOut Action = "OUT"
)

type SubstitutionEvent struct {
	Period Period `json:"half"`
	Action Action `json:"action"`
	Clock  string `json:"clock"`
}

// OnCourtInterval is one stint. Clocks count down, so StartClock reads higher
// than EndClock.
type OnCourtInterval struct {
	Period     Period `json:"half"`
	StartClock string `json:"start_clock"`
	EndClock   string `json:"end_clock"`
}

type PlayEvent struct {
	Text         string   `json:"text"`
	Period       Period   `json:"period"`
	Clock        string   `json:"clock"`
	Participants []string `json:"participants,omitempty"`
}

type Category string

type HighlightEvent struct {
	Category  Category `json:"category"`
	Period    Period   `json:"period"`
	Clock     string   `json:"clock"`
	VideoTime float64  `json:"video_time"`
	Delta     float64  `json:"delta"`
	Text      string   `json:"text"`
}

// Game is the parsed play-by-play feed.
type Game struct {
	ID    string      `json:"id"`
	Teams []string    `json:"teams,omitempty"`
	Plays []PlayEvent `json:"plays"`

	// Totals holds box score lines keyed by athlete id, then stat name.
	Totals map[string]map[string]string `json:"totals,omitempty"`
}

// LastPeriod is the latest period any play was logged in.
func (g Game) LastPeriod() Period {
	last := SecondHalf
	for _, p := range g.Plays {
		if last.Before(p.Period) {
			last = p.Period
		}
	}
	return last
}

type Manifest struct {
	RunID      string              `json:"run_id"`
	Player     string              `json:"player"`
	Game       string              `json:"game"`
	Input      string              `json:"input"`
	Teams      []string            `json:"teams,omitempty"`
	Totals     map[string]string   `json:"totals,omitempty"`
	Stints     []ManifestStint     `json:"stints"`
	Highlights []ManifestHighlight `json:"highlights"`
}

type ManifestStint struct {
	ID         string  `json:"id"`
	Half       string  `json:"half"`
	StartClock string  `json:"start_clock"`
	EndClock   string  `json:"end_clock"`
	StartSec   float64 `json:"start_sec"`
	EndSec     float64 `json:"end_sec"`
	File       string  `json:"file"`
	URL        string  `json:"url,omitempty"`
}

type ManifestHighlight struct {
	Category string         `json:"category"`
	Count    int            `json:"count"`
	File     string         `json:"file"`
	URL      string         `json:"url,omitempty"`
	Clips    []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	Half     string  `json:"half"`
	Clock    string  `json:"clock"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}
