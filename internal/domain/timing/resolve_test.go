package timing

import (
	"errors"
	"testing"

	"github.com/forPelevin/hoopcut/internal/types"
)

func labeled(period types.Period, rows ...any) []types.LabeledClockSample {
	var out []types.LabeledClockSample
	for i := 0; i+1 < len(rows); i += 2 {
		out = append(out, types.LabeledClockSample{
			ClockSample: types.ClockSample{VideoTime: rows[i].(float64), ClockText: rows[i+1].(string)},
			Period:      period,
		})
	}
	return out
}

func TestResolve_Nearest(t *testing.T) {
	table := append(
		labeled(types.FirstHalf, 100.0, "12:40", 106.0, "12:36", 110.0, "12:30"),
		labeled(types.SecondHalf, 900.0, "12:34")...,
	)
	r := NewResolver(table)

	m, err := r.Resolve(types.FirstHalf, "12:34")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.VideoTime != 106 || m.Delta != 2 {
		t.Fatalf("unexpected match: %+v", m)
	}
	if m.Corrected() != 108 {
		t.Fatalf("corrected = %v, want 108", m.Corrected())
	}
}

func TestResolve_NegativeDelta(t *testing.T) {
	r := NewResolver(labeled(types.FirstHalf, 50.0, "10:02", 60.0, "9:50"))
	m, err := r.Resolve(types.FirstHalf, "9:52")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.VideoTime != 60 || m.Delta != -2 {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestResolve_TieTakesEarliest(t *testing.T) {
	r := NewResolver(labeled(types.FirstHalf, 30.0, "5:00", 10.0, "5:00", 20.0, "5:00"))
	m, err := r.Resolve(types.FirstHalf, "5:00")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.VideoTime != 10 {
		t.Fatalf("expected earliest video time 10, got %v", m.VideoTime)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(append(
		labeled(types.FirstHalf, 1.0, "19:59"),
		labeled(types.SecondHalf, 2.0, "garbage")...,
	))
	tests := []struct {
		name   string
		period types.Period
		clock  string
	}{
		{"missing period", types.Overtime(1), "4:00"},
		{"only unparseable rows", types.SecondHalf, "4:00"},
		{"unparseable target", types.FirstHalf, "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.period, tt.clock)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestRange_Ordered(t *testing.T) {
	r := NewResolver(labeled(types.SecondHalf, 1300.0, "20:00", 1500.0, "16:40", 1800.0, "12:00"))
	start, end, err := r.Range(types.SecondHalf, "20:00", "12:00")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if start != 1300 || end != 1800 {
		t.Fatalf("unexpected range %v..%v", start, end)
	}
	start, end, err = r.Range(types.SecondHalf, "12:00", "20:00")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if start > end {
		t.Fatalf("expected swapped range, got %v..%v", start, end)
	}
}

func TestPeriods(t *testing.T) {
	r := NewResolver(append(
		labeled(types.FirstHalf, 1.0, "19:59", 2.0, "19:58"),
		labeled(types.Overtime(1), 3.0, "5:00")...,
	))
	got := r.Periods()
	if got[types.FirstHalf] != 2 || got[types.Overtime(1)] != 1 || len(got) != 2 {
		t.Fatalf("unexpected periods: %v", got)
	}
}
