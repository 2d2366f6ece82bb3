package subs

import (
	"reflect"
	"testing"

	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/types"
)

func ev(p types.Period, a types.Action, c string) types.SubstitutionEvent {
	return types.SubstitutionEvent{Period: p, Action: a, Clock: c}
}

func iv(p types.Period, start, end string) types.OnCourtInterval {
	return types.OnCourtInterval{Period: p, StartClock: start, EndClock: end}
}

const (
	enter = types.ActionIn
	leave = types.ActionOut
)

var (
	h1 = types.FirstHalf
	h2 = types.SecondHalf
)

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name   string
		events []types.SubstitutionEvent
		played types.Period
		want   []types.OnCourtInterval
	}{
		{
			name:   "no events means full game",
			played: types.Overtime(1),
			want:   []types.OnCourtInterval{iv(h1, "20:00", "0:00"), iv(h2, "20:00", "0:00")},
		},
		{
			name:   "single stint fills missing half",
			events: []types.SubstitutionEvent{ev(h1, enter, "20:00"), ev(h1, leave, "12:34")},
			want:   []types.OnCourtInterval{iv(h1, "20:00", "12:34"), iv(h2, "20:00", "0:00")},
		},
		{
			name: "unordered log is sorted first",
			events: []types.SubstitutionEvent{
				ev(h2, leave, "3:10"), ev(h1, leave, "8:00"), ev(h2, enter, "9:45"), ev(h1, enter, "14:02"),
			},
			want: []types.OnCourtInterval{iv(h1, "14:02", "8:00"), iv(h2, "9:45", "3:10")},
		},
		{
			name: "duplicate transitions ignored",
			events: []types.SubstitutionEvent{
				ev(h1, enter, "18:00"), ev(h1, enter, "17:00"), ev(h1, leave, "15:00"), ev(h1, leave, "14:00"),
				ev(h2, leave, "19:00"), ev(h2, enter, "10:00"), ev(h2, leave, "6:30"),
			},
			want: []types.OnCourtInterval{iv(h1, "18:00", "15:00"), iv(h2, "10:00", "6:30")},
		},
		{
			name:   "dangling in carries over halftime",
			events: []types.SubstitutionEvent{ev(h1, enter, "5:00"), ev(h2, leave, "15:00"), ev(h2, enter, "8:00")},
			want: []types.OnCourtInterval{
				iv(h1, "5:00", "0:00"),
				iv(h2, "20:00", "15:00"),
				iv(h2, "8:00", "0:00"),
			},
		},
		{
			name:   "carry over with no second half events",
			events: []types.SubstitutionEvent{ev(h1, leave, "10:00"), ev(h1, enter, "4:00")},
			want:   []types.OnCourtInterval{iv(h1, "4:00", "0:00"), iv(h2, "20:00", "0:00")},
		},
		{
			name:   "re-announced in after carry over extends the stint",
			events: []types.SubstitutionEvent{ev(h1, enter, "2:00"), ev(h2, enter, "20:00"), ev(h2, leave, "11:11")},
			want:   []types.OnCourtInterval{iv(h1, "2:00", "0:00"), iv(h2, "20:00", "11:11")},
		},
		{
			name:   "carry into played overtime",
			events: []types.SubstitutionEvent{ev(h2, enter, "1:00")},
			played: types.Overtime(1),
			want: []types.OnCourtInterval{
				iv(h1, "20:00", "0:00"),
				iv(h2, "1:00", "0:00"),
				iv(types.Overtime(1), "5:00", "0:00"),
			},
		},
		{
			name:   "no overtime without evidence",
			events: []types.SubstitutionEvent{ev(h2, enter, "1:00")},
			played: h2,
			want:   []types.OnCourtInterval{iv(h1, "20:00", "0:00"), iv(h2, "1:00", "0:00")},
		},
		{
			name: "overtime evidenced by the log",
			events: []types.SubstitutionEvent{
				ev(h1, enter, "15:00"), ev(h1, leave, "9:00"),
				ev(types.Overtime(1), enter, "4:00"), ev(types.Overtime(1), leave, "2:00"),
			},
			want: []types.OnCourtInterval{
				iv(h1, "15:00", "9:00"),
				iv(h2, "20:00", "0:00"),
				iv(types.Overtime(1), "4:00", "2:00"),
			},
		},
		{
			name:   "unparseable clocks dropped",
			events: []types.SubstitutionEvent{ev(h1, enter, "??"), ev(h1, enter, "10:00"), ev(h1, leave, "7:30")},
			want:   []types.OnCourtInterval{iv(h1, "10:00", "7:30"), iv(h2, "20:00", "0:00")},
		},
	}

	r := NewReconstructor(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Reconstruct(tt.events, tt.played)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Reconstruct() =\n  %v\nwant\n  %v", got, tt.want)
			}
		})
	}
}

func TestReconstruct_InferStarters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InferStarters = true
	r := NewReconstructor(cfg)

	got := r.Reconstruct([]types.SubstitutionEvent{
		ev(h1, leave, "13:20"), ev(h1, enter, "9:00"), ev(h1, leave, "2:00"),
		ev(h2, leave, "16:00"),
	}, h2)
	want := []types.OnCourtInterval{
		iv(h1, "20:00", "13:20"),
		iv(h1, "9:00", "2:00"),
		iv(h2, "20:00", "16:00"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Reconstruct() = %v, want %v", got, want)
	}
}

func TestReconstruct_WellFormed(t *testing.T) {
	events := []types.SubstitutionEvent{
		ev(h1, enter, "19:30"), ev(h1, leave, "16:02"), ev(h1, leave, "15:00"), ev(h1, enter, "12:00"),
		ev(h1, enter, "11:00"), ev(h1, leave, "6:45"), ev(h1, enter, "6:45"), ev(h1, leave, "1:10"),
		ev(h1, enter, "0:30"), ev(h2, leave, "18:00"), ev(h2, enter, "17:30"), ev(h2, leave, "17:30"),
		ev(h2, enter, "3:00"),
	}
	got := NewReconstructor(DefaultConfig()).Reconstruct(events, h2)
	for i, v := range got {
		s, _ := clock.ParseSeconds(v.StartClock)
		e, _ := clock.ParseSeconds(v.EndClock)
		if s < e {
			t.Fatalf("interval %d starts after it ends: %+v", i, v)
		}
		if i > 0 && got[i-1].Period == v.Period {
			prevEnd, _ := clock.ParseSeconds(got[i-1].EndClock)
			if prevEnd < s {
				t.Fatalf("intervals %d and %d overlap: %+v %+v", i-1, i, got[i-1], v)
			}
		}
	}
}

func TestExtractEvents(t *testing.T) {
	plays := []types.PlayEvent{
		{Text: "Jane Doe subbing in for Tigers", Period: h1, Clock: "15:02"},
		{Text: "JANE DOE subbing out for Tigers", Period: h1, Clock: "9:40"},
		{Text: "Ann Lee enters the game for Jane Doe.", Period: h2, Clock: "12:00"},
		{Text: "Jane Doe enters the game for Ann Lee", Period: h2, Clock: "6:00"},
		{Text: "Jane Doe made Jumper.", Period: h2, Clock: "5:00"},
		{Text: "Jane Doer subbing in", Period: h2, Clock: "4:00"},
		{Text: "Jane Doe subbing in", Clock: "3:00"},
	}
	got := ExtractEvents(plays, "jane doe")
	want := []types.SubstitutionEvent{
		ev(h1, enter, "15:02"),
		ev(h1, leave, "9:40"),
		ev(h2, leave, "12:00"),
		ev(h2, enter, "6:00"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractEvents() = %v, want %v", got, want)
	}
}

func TestExtractEvents_EmptyName(t *testing.T) {
	plays := []types.PlayEvent{{Text: " subbing in", Period: h1, Clock: "1:00"}}
	if got := ExtractEvents(plays, "  "); got != nil {
		t.Fatalf("expected no events, got %v", got)
	}
}
