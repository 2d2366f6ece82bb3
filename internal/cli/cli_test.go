package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/hoopcut/internal/artifacts"
)

const feedJSON = `{
  "header": {"id": "401", "competitions": [{"competitors": [{"team": {"displayName": "Home"}}, {"team": {"displayName": "Away"}}]}]},
  "plays": [
    {"text": "Jane Doe subbing in", "clock": {"displayValue": "20:00"}, "period": {"number": 1}},
    {"text": "Jane Doe made Layup.", "clock": {"displayValue": "19:58"}, "period": {"number": 1}},
    {"text": "Jane Doe subbing out", "clock": {"displayValue": "10:00"}, "period": {"number": 1}},
    {"text": "Ann Lee made Jumper.", "clock": {"displayValue": "9:00"}, "period": {"number": 1}}
  ]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestClockClean(t *testing.T) {
	raw := writeFile(t, "clock_map.csv", strings.Join([]string{
		"video_time_sec,clock_text",
		"0.0,20:00",
		"1.0,19:59",
		"2.0,19:58",
		"3.0,19:30",
		"4.0,19:56",
		"5.0,19:55",
	}, "\n")+"\n")
	out := filepath.Join(t.TempDir(), "clean.csv")

	stdout, err := execute(t, "clock", "clean", raw, "-o", out)
	if err != nil {
		t.Fatalf("clock clean: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "kept 5 of 6 rows") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	table, err := artifacts.LoadCleanClockMap(out)
	if err != nil {
		t.Fatalf("load cleaned table: %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(table))
	}
	for _, r := range table {
		if r.ClockText == "19:30" {
			t.Fatalf("spike survived cleaning")
		}
	}
}

func TestSubs(t *testing.T) {
	pbp := writeFile(t, "pbp.json", feedJSON)
	csvPath := filepath.Join(t.TempDir(), "subs_intervals.csv")

	stdout, err := execute(t, "subs", pbp, "--player", "Jane Doe", "-o", csvPath)
	if err != nil {
		t.Fatalf("subs: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "2 substitutions, 2 stints") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	player, ivs, err := artifacts.LoadIntervals(csvPath)
	if err != nil {
		t.Fatalf("load intervals: %v", err)
	}
	if player != "Jane Doe" || ivs[0].StartClock != "20:00" || ivs[0].EndClock != "10:00" {
		t.Fatalf("unexpected intervals: %s %+v", player, ivs)
	}
}

func TestSubs_RequiresPlayer(t *testing.T) {
	pbp := writeFile(t, "pbp.json", feedJSON)
	if _, err := execute(t, "subs", pbp); err == nil || !strings.Contains(err.Error(), "--player is required") {
		t.Fatalf("expected missing player error, got %v", err)
	}
}

func TestPlays_WithClock(t *testing.T) {
	pbp := writeFile(t, "pbp.json", feedJSON)
	clean := writeFile(t, "clean.csv", strings.Join([]string{
		"video_time_sec,clock_text,half",
		"100.0,20:00,1st Half",
		"102.0,19:58,1st Half",
	}, "\n")+"\n")

	stdout, err := execute(t, "plays", pbp, "--player", "Jane Doe", "--clock", clean)
	if err != nil {
		t.Fatalf("plays: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "1 of 4 plays tagged") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "2pt_made") || !strings.Contains(stdout, "102.0") {
		t.Fatalf("expected tagged layup at 102.0:\n%s", stdout)
	}
	if strings.Contains(stdout, "Ann Lee") {
		t.Fatalf("other players' plays must not be listed:\n%s", stdout)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "hoopcut.toml")

	stdout, err := execute(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("unexpected output: %s", stdout)
	}
	if !artifacts.Exists(target) {
		t.Fatalf("sample config not written")
	}

	if _, err := execute(t, "config", "init", "--path", target); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing file error, got %v", err)
	}
	if _, err := execute(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestRun_MissingGameInfo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "game_info.json")
	_, err := execute(t, "run", "--game-info", missing)
	if err == nil || !strings.Contains(err.Error(), "missing game info") {
		t.Fatalf("expected missing game info error, got %v", err)
	}
}

func TestRun_BadLogFormat(t *testing.T) {
	_, err := execute(t, "--log-format", "xml", "run")
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected log format error, got %v", err)
	}
}
