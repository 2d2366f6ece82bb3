//go:build integration

package itest

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/config"
	"github.com/forPelevin/hoopcut/internal/pipeline"
	"github.com/forPelevin/hoopcut/internal/types"
)

// fakeOCR prints a clock table for a 60s video: the last 25 seconds of the
// first half from t=0, then the opening 25 seconds of the second half from t=30.
const fakeOCR = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --out) out="$2"; shift ;;
  esac
  shift
done
{
  echo "video_time_sec,clock_text"
  i=0
  while [ $i -le 25 ]; do
    printf "%d.0,0:%02d\n" $i $((25 - i))
    i=$((i + 1))
  done
  i=0
  while [ $i -le 25 ]; do
    s=$((1200 - i))
    printf "%d.0,%d:%02d\n" $((30 + i)) $((s / 60)) $((s % 60))
    i=$((i + 1))
  done
} > "$out"
`

const feedJSON = `{
  "header": {"id": "401", "competitions": [{"competitors": [{"team": {"displayName": "Home"}}, {"team": {"displayName": "Away"}}]}]},
  "plays": [
    {"text": "Jane Doe subbing in", "clock": {"displayValue": "0:20"}, "period": {"number": 1}},
    {"text": "Jane Doe made Jumper.", "clock": {"displayValue": "0:05"}, "period": {"number": 1}},
    {"text": "Jane Doe subbing out", "clock": {"displayValue": "0:02"}, "period": {"number": 1}},
    {"text": "Jane Doe Steal.", "clock": {"displayValue": "19:50"}, "period": {"number": 2}}
  ]
}`

func TestE2E(t *testing.T) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Fatalf("%s is required for itest", bin)
		}
	}

	tmp := t.TempDir()
	in := filepath.Join(tmp, "game.mp4")
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "testsrc=size=320x240:rate=10:duration=60",
		"-c:v", "libx264",
		"-g", "10",
		"-pix_fmt", "yuv420p",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}

	ocr := filepath.Join(tmp, "clockocr.sh")
	if err := os.WriteFile(ocr, []byte(fakeOCR), 0o755); err != nil {
		t.Fatalf("write ocr script: %v", err)
	}

	dataDir := filepath.Join(tmp, "data")
	info := artifacts.GameInfo{
		PlayerName: "Jane Doe",
		GameName:   "itest",
		EventID:    "401",
		VideoPath:  in,
	}
	ws := artifacts.NewWorkspace(dataDir, info.PlayerName, info.GameName)
	if err := artifacts.WriteFileAtomic(ws.PBPPath(), []byte(feedJSON), 0o644); err != nil {
		t.Fatalf("seed feed: %v", err)
	}

	c := config.Default()
	c.Paths.DataDir = dataDir
	c.OCR.Bin = ocr
	cfg := pipeline.FromConfig(&c, info)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	b, err := os.ReadFile(ws.ManifestPath())
	if err != nil {
		t.Fatalf("missing manifest: %v", err)
	}
	var m types.Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(m.Stints) != 2 || len(res.Manifest.Stints) != 2 {
		t.Fatalf("expected 2 stints, got %+v", m.Stints)
	}

	checkDuration(t, filepath.Join(ws.IntervalsDir(), "stint_1.mp4"), 18)
	checkDuration(t, filepath.Join(ws.IntervalsDir(), "stint_2.mp4"), 25)
	checkDuration(t, filepath.Join(ws.StatsDir(), "steals.mp4"), 10)
	checkDuration(t, filepath.Join(ws.StatsDir(), "made_shots.mp4"), 10)

	if codec, err := probeVideoCodec(filepath.Join(ws.StatsDir(), "steals.mp4")); err != nil || codec != "h264" {
		t.Fatalf("expected an h264 reel, got %q (%v)", codec, err)
	}
	if _, err := os.Stat(ws.SegmentsRoot()); !os.IsNotExist(err) {
		t.Fatalf("expected segments removed, stat err=%v", err)
	}
}

func checkDuration(t *testing.T, path string, want float64) {
	t.Helper()
	got, err := probeDurationSeconds(path)
	if err != nil {
		t.Fatalf("probe %s: %v", path, err)
	}
	// stream copy snaps to keyframes, one per second here
	if math.Abs(got-want) > 1.5 {
		t.Fatalf("%s: duration %.2fs, want about %.0fs", filepath.Base(path), got, want)
	}
}
