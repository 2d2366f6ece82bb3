package clockocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/types"
)

// Adapter runs an external scoreboard OCR command that writes a
// video_time_sec,clock_text table.
type Adapter struct {
	bin       string
	args      []string
	normalize bool
}

// New returns an adapter invoking "bin args... --video <in> --out <csv>". With
// normalize set, each reading is passed through clock.NormalizeOCR and rows
// that do not normalise are dropped.
func New(binPath string, args []string, normalize bool) *Adapter {
	return &Adapter{bin: binPath, args: append([]string(nil), args...), normalize: normalize}
}

func (a *Adapter) ReadClock(ctx context.Context, inMP4, outCSV string) ([]types.ClockSample, error) {
	if err := os.MkdirAll(filepath.Dir(outCSV), 0o755); err != nil {
		return nil, err
	}
	args := append(append([]string{}, a.args...), "--video", inMP4, "--out", outCSV)
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("clock ocr failed: %w\n%s", err, string(b))
	}

	rows, err := artifacts.LoadClockMap(outCSV)
	if err != nil {
		return nil, err
	}
	if !a.normalize {
		return rows, nil
	}

	out, changed := normalizeRows(rows)
	if changed {
		if err := artifacts.SaveClockMap(outCSV, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalizeRows(rows []types.ClockSample) ([]types.ClockSample, bool) {
	out := make([]types.ClockSample, 0, len(rows))
	changed := false
	for _, r := range rows {
		text, ok := clock.NormalizeOCR(r.ClockText)
		if !ok {
			changed = true
			continue
		}
		if text != r.ClockText {
			changed = true
		}
		out = append(out, types.ClockSample{VideoTime: r.VideoTime, ClockText: text})
	}
	return out, changed
}
