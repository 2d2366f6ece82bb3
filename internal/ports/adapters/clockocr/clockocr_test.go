package clockocr

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/types"
)

// fakeOCR writes a script that copies a canned table to the --out argument.
func fakeOCR(t *testing.T, table string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(src, []byte(table), 0o644))
	script := filepath.Join(dir, "ocr.sh")
	body := "#!/bin/sh\n" +
		"while [ $# -gt 0 ]; do\n" +
		"  if [ \"$1\" = \"--out\" ]; then out=\"$2\"; fi\n" +
		"  shift\n" +
		"done\n" +
		"cp " + src + " \"$out\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func TestReadClock_Normalizes(t *testing.T) {
	bin := fakeOCR(t, "video_time_sec,clock_text\n1.0,12;34\n2.0,garbage\n3.0,0:31.5\n")
	out := filepath.Join(t.TempDir(), "metadata", "clock_map.csv")

	rows, err := New(bin, nil, true).ReadClock(context.Background(), "game.mp4", out)
	require.NoError(t, err)
	assert.Equal(t, []types.ClockSample{
		{VideoTime: 1, ClockText: "12:34"},
		{VideoTime: 3, ClockText: "31.5"},
	}, rows)

	saved, err := artifacts.LoadClockMap(out)
	require.NoError(t, err)
	assert.Equal(t, rows, saved)
}

func TestReadClock_Raw(t *testing.T) {
	bin := fakeOCR(t, "video_time_sec,clock_text\n1.0,12;34\n")
	out := filepath.Join(t.TempDir(), "clock_map.csv")

	rows, err := New(bin, []string{"--fps", "1"}, false).ReadClock(context.Background(), "game.mp4", out)
	require.NoError(t, err)
	assert.Equal(t, []types.ClockSample{{VideoTime: 1, ClockText: "12;34"}}, rows)
}

func TestReadClock_CommandFails(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing-bin"), nil, true).
		ReadClock(context.Background(), "game.mp4", filepath.Join(t.TempDir(), "c.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clock ocr failed")
}
