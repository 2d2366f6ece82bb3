// Package artifacts reads and writes the on-disk files shared between
// pipeline stages: clock tables, stint tables, game info, and the workspace
// layout that holds them.
package artifacts

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/forPelevin/hoopcut/internal/types"
)

var (
	clockMapHeader   = []string{"video_time_sec", "clock_text"}
	cleanClockHeader = []string{"video_time_sec", "clock_text", "half"}
	intervalsHeader  = []string{"player", "half", "start_clock", "end_clock"}
)

// ReadClockMap reads a raw clock table. Rows that are short or carry a
// non-numeric video time are skipped.
func ReadClockMap(r io.Reader) ([]types.ClockSample, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]types.ClockSample, 0, len(records))
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		vt, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			continue
		}
		out = append(out, types.ClockSample{VideoTime: vt, ClockText: rec[1]})
	}
	return out, nil
}

func WriteClockMap(w io.Writer, rows []types.ClockSample) error {
	cw := newWriter(w)
	if err := cw.Write(clockMapHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{FormatFloat(row.VideoTime), row.ClockText}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCleanClockMap reads a labeled clock table. Rows with an unknown period
// label are skipped.
func ReadCleanClockMap(r io.Reader) ([]types.LabeledClockSample, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]types.LabeledClockSample, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		vt, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			continue
		}
		p, err := types.ParsePeriod(rec[2])
		if err != nil {
			continue
		}
		out = append(out, types.LabeledClockSample{
			ClockSample: types.ClockSample{VideoTime: vt, ClockText: rec[1]},
			Period:      p,
		})
	}
	return out, nil
}

func WriteCleanClockMap(w io.Writer, rows []types.LabeledClockSample) error {
	cw := newWriter(w)
	if err := cw.Write(cleanClockHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{FormatFloat(row.VideoTime), row.ClockText, row.Period.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadIntervals reads a stint table and returns the player named in it along
// with the stints.
func ReadIntervals(r io.Reader) (string, []types.OnCourtInterval, error) {
	records, err := readRecords(r)
	if err != nil {
		return "", nil, err
	}
	var player string
	out := make([]types.OnCourtInterval, 0, len(records))
	for _, rec := range records {
		if len(rec) < 4 {
			continue
		}
		p, err := types.ParsePeriod(rec[1])
		if err != nil {
			continue
		}
		if player == "" {
			player = rec[0]
		}
		out = append(out, types.OnCourtInterval{Period: p, StartClock: rec[2], EndClock: rec[3]})
	}
	return player, out, nil
}

func WriteIntervals(w io.Writer, player string, ivs []types.OnCourtInterval) error {
	cw := newWriter(w)
	if err := cw.Write(intervalsHeader); err != nil {
		return err
	}
	for _, iv := range ivs {
		if err := cw.Write([]string{player, iv.Period.String(), iv.StartClock, iv.EndClock}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatFloat renders v in its shortest round-trip form, keeping a ".0"
// suffix on integral values (12 -> "12.0", 12.25 -> "12.25").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// newWriter matches the CRLF line endings of the tables produced by the
// external OCR tooling.
func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}

// readRecords returns every record after the header line. Field counts may
// vary between rows.
func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	var out [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		out = append(out, rec)
	}
}

func LoadClockMap(path string) ([]types.ClockSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadClockMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func LoadCleanClockMap(path string) ([]types.LabeledClockSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadCleanClockMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func LoadIntervals(path string) (string, []types.OnCourtInterval, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	player, ivs, err := ReadIntervals(f)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return player, ivs, nil
}

func SaveClockMap(path string, rows []types.ClockSample) error {
	var buf bytes.Buffer
	if err := WriteClockMap(&buf, rows); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0o644)
}

func SaveCleanClockMap(path string, rows []types.LabeledClockSample) error {
	var buf bytes.Buffer
	if err := WriteCleanClockMap(&buf, rows); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0o644)
}

func SaveIntervals(path, player string, ivs []types.OnCourtInterval) error {
	var buf bytes.Buffer
	if err := WriteIntervals(&buf, player, ivs); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0o644)
}
