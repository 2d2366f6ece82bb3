package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/types"
)

func newClockCommand(ctx *commandContext) *cobra.Command {
	clockCmd := &cobra.Command{
		Use:   "clock",
		Short: "Clock map utilities",
	}
	clockCmd.AddCommand(newClockCleanCommand(ctx))
	return clockCmd
}

func newClockCleanCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath   string
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "clean <clock_map.csv>",
		Short: "Drop OCR misreads from a raw clock map and label periods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			in := args[0]
			raw, err := artifacts.LoadClockMap(in)
			if err != nil {
				return err
			}
			if normalize {
				raw = normalizeSamples(raw)
			}

			table := clock.NewCleaner(cfg.Clock).CleanAndLabel(raw)
			out := outPath
			if out == "" {
				out = filepath.Join(filepath.Dir(in), "clock_map_clean.csv")
			}
			if err := artifacts.SaveCleanClockMap(out, table); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(
				[]string{"Period", "Rows", "First", "Last"},
				periodRows(table),
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(w, "kept %d of %d rows, wrote %s\n", len(table), len(raw), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default clock_map_clean.csv next to the input)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize raw OCR text before cleaning")
	return cmd
}

func normalizeSamples(rows []types.ClockSample) []types.ClockSample {
	out := make([]types.ClockSample, 0, len(rows))
	for _, r := range rows {
		text, ok := clock.NormalizeOCR(r.ClockText)
		if !ok {
			continue
		}
		r.ClockText = text
		out = append(out, r)
	}
	return out
}

// periodRows summarises a labeled table: row count and first/last video time per period.
func periodRows(table []types.LabeledClockSample) [][]string {
	var rows [][]string
	var (
		cur   types.Period
		count int
		first float64
		last  float64
	)
	flush := func() {
		if count == 0 {
			return
		}
		rows = append(rows, []string{cur.String(), strconv.Itoa(count), fmtSec(first), fmtSec(last)})
	}
	for _, s := range table {
		if s.Period != cur {
			flush()
			cur, count, first = s.Period, 0, s.VideoTime
		}
		count++
		last = s.VideoTime
	}
	flush()
	return rows
}
