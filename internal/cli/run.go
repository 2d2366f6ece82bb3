package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/config"
	"github.com/forPelevin/hoopcut/internal/pipeline"
	"github.com/forPelevin/hoopcut/internal/types"
	"github.com/forPelevin/hoopcut/internal/usecase"
)

const runTimeout = 3 * time.Hour

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		gameInfo     string
		dataDir      string
		categories   []string
		force        bool
		keepSegments bool
		burnCaptions bool
		publish      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline for the game described in a game info file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log, err := ctx.logger()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("data-dir") {
				cfg.Paths.DataDir = dataDir
			}
			if flags.Changed("category") {
				cfg.Highlights.Categories = categories
			}
			if flags.Changed("keep-segments") {
				cfg.Highlights.KeepSegments = keepSegments
			}
			if flags.Changed("burn-captions") {
				cfg.Highlights.BurnCaptions = burnCaptions
			}
			if flags.Changed("publish") {
				cfg.Publish.Enabled = publish
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			infoPath := cfg.Paths.GameInfo
			if flags.Changed("game-info") {
				infoPath = gameInfo
			}
			info, err := loadGameInfo(infoPath)
			if err != nil {
				return err
			}

			pcfg := pipeline.FromConfig(cfg, info)
			pcfg.Force = force
			pcfg.Logger = log
			if err := pcfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			runCtx, cancel := context.WithTimeout(runCtx, runTimeout)
			defer cancel()

			res, err := pipeline.Run(runCtx, pcfg)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&gameInfo, "game-info", "g", "", "Game info file (json or yaml)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data root holding metadata and processed output")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Highlight categories to build (default all)")
	cmd.Flags().BoolVar(&force, "force", false, "Rebuild every stage even when its artifacts exist")
	cmd.Flags().BoolVar(&keepSegments, "keep-segments", false, "Keep per-play segments after building reels")
	cmd.Flags().BoolVar(&burnCaptions, "burn-captions", false, "Re-encode clips with burned-in captions")
	cmd.Flags().BoolVar(&publish, "publish", false, "Upload clips and manifest to the configured bucket")
	return cmd
}

// loadGameInfo reads the game info file and resolves a relative video path
// against the working directory.
func loadGameInfo(path string) (artifacts.GameInfo, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return artifacts.GameInfo{}, err
	}
	info, err := artifacts.LoadGameInfo(expanded)
	if err != nil {
		return artifacts.GameInfo{}, err
	}
	abs, err := filepath.Abs(info.VideoPath)
	if err != nil {
		return artifacts.GameInfo{}, err
	}
	info.VideoPath = abs
	return info, nil
}

func printResult(w io.Writer, res usecase.Result) {
	m := res.Manifest
	rows := make([][]string, 0, len(m.Stints))
	for _, s := range m.Stints {
		rows = append(rows, []string{s.ID, s.Half, s.StartClock, s.EndClock, fmtSec(s.StartSec), fmtSec(s.EndSec)})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Stint", "Half", "Start", "End", "From", "To"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))

	rows = rows[:0]
	for _, h := range m.Highlights {
		rows = append(rows, []string{h.Category, strconv.Itoa(h.Count), h.File})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Category", "Clips", "File"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
	if res.Unresolved > 0 {
		fmt.Fprintf(w, "%d plays could not be located in the clock map\n", res.Unresolved)
	}
	if totals := formatTotals(m); totals != "" {
		fmt.Fprintln(w, totals)
	}
}

func formatTotals(m types.Manifest) string {
	keys := []string{"MIN", "PTS", "REB", "AST", "STL", "BLK", "TO"}
	var out string
	for _, k := range keys {
		v, ok := m.Totals[k]
		if !ok {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += k + " " + v
	}
	return out
}

func fmtSec(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}
