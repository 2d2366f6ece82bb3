package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/subs"
	"github.com/forPelevin/hoopcut/internal/ports/adapters/espn"
	"github.com/forPelevin/hoopcut/internal/types"
)

func newSubsCommand(ctx *commandContext) *cobra.Command {
	var (
		player  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "subs <pbp.json>",
		Short: "Reconstruct a player's on-court stints from a play-by-play file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if strings.TrimSpace(player) == "" {
				return fmt.Errorf("--player is required")
			}
			game, err := loadFeed(args[0])
			if err != nil {
				return err
			}

			events := subs.ExtractEvents(game.Plays, player)
			ivs := subs.NewReconstructor(cfg.Subs).Reconstruct(events, game.LastPeriod())
			if outPath != "" {
				if err := artifacts.SaveIntervals(outPath, player, ivs); err != nil {
					return err
				}
			}

			rows := make([][]string, 0, len(ivs))
			for i, iv := range ivs {
				rows = append(rows, []string{fmt.Sprintf("stint_%d", i+1), iv.Period.String(), iv.StartClock, iv.EndClock})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(
				[]string{"Stint", "Half", "Start", "End"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(w, "%d substitutions, %d stints\n", len(events), len(ivs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&player, "player", "p", "", "Player display name")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Also write subs_intervals.csv to this path")
	return cmd
}

func loadFeed(path string) (types.Game, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Game{}, err
	}
	return espn.ParseFeed(b)
}
