package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/highlights"
	"github.com/forPelevin/hoopcut/internal/domain/timing"
	"github.com/forPelevin/hoopcut/internal/types"
)

func newPlaysCommand(ctx *commandContext) *cobra.Command {
	var (
		player    string
		clockPath string
	)

	cmd := &cobra.Command{
		Use:   "plays <pbp.json>",
		Short: "List a player's tagged plays, optionally located in the video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if strings.TrimSpace(player) == "" {
				return fmt.Errorf("--player is required")
			}
			game, err := loadFeed(args[0])
			if err != nil {
				return err
			}

			var res *timing.Resolver
			if clockPath != "" {
				table, err := artifacts.LoadCleanClockMap(clockPath)
				if err != nil {
					return err
				}
				res = timing.NewResolver(table)
			}

			headers := []string{"Half", "Clock", "Tags", "Play"}
			aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}
			if res != nil {
				headers = append(headers, "Video")
				aligns = append(aligns, alignRight)
			}

			var rows [][]string
			tagged := 0
			for _, p := range game.Plays {
				cats := highlights.Classify(p, player)
				if len(cats) == 0 {
					continue
				}
				tagged++
				row := []string{p.Period.String(), p.Clock, joinCategories(cats), p.Text}
				if res != nil {
					row = append(row, locate(res, p))
				}
				rows = append(rows, row)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(headers, rows, aligns))
			fmt.Fprintf(w, "%d of %d plays tagged\n", tagged, len(game.Plays))
			return nil
		},
	}

	cmd.Flags().StringVarP(&player, "player", "p", "", "Player display name")
	cmd.Flags().StringVar(&clockPath, "clock", "", "Cleaned clock map used to locate plays in the video")
	return cmd
}

func locate(res *timing.Resolver, p types.PlayEvent) string {
	m, err := res.Resolve(p.Period, p.Clock)
	if err != nil {
		return "-"
	}
	return fmtSec(m.Corrected())
}

func joinCategories(cats []types.Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
