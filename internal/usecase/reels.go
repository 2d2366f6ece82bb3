package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/highlights"
	"github.com/forPelevin/hoopcut/internal/domain/subtitles"
	"github.com/forPelevin/hoopcut/internal/logging"
	"github.com/forPelevin/hoopcut/internal/types"
)

// cutHighlights builds one reel per category: every event is cut to
// <category>_NNNN.mp4 in a scratch directory, the segments are joined into
// stats/<category>.mp4, and the scratch directory is removed unless
// KeepSegments is set.
func (u Usecase) cutHighlights(ctx context.Context, r *run) error {
	log := r.stage("highlights")
	player := r.in.Game.PlayerName

	events, unresolved := highlights.BuildEvents(r.game.Plays, player, r.res)
	r.result.Unresolved = len(unresolved)
	for _, p := range unresolved {
		log.Debug("play not located", logging.FieldPeriod, p.Period.String(), "clock", p.Clock, "text", p.Text)
	}
	groups := highlights.GroupByCategory(events, r.in.Categories)
	if len(groups) == 0 {
		log.Warn("no highlight events found", "player", player)
		return nil
	}
	log.Info("highlight events found", "events", len(events), "categories", len(groups), "unresolved", len(unresolved))

	reuse := r.cached("highlights", artifacts.HasMP4(r.ws.StatsDir()))
	if reuse {
		log.Info("stats already generated", "dir", r.ws.StatsDir())
	}
	if !reuse && !r.in.KeepSegments {
		defer os.RemoveAll(r.ws.SegmentsRoot())
	}

	for _, g := range groups {
		final := filepath.Join(r.ws.StatsDir(), string(g.Category)+".mp4")
		clips := r.window(g.Events)
		if reuse {
			if !artifacts.Exists(final) {
				continue
			}
		} else if err := u.buildReel(ctx, r, g, clips, final); err != nil {
			return err
		}
		r.result.Manifest.Highlights = append(r.result.Manifest.Highlights, types.ManifestHighlight{
			Category: string(g.Category),
			Count:    len(g.Events),
			File:     relPath(r.ws, final),
			Clips:    clips,
		})
		log.Info("reel ready", logging.FieldCategory, string(g.Category), "clips", len(g.Events), "file", final)
	}
	return nil
}

func (r *run) window(events []types.HighlightEvent) []types.ManifestClip {
	clips := make([]types.ManifestClip, 0, len(events))
	for _, ev := range events {
		start, end := r.in.Window.Range(ev)
		clips = append(clips, types.ManifestClip{
			Half:     ev.Period.String(),
			Clock:    ev.Clock,
			StartSec: start,
			EndSec:   end,
			Text:     ev.Text,
		})
	}
	return clips
}

func (u Usecase) buildReel(ctx context.Context, r *run, g highlights.Group, clips []types.ManifestClip, final string) error {
	dir := r.ws.SegmentsDir(string(g.Category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	segments := make([]string, 0, len(clips))
	for i, c := range clips {
		seg := filepath.Join(dir, fmt.Sprintf("%s_%04d.mp4", g.Category, i))
		from, to := seconds(c.StartSec), seconds(c.EndSec)
		if r.in.BurnCaptions {
			assPath := filepath.Join(dir, fmt.Sprintf("%s_%04d.ass", g.Category, i))
			ass := subtitles.RenderCaptionASS(subtitles.HighlightCaption(g.Events[i]), to-from)
			if err := artifacts.WriteFileAtomic(assPath, []byte(ass), 0o644); err != nil {
				return err
			}
			if err := u.d.Video.RenderClip(ctx, r.in.Game.VideoPath, from, to, seg, assPath); err != nil {
				return err
			}
		} else if err := u.d.Video.Cut(ctx, r.in.Game.VideoPath, from, to, seg); err != nil {
			return err
		}
		segments = append(segments, seg)
	}

	if err := u.d.Video.Concat(ctx, segments, filepath.Join(dir, "segments.txt"), final); err != nil {
		return err
	}
	if !r.in.KeepSegments {
		return os.RemoveAll(dir)
	}
	return nil
}
