package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/subtitles"
	"github.com/forPelevin/hoopcut/internal/logging"
	"github.com/forPelevin/hoopcut/internal/types"
)

// cutStints writes one stint_N.mp4 per on-court interval, numbered by the
// interval's position in the table. Intervals that do not resolve are logged
// and leave a gap in the numbering.
func (u Usecase) cutStints(ctx context.Context, r *run) error {
	log := r.stage("stints")
	dir := r.ws.IntervalsDir()
	reuse := r.cached("stints", artifacts.HasMP4(dir))
	if reuse {
		log.Info("intervals already cut", "dir", dir)
	}

	for i, iv := range r.ivs {
		id := fmt.Sprintf("stint_%d", i+1)
		start, end, err := r.res.Range(iv.Period, iv.StartClock, iv.EndClock)
		if err != nil {
			log.Warn("skipping stint, no clock match",
				logging.FieldPeriod, iv.Period.String(), "start_clock", iv.StartClock, "end_clock", iv.EndClock)
			continue
		}
		out := filepath.Join(dir, id+".mp4")
		if reuse {
			if !artifacts.Exists(out) {
				continue
			}
		} else if err := u.renderStint(ctx, r, iv, start, end, out); err != nil {
			return err
		}

		r.result.Manifest.Stints = append(r.result.Manifest.Stints, types.ManifestStint{
			ID:         id,
			Half:       iv.Period.String(),
			StartClock: iv.StartClock,
			EndClock:   iv.EndClock,
			StartSec:   start,
			EndSec:     end,
			File:       relPath(r.ws, out),
		})
		log.Info("stint ready", "id", id, logging.FieldPeriod, iv.Period.String(),
			"start_sec", start, "end_sec", end)
	}
	return nil
}

func (u Usecase) renderStint(ctx context.Context, r *run, iv types.OnCourtInterval, start, end float64, out string) error {
	from, to := seconds(start), seconds(end)
	if !r.in.BurnCaptions {
		return u.d.Video.Cut(ctx, r.in.Game.VideoPath, from, to, out)
	}
	assPath := out[:len(out)-len(filepath.Ext(out))] + ".ass"
	ass := subtitles.RenderCaptionASS(subtitles.StintCaption(iv), to-from)
	if err := artifacts.WriteFileAtomic(assPath, []byte(ass), 0o644); err != nil {
		return err
	}
	return u.d.Video.RenderClip(ctx, r.in.Game.VideoPath, from, to, out, assPath)
}
