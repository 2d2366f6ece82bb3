package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/domain/highlights"
	"github.com/forPelevin/hoopcut/internal/domain/subs"
	"github.com/forPelevin/hoopcut/internal/domain/timing"
	"github.com/forPelevin/hoopcut/internal/logging"
	"github.com/forPelevin/hoopcut/internal/ports"
	"github.com/forPelevin/hoopcut/internal/textutil"
	"github.com/forPelevin/hoopcut/internal/types"
)

type Deps struct {
	Video ports.VideoTool
	Feed  ports.FeedSource
	Clock ports.ClockReader
	// Publisher is optional; nil keeps every artifact local.
	Publisher ports.Publisher
	Logger    *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	return Usecase{d: d}
}

type Input struct {
	Game      artifacts.GameInfo
	Workspace artifacts.Workspace
	RunID     string

	Clock      clock.Config
	Subs       subs.Config
	Window     highlights.Window
	Categories []types.Category

	KeepSegments bool
	BurnCaptions bool
	// Force reruns stages whose artifacts already exist.
	Force bool
}

type Result struct {
	Manifest types.Manifest
	// Skipped lists the stages whose cached artifacts were reused.
	Skipped    []string
	Unresolved int
}

// run carries the state shared by the stages of one Run call.
type run struct {
	in     Input
	ws     artifacts.Workspace
	log    *slog.Logger
	game   types.Game
	ivs    []types.OnCourtInterval
	table  []types.LabeledClockSample
	res    *timing.Resolver
	result Result
}

// Run executes every stage in order. A stage whose artifact is already on
// disk is skipped unless Input.Force is set.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	r := &run{
		in:  in,
		ws:  in.Workspace,
		log: u.d.Logger.With(logging.FieldRunID, in.RunID),
	}
	r.result.Manifest = types.Manifest{
		RunID:  in.RunID,
		Player: in.Game.PlayerName,
		Game:   in.Game.GameName,
		Input:  in.Game.VideoPath,
	}
	if err := r.ws.Ensure(); err != nil {
		return Result{}, err
	}

	stages := []struct {
		name string
		fn   func(context.Context, *run) error
	}{
		{"fetch", u.fetchFeed},
		{"subs", u.buildIntervals},
		{"ocr", u.readClock},
		{"clock", u.cleanClock},
		{"stints", u.cutStints},
		{"highlights", u.cutHighlights},
		{"publish", u.publish},
		{"manifest", u.writeManifest},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := st.fn(ctx, r); err != nil {
			return Result{}, fmt.Errorf("%s: %w", st.name, err)
		}
	}

	r.summarize()
	return r.result, nil
}

func (r *run) stage(name string) *slog.Logger { return r.log.With(logging.FieldStage, name) }

// cached reports whether a stage can reuse its artifact, recording the skip.
func (r *run) cached(name string, present bool) bool {
	if !present || r.in.Force {
		return false
	}
	r.result.Skipped = append(r.result.Skipped, name)
	return true
}

func (u Usecase) fetchFeed(ctx context.Context, r *run) error {
	log := r.stage("fetch")
	path := r.ws.PBPPath()
	event := r.in.Game.EventID.String()

	if artifacts.Exists(path) && !r.in.Force {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		g, err := u.d.Feed.Parse(raw)
		if err != nil {
			return err
		}
		if g.ID == "" || g.ID == event {
			r.cached("fetch", true)
			log.Info("play-by-play cache found", "path", path)
			return r.loadGame(log, g)
		}
		log.Info("play-by-play cache belongs to another event, refetching", "cached_event", g.ID)
	}

	raw, err := u.d.Feed.Fetch(ctx, event)
	if err != nil {
		return err
	}
	if err := artifacts.WriteFileAtomic(path, raw, 0o644); err != nil {
		return err
	}
	log.Info("play-by-play saved", "path", path, "bytes", len(raw))
	g, err := u.d.Feed.Parse(raw)
	if err != nil {
		return err
	}
	return r.loadGame(log, g)
}

func (r *run) loadGame(log *slog.Logger, g types.Game) error {
	r.game = g
	r.result.Manifest.Teams = g.Teams
	if id := r.in.Game.PlayerID.String(); id != "" {
		r.result.Manifest.Totals = g.Totals[id]
		if r.result.Manifest.Totals == nil {
			log.Warn("player totals not found in box score", "player_id", id)
		}
	}
	log.Info("game loaded", "event", r.in.Game.EventID.String(), "teams", fmt.Sprint(g.Teams), "plays", len(g.Plays))
	return nil
}

func (u Usecase) buildIntervals(_ context.Context, r *run) error {
	log := r.stage("subs")
	path := r.ws.SubsPath()
	player := r.in.Game.PlayerName

	if artifacts.Exists(path) && !r.in.Force {
		owner, ivs, err := artifacts.LoadIntervals(path)
		if err != nil {
			return err
		}
		if owner == "" || textutil.EqualName(owner, player) {
			r.cached("subs", true)
			r.ivs = ivs
			log.Info("subs intervals cache found", "path", path, "stints", len(ivs))
			return nil
		}
		log.Info("subs intervals cache belongs to another player, rebuilding", "cached_player", owner)
	}

	events := subs.ExtractEvents(r.game.Plays, player)
	ivs := subs.NewReconstructor(r.in.Subs).Reconstruct(events, r.game.LastPeriod())
	if err := artifacts.SaveIntervals(path, player, ivs); err != nil {
		return err
	}
	r.ivs = ivs
	log.Info("stints reconstructed", "events", len(events), "stints", len(ivs), "path", path)
	return nil
}

func (u Usecase) readClock(ctx context.Context, r *run) error {
	log := r.stage("ocr")
	path := r.ws.ClockMapPath()
	if r.cached("ocr", artifacts.Exists(path)) {
		log.Info("raw clock map cache found", "path", path)
		return nil
	}
	rows, err := u.d.Clock.ReadClock(ctx, r.in.Game.VideoPath, path)
	if err != nil {
		return err
	}
	log.Info("clock map captured", "rows", len(rows), "path", path)
	return nil
}

func (u Usecase) cleanClock(_ context.Context, r *run) error {
	log := r.stage("clock")
	path := r.ws.CleanClockPath()
	if r.cached("clock", artifacts.Exists(path)) {
		table, err := artifacts.LoadCleanClockMap(path)
		if err != nil {
			return err
		}
		r.table = table
		log.Info("clean clock map cache found", "path", path, "rows", len(table))
	} else {
		raw, err := artifacts.LoadClockMap(r.ws.ClockMapPath())
		if err != nil {
			return err
		}
		table := clock.NewCleaner(r.in.Clock).CleanAndLabel(raw)
		if err := artifacts.SaveCleanClockMap(path, table); err != nil {
			return err
		}
		r.table = table
		log.Info("clock map cleaned", "kept", len(table), "removed", len(raw)-len(table), "path", path)
	}

	r.res = timing.NewResolver(r.table)
	for p, n := range r.res.Periods() {
		log.Debug("period coverage", logging.FieldPeriod, p.String(), "rows", n)
	}
	return nil
}

func (u Usecase) writeManifest(_ context.Context, r *run) error {
	b, err := json.MarshalIndent(r.result.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := r.ws.ManifestPath()
	if err := artifacts.WriteFileAtomic(path, b, 0o644); err != nil {
		return err
	}
	r.stage("manifest").Info("manifest written", "path", path,
		"stints", len(r.result.Manifest.Stints), "reels", len(r.result.Manifest.Highlights))
	return nil
}

func (r *run) summarize() {
	m := r.result.Manifest
	log := r.stage("summary")
	log.Info("run complete",
		"intervals", len(m.Stints),
		"reels", len(m.Highlights),
		"unresolved_plays", r.result.Unresolved,
		"skipped", fmt.Sprint(r.result.Skipped),
		"dir", r.ws.PlayerDir())
	if len(m.Stints) == 0 {
		log.Warn("no interval clips found, check the stints stage")
	}
}
