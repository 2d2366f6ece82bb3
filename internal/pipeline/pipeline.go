package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/config"
	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/domain/highlights"
	"github.com/forPelevin/hoopcut/internal/domain/subs"
	"github.com/forPelevin/hoopcut/internal/logging"
	"github.com/forPelevin/hoopcut/internal/ports"
	"github.com/forPelevin/hoopcut/internal/ports/adapters/clockocr"
	"github.com/forPelevin/hoopcut/internal/ports/adapters/espn"
	"github.com/forPelevin/hoopcut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/hoopcut/internal/ports/adapters/gcs"
	"github.com/forPelevin/hoopcut/internal/usecase"
)

type Config struct {
	Game    artifacts.GameInfo
	DataDir string
	Logger  *slog.Logger

	Clock      clock.Config
	Subs       subs.Config
	Window     highlights.Window
	Categories []string

	KeepSegments bool
	BurnCaptions bool
	Force        bool

	FFmpegPath  string
	FFprobePath string

	FeedBaseURL      string
	FeedLeague       string
	FeedAllowedHosts []string
	FeedTimeout      time.Duration

	OCRBin       string
	OCRArgs      []string
	OCRNormalize bool

	// PublishBucket enables uploads when set.
	PublishBucket      string
	PublishPrefix      string
	PublishCredentials string
}

// FromConfig combines the loaded settings with one game's description.
func FromConfig(c *config.Config, game artifacts.GameInfo) Config {
	cfg := Config{
		Game:    game,
		DataDir: c.Paths.DataDir,

		Clock:      c.Clock,
		Subs:       c.Subs,
		Window:     c.Window(),
		Categories: c.Highlights.Categories,

		KeepSegments: c.Highlights.KeepSegments,
		BurnCaptions: c.Highlights.BurnCaptions,

		FFmpegPath:  c.FFmpeg.FFmpegPath,
		FFprobePath: c.FFmpeg.FFprobePath,

		FeedBaseURL:      c.Feed.BaseURL,
		FeedLeague:       c.Feed.League,
		FeedAllowedHosts: c.Feed.AllowedHosts,
		FeedTimeout:      time.Duration(c.Feed.TimeoutSeconds) * time.Second,

		OCRBin:       c.OCR.Bin,
		OCRArgs:      c.OCR.Args,
		OCRNormalize: c.OCR.Normalize,
	}
	if c.Publish.Enabled {
		cfg.PublishBucket = c.Publish.Bucket
		cfg.PublishPrefix = c.Publish.Prefix
		cfg.PublishCredentials = c.Publish.CredentialsFile
	}
	return cfg
}

func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game info: %w", err)
	}
	info, err := os.Stat(c.Game.VideoPath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory", c.Game.VideoPath)
	}
	if c.DataDir == "" {
		return errors.New("data dir is empty")
	}
	if c.Window.Pre < 0 || c.Window.Post < 0 {
		return errors.New("highlight window must not be negative")
	}
	if _, err := highlights.ParseCategories(c.Categories); err != nil {
		return err
	}
	if c.OCRBin == "" {
		return errors.New("ocr binary is required")
	}
	return espn.ValidateBaseURL(c.FeedBaseURL, c.FeedAllowedHosts)
}

// Run processes one game for one player under an exclusive workspace lock.
func Run(ctx context.Context, cfg Config) (usecase.Result, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNop()
	}

	ws := artifacts.NewWorkspace(cfg.DataDir, cfg.Game.PlayerName, cfg.Game.GameName)
	if err := ws.Ensure(); err != nil {
		return usecase.Result{}, err
	}
	unlock, err := ws.Lock()
	if err != nil {
		return usecase.Result{}, fmt.Errorf("workspace %s: %w", ws.Root, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn("release workspace lock", "error", err)
		}
	}()

	// adapters
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	feed := espn.New(cfg.FeedBaseURL, cfg.FeedLeague, cfg.FeedTimeout)
	ocr := clockocr.New(cfg.OCRBin, cfg.OCRArgs, cfg.OCRNormalize)

	dur, err := v.ProbeDuration(ctx, cfg.Game.VideoPath)
	if err != nil {
		return usecase.Result{}, err
	}
	log.Info("input video", "path", cfg.Game.VideoPath, "duration", dur.Round(time.Second).String())

	deps := usecase.Deps{
		Video:  v,
		Feed:   feed,
		Clock:  ocr,
		Logger: log,
	}
	if cfg.PublishBucket != "" {
		pub, err := gcs.New(ctx, cfg.PublishBucket, cfg.PublishPrefix, cfg.PublishCredentials)
		if err != nil {
			return usecase.Result{}, err
		}
		defer pub.Close()
		deps.Publisher = pub
	}
	uc := usecase.New(deps)

	categories, err := highlights.ParseCategories(cfg.Categories)
	if err != nil {
		return usecase.Result{}, err
	}

	runID := uuid.NewString()
	log.Info("run started", logging.FieldRunID, runID, "player", cfg.Game.PlayerName,
		"game", cfg.Game.GameName, "workspace", ws.PlayerDir())

	res, err := uc.Run(ctx, usecase.Input{
		Game:         cfg.Game,
		Workspace:    ws,
		RunID:        runID,
		Clock:        cfg.Clock,
		Subs:         cfg.Subs,
		Window:       cfg.Window,
		Categories:   categories,
		KeepSegments: cfg.KeepSegments,
		BurnCaptions: cfg.BurnCaptions,
		Force:        cfg.Force,
	})
	if err != nil {
		return usecase.Result{}, err
	}

	url, err := uc.PublishManifest(ctx, ws)
	if err != nil {
		return usecase.Result{}, fmt.Errorf("publish manifest: %w", err)
	}
	if url != "" {
		log.Info("manifest published", "url", url)
	}
	return res, nil
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.FeedSource = (*espn.Adapter)(nil)
var _ ports.ClockReader = (*clockocr.Adapter)(nil)
var _ ports.Publisher = (*gcs.Adapter)(nil)
