package config

import (
	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/domain/highlights"
	"github.com/forPelevin/hoopcut/internal/domain/subs"
)

const (
	defaultDataDir       = "data"
	defaultGameInfo      = "game_info.json"
	defaultFeedBaseURL   = "https://site.api.espn.com"
	defaultFeedLeague    = "mens-college-basketball"
	defaultFeedTimeout   = 30
	defaultOCRBin        = "hoopcut-clockocr"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
)

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	w := highlights.DefaultWindow()
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			GameInfo: defaultGameInfo,
		},
		Clock: clock.DefaultConfig(),
		Subs:  subs.DefaultConfig(),
		Highlights: Highlights{
			PreSec:  w.Pre,
			PostSec: w.Post,
		},
		FFmpeg: FFmpeg{
			FFmpegPath:  defaultFFmpegBinary,
			FFprobePath: defaultFFprobeBinary,
		},
		Feed: Feed{
			BaseURL:        defaultFeedBaseURL,
			League:         defaultFeedLeague,
			TimeoutSeconds: defaultFeedTimeout,
		},
		OCR: OCR{
			Bin:       defaultOCRBin,
			Normalize: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// Window returns the clip window described by the highlights section.
func (c *Config) Window() highlights.Window {
	return highlights.Window{Pre: c.Highlights.PreSec, Post: c.Highlights.PostSec}
}
