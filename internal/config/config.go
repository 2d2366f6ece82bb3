package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/forPelevin/hoopcut/internal/domain/clock"
	"github.com/forPelevin/hoopcut/internal/domain/subs"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the workspace root and the default game info file.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	GameInfo string `toml:"game_info"`
}

// Highlights contains clip window and reel assembly settings.
type Highlights struct {
	PreSec       float64  `toml:"pre_sec"`
	PostSec      float64  `toml:"post_sec"`
	Categories   []string `toml:"categories"`
	KeepSegments bool     `toml:"keep_segments"`
	BurnCaptions bool     `toml:"burn_captions"`
}

type FFmpeg struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

// Feed contains the play-by-play source settings.
type Feed struct {
	BaseURL        string   `toml:"base_url"`
	League         string   `toml:"league"`
	AllowedHosts   []string `toml:"allowed_hosts"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// OCR contains the external clock reader command.
type OCR struct {
	Bin       string   `toml:"bin"`
	Args      []string `toml:"args"`
	Normalize bool     `toml:"normalize"`
}

// Publish contains the optional Cloud Storage upload target.
type Publish struct {
	Enabled         bool   `toml:"enabled"`
	Bucket          string `toml:"bucket"`
	Prefix          string `toml:"prefix"`
	CredentialsFile string `toml:"credentials_file"`
}

type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for hoopcut.
type Config struct {
	Paths      Paths        `toml:"paths"`
	Clock      clock.Config `toml:"clock"`
	Subs       subs.Config  `toml:"subs"`
	Highlights Highlights   `toml:"highlights"`
	FFmpeg     FFmpeg       `toml:"ffmpeg"`
	Feed       Feed         `toml:"feed"`
	OCR        OCR          `toml:"ocr"`
	Publish    Publish      `toml:"publish"`
	Logging    Logging      `toml:"logging"`
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults and environment overrides apply. It returns the
// resolved path and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("hoopcut.toml")
	if err != nil {
		return "", false, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	for _, p := range []string{projectPath, defaultPath} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true, nil
		}
	}
	return defaultPath, false, nil
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/hoopcut/config.toml")
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves "~" and makes p absolute.
func ExpandPath(p string) (string, error) {
	return expandPath(p)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
