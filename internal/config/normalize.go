package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	c.Paths.GameInfo = strings.TrimSpace(c.Paths.GameInfo)
	if c.Paths.GameInfo == "" {
		c.Paths.GameInfo = defaultGameInfo
	}

	c.Feed.BaseURL = strings.TrimRight(strings.TrimSpace(c.Feed.BaseURL), "/")
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = defaultFeedBaseURL
	}
	c.Feed.League = strings.TrimSpace(c.Feed.League)
	if c.Feed.League == "" {
		c.Feed.League = defaultFeedLeague
	}
	if c.Feed.TimeoutSeconds == 0 {
		c.Feed.TimeoutSeconds = defaultFeedTimeout
	}

	c.FFmpeg.FFmpegPath = strings.TrimSpace(c.FFmpeg.FFmpegPath)
	if c.FFmpeg.FFmpegPath == "" {
		c.FFmpeg.FFmpegPath = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobePath = strings.TrimSpace(c.FFmpeg.FFprobePath)
	if c.FFmpeg.FFprobePath == "" {
		c.FFmpeg.FFprobePath = defaultFFprobeBinary
	}

	c.OCR.Bin = strings.TrimSpace(c.OCR.Bin)
	if c.OCR.Bin == "" {
		c.OCR.Bin = defaultOCRBin
	}

	c.Publish.Bucket = strings.TrimSpace(c.Publish.Bucket)
	c.Publish.Prefix = strings.Trim(strings.TrimSpace(c.Publish.Prefix), "/")
	if c.Publish.CredentialsFile != "" {
		if c.Publish.CredentialsFile, err = expandPath(c.Publish.CredentialsFile); err != nil {
			return fmt.Errorf("publish.credentials_file: %w", err)
		}
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// applyEnv lets HOOPCUT_* variables override values read from the file.
func (c *Config) applyEnv() error {
	str := map[string]*string{
		"HOOPCUT_DATA_DIR":      &c.Paths.DataDir,
		"HOOPCUT_GAME_INFO":     &c.Paths.GameInfo,
		"HOOPCUT_FEED_BASE_URL": &c.Feed.BaseURL,
		"HOOPCUT_FEED_LEAGUE":   &c.Feed.League,
		"HOOPCUT_FFMPEG":        &c.FFmpeg.FFmpegPath,
		"HOOPCUT_FFPROBE":       &c.FFmpeg.FFprobePath,
		"HOOPCUT_OCR_BIN":       &c.OCR.Bin,
		"HOOPCUT_LOG_LEVEL":     &c.Logging.Level,
		"HOOPCUT_LOG_FORMAT":    &c.Logging.Format,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("HOOPCUT_FEED_ALLOWED_HOSTS"); ok && strings.TrimSpace(v) != "" {
		c.Feed.AllowedHosts = splitList(v)
	}
	if v, ok := os.LookupEnv("HOOPCUT_PUBLISH_BUCKET"); ok && strings.TrimSpace(v) != "" {
		c.Publish.Bucket = v
		c.Publish.Enabled = true
	}

	flags := map[string]*bool{
		"HOOPCUT_KEEP_SEGMENTS": &c.Highlights.KeepSegments,
		"HOOPCUT_BURN_CAPTIONS": &c.Highlights.BurnCaptions,
	}
	for key, dst := range flags {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
