package config

import (
	"errors"
	"fmt"

	"github.com/forPelevin/hoopcut/internal/domain/highlights"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateClock(); err != nil {
		return err
	}
	if err := c.validateSubs(); err != nil {
		return err
	}
	if err := c.validateHighlights(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateClock() error {
	k := c.Clock
	if k.EndThreshold < 0 {
		return errors.New("clock.end_threshold must be >= 0")
	}
	if k.HalfResetMin > k.HalfResetMax {
		return errors.New("clock.half_reset_min must be <= clock.half_reset_max")
	}
	if k.OTResetMin > k.OTResetMax {
		return errors.New("clock.ot_reset_min must be <= clock.ot_reset_max")
	}
	if k.MedianTolerance <= 0 {
		return errors.New("clock.median_tolerance must be > 0")
	}
	if k.SpikeJump < 0 {
		return errors.New("clock.spike_jump must be >= 0")
	}
	if k.SpikeResume <= 0 {
		return errors.New("clock.spike_resume must be > 0")
	}
	return nil
}

func (c *Config) validateSubs() error {
	if c.Subs.HalfSeconds <= 0 {
		return errors.New("subs.half_seconds must be > 0")
	}
	if c.Subs.OvertimeSeconds <= 0 {
		return errors.New("subs.overtime_seconds must be > 0")
	}
	return nil
}

func (c *Config) validateHighlights() error {
	if c.Highlights.PreSec < 0 || c.Highlights.PostSec < 0 {
		return errors.New("highlights.pre_sec and highlights.post_sec must be >= 0")
	}
	if c.Highlights.PreSec+c.Highlights.PostSec == 0 {
		return errors.New("highlights clip window must be longer than zero")
	}
	if _, err := highlights.ParseCategories(c.Highlights.Categories); err != nil {
		return fmt.Errorf("highlights.categories: %w", err)
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.TimeoutSeconds < 0 {
		return errors.New("feed.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validatePublish() error {
	if c.Publish.Enabled && c.Publish.Bucket == "" {
		return errors.New("publish.bucket is required when publish.enabled is true (or set HOOPCUT_PUBLISH_BUCKET)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognised", c.Logging.Level)
	}
	return nil
}
