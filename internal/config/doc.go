// Package config loads hoopcut's TOML configuration, applies defaults and
// HOOPCUT_* environment overrides, and validates the result.
package config
