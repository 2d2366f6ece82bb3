package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/config"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	video := filepath.Join(t.TempDir(), "game.mp4")
	if err := os.WriteFile(video, []byte("x"), 0o644); err != nil {
		t.Fatalf("write video fixture: %v", err)
	}
	c := config.Default()
	return FromConfig(&c, artifacts.GameInfo{
		PlayerName: "Jane Doe",
		GameName:   "g1",
		EventID:    "401",
		VideoPath:  video,
	})
}

func TestFromConfig(t *testing.T) {
	c := config.Default()
	c.Feed.TimeoutSeconds = 12
	c.Highlights.PreSec = 4
	c.Publish = config.Publish{Bucket: "clips", Prefix: "dev"}

	got := FromConfig(&c, artifacts.GameInfo{PlayerName: "Jane Doe"})
	if got.FeedTimeout != 12*time.Second {
		t.Fatalf("unexpected feed timeout: %s", got.FeedTimeout)
	}
	if got.Window.Pre != 4 || got.Window.Post != c.Highlights.PostSec {
		t.Fatalf("unexpected window: %+v", got.Window)
	}
	if got.PublishBucket != "" {
		t.Fatalf("publishing must stay off until enabled, got bucket %q", got.PublishBucket)
	}

	c.Publish.Enabled = true
	got = FromConfig(&c, artifacts.GameInfo{})
	if got.PublishBucket != "clips" || got.PublishPrefix != "dev" {
		t.Fatalf("unexpected publish settings: %q %q", got.PublishBucket, got.PublishPrefix)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{
			name:    "missing player",
			mutate:  func(c *Config) { c.Game.PlayerName = "" },
			wantErr: "player_name is required",
		},
		{
			name:    "missing video",
			mutate:  func(c *Config) { c.Game.VideoPath = filepath.Join(t.TempDir(), "nope.mp4") },
			wantErr: "stat input:",
		},
		{
			name:    "video is directory",
			mutate:  func(c *Config) { c.Game.VideoPath = t.TempDir() },
			wantErr: "is a directory",
		},
		{
			name:    "unknown category",
			mutate:  func(c *Config) { c.Categories = []string{"dunks"} },
			wantErr: `unknown highlight category "dunks"`,
		},
		{
			name:    "negative window",
			mutate:  func(c *Config) { c.Window.Pre = -1 },
			wantErr: "must not be negative",
		},
		{
			name:    "feed over http",
			mutate:  func(c *Config) { c.FeedBaseURL = "http://site.api.espn.com" },
			wantErr: "https is required",
		},
		{
			name:    "feed host not allowed",
			mutate:  func(c *Config) { c.FeedBaseURL = "https://evil.example" },
			wantErr: "feed.allowed_hosts",
		},
		{
			name: "feed host allowed by config",
			mutate: func(c *Config) {
				c.FeedBaseURL = "https://proxy.internal"
				c.FeedAllowedHosts = []string{" proxy.internal "}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
