package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/forPelevin/hoopcut/internal/textutil"
)

// ErrLocked is returned when another run holds the workspace lock.
var ErrLocked = errors.New("workspace is locked by another run")

// Workspace is the directory layout of one player's game under the data root:
//
//	<root>/metadata/{pbp.json,subs_intervals.csv,clock_map.csv,clock_map_clean.csv}
//	<root>/processed/<Player_Name>/<game>/{intervals,stats,metadata,segments}
type Workspace struct {
	Root   string
	Player string
	Game   string
}

func NewWorkspace(root, player, game string) Workspace {
	return Workspace{Root: root, Player: player, Game: game}
}

func (w Workspace) MetadataDir() string { return filepath.Join(w.Root, "metadata") }

func (w Workspace) PBPPath() string { return filepath.Join(w.MetadataDir(), "pbp.json") }

func (w Workspace) SubsPath() string { return filepath.Join(w.MetadataDir(), "subs_intervals.csv") }

func (w Workspace) ClockMapPath() string { return filepath.Join(w.MetadataDir(), "clock_map.csv") }

func (w Workspace) CleanClockPath() string {
	return filepath.Join(w.MetadataDir(), "clock_map_clean.csv")
}

func (w Workspace) PlayerDir() string {
	return filepath.Join(w.Root, "processed", textutil.Slug(w.Player), w.Game)
}

func (w Workspace) IntervalsDir() string { return filepath.Join(w.PlayerDir(), "intervals") }

func (w Workspace) StatsDir() string { return filepath.Join(w.PlayerDir(), "stats") }

func (w Workspace) PlayerMetadataDir() string { return filepath.Join(w.PlayerDir(), "metadata") }

func (w Workspace) ManifestPath() string {
	return filepath.Join(w.PlayerMetadataDir(), "manifest.json")
}

// SegmentsRoot holds per-category clips before they are joined into reels.
func (w Workspace) SegmentsRoot() string { return filepath.Join(w.PlayerDir(), "segments") }

func (w Workspace) SegmentsDir(category string) string {
	return filepath.Join(w.SegmentsRoot(), category)
}

// Ensure creates every directory of the layout.
func (w Workspace) Ensure() error {
	for _, dir := range []string{w.MetadataDir(), w.IntervalsDir(), w.StatsDir(), w.PlayerMetadataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Lock takes an exclusive, non-blocking lock on the data root. The metadata
// directory is shared by every player, so one run at a time owns the root.
func (w Workspace) Lock() (func() error, error) {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create data root: %w", err)
	}
	lockPath := filepath.Join(w.Root, ".hoopcut.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}
	return lock.Unlock, nil
}
