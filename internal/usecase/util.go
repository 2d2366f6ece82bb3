package usecase

import (
	"path/filepath"
	"time"

	"github.com/forPelevin/hoopcut/internal/artifacts"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// relPath renders p relative to the player folder with forward slashes.
func relPath(ws artifacts.Workspace, p string) string {
	rel, err := filepath.Rel(ws.PlayerDir(), p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
