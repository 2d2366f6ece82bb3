package ports

import (
	"context"
	"time"

	"github.com/forPelevin/hoopcut/internal/types"
)

type VideoTool interface {
	// Cut copies [start, end] of inMP4 into outMP4 without re-encoding.
	Cut(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string) error
	RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string, burnASS string) error
	Concat(ctx context.Context, segments []string, listFile, outMP4 string) error
	ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error)
}

// FeedSource fetches the raw play-by-play document for an event and decodes
// documents it fetched earlier.
type FeedSource interface {
	Fetch(ctx context.Context, eventID string) ([]byte, error)
	Parse(raw []byte) (types.Game, error)
}

// ClockReader produces the raw clock table for a broadcast video.
type ClockReader interface {
	ReadClock(ctx context.Context, inMP4, outCSV string) ([]types.ClockSample, error)
}

// Publisher uploads a produced file and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, localPath, key string) (string, error)
}
