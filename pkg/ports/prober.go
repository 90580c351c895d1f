package ports

import (
	"context"
	"time"
)

// MediaInfo describes the primary video stream of a file.
type MediaInfo struct {
	Duration time.Duration
	Codec    string
	Width    int
	Height   int
}

// MediaProber reads container metadata without decoding frames.
type MediaProber interface {
	Probe(ctx context.Context, path string) (MediaInfo, error)
}
