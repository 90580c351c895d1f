package progress

import (
	"context"
	"time"

	"github.com/user/sequencestitch/pkg/pipeline"
)

// Defaults for Heuristic.
const (
	DefaultSoftwareCost = 150 * time.Millisecond
	DefaultHardwareCost = 50 * time.Millisecond
	DefaultMinimum      = 2 * time.Second
	DefaultInterval     = 100 * time.Millisecond
)

// Heuristic estimates encode progress from wall time. ffmpeg gives no
// usable total for concat inputs, so the estimate is a fixed cost per frame.
type Heuristic struct {
	FrameCount   int
	Hardware     bool
	SoftwareCost time.Duration
	HardwareCost time.Duration
	Minimum      time.Duration
	Interval     time.Duration
}

func (h Heuristic) withDefaults() Heuristic {
	if h.SoftwareCost <= 0 {
		h.SoftwareCost = DefaultSoftwareCost
	}
	if h.HardwareCost <= 0 {
		h.HardwareCost = DefaultHardwareCost
	}
	if h.Minimum <= 0 {
		h.Minimum = DefaultMinimum
	}
	if h.Interval <= 0 {
		h.Interval = DefaultInterval
	}
	return h
}

// Estimate returns the expected run time.
func (h Heuristic) Estimate() time.Duration {
	h = h.withDefaults()
	cost := h.SoftwareCost
	if h.Hardware {
		cost = h.HardwareCost
	}
	est := time.Duration(h.FrameCount) * cost
	if est < h.Minimum {
		est = h.Minimum
	}
	return est
}

// Fraction returns the progress after elapsed, capped at MaxInFlight.
func (h Heuristic) Fraction(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	f := float64(elapsed) / float64(h.Estimate())
	if f > MaxInFlight {
		f = MaxInFlight
	}
	return f
}

// Run samples Fraction every Interval until ctx is done.
func (h Heuristic) Run(ctx context.Context, report pipeline.ProgressFunc) {
	if report == nil {
		return
	}
	h = h.withDefaults()
	start := time.Now()
	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// select picks randomly when both are ready.
			if ctx.Err() != nil {
				return
			}
			report(h.Fraction(time.Since(start)))
		}
	}
}
