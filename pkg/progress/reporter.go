// Package progress turns subprocess activity into a monotonic completion
// signal.
package progress

import (
	"context"
	"sync"

	"github.com/user/sequencestitch/pkg/pipeline"
)

// MaxInFlight is the highest value reported before the process has exited.
const MaxInFlight = 0.99

// Reporter forwards progress to a callback with these guarantees: values
// never decrease, 1.0 is delivered once and only by Complete, and nothing
// is delivered after Stop or after the bound context is done. The callback
// runs with the reporter locked and must not call back into it.
type Reporter struct {
	mu        sync.Mutex
	fn        pipeline.ProgressFunc
	ctx       context.Context
	last      float64
	completed bool
	stopped   bool
}

// NewReporter wraps fn. A nil fn is allowed.
func NewReporter(fn pipeline.ProgressFunc) *Reporter {
	return &Reporter{fn: fn}
}

// Bind stops the reporter once ctx is done. The check runs under the
// reporter lock, so nothing is delivered after cancel returns.
func (r *Reporter) Bind(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
}

// Reset starts a new operation and delivers 0 unless the bound context is
// already done.
func (r *Reporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = 0
	r.completed = false
	r.stopped = false
	if r.halted() {
		return
	}
	r.deliver(0)
}

// Report delivers v if it is larger than anything delivered so far.
// Values are capped at MaxInFlight.
func (r *Reporter) Report(v float64) {
	if v != v { // NaN
		return
	}
	if v > MaxInFlight {
		v = MaxInFlight
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.halted() || v <= r.last {
		return
	}
	r.last = v
	r.deliver(v)
}

// Complete delivers 1.0 exactly once.
func (r *Reporter) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.halted() {
		return
	}
	r.completed = true
	r.last = 1
	r.deliver(1)
}

// Stop suppresses every later delivery until Reset.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

// Last returns the most recently delivered value.
func (r *Reporter) Last() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Reporter) halted() bool {
	if !r.stopped && r.ctx != nil && r.ctx.Err() != nil {
		r.stopped = true
	}
	return r.completed || r.stopped
}

func (r *Reporter) deliver(v float64) {
	if r.fn != nil {
		r.fn(v)
	}
}

// Span maps [0, 1] onto [lo, hi] of report, so several subprocesses can
// share one reporter.
func Span(report pipeline.ProgressFunc, lo, hi float64) pipeline.ProgressFunc {
	if report == nil {
		return nil
	}
	return func(v float64) {
		report(lo + (hi-lo)*clamp(v))
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
