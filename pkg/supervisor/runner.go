package supervisor

import (
	"context"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/ports"
)

// Runner implements ports.ProcessRunner with one Supervisor per call.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger.WithComponent("ffmpeg")}
}

// Run starts inv and blocks until it exits. Cancelling ctx kills the process
// and marks the result as cancelled.
func (r *Runner) Run(ctx context.Context, inv ports.Invocation, opts ports.RunOptions) (ports.ProcessResult, error) {
	r.logger.Debug(l10n.F("Running %s %s", inv.Binary, strings.Join(inv.Args, " ")))

	s := New(inv, opts)
	if err := s.Start(ctx); err != nil {
		r.logger.Debug(l10n.F("Failed to start %s: %s", inv.Binary, err))
		return s.Result(), err
	}

	result := s.Wait()
	r.logger.Debug(l10n.F("Process finished: state %s, exit code %d, %d ms",
		s.State(), result.ExitCode, result.Duration.Milliseconds()))
	return result, nil
}

var _ ports.ProcessRunner = (*Runner)(nil)
