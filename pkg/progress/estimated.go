package progress

import (
	"context"

	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// RunEstimated runs inv while h reports estimated progress. The ticker
// starts once the process has launched and is stopped before returning,
// so report is never called after RunEstimated returns.
func RunEstimated(ctx context.Context, runner ports.ProcessRunner, inv ports.Invocation, h Heuristic, report pipeline.ProgressFunc) (ports.ProcessResult, error) {
	tickCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan struct{})
	started := false
	opts := ports.RunOptions{
		OnStart: func() {
			started = true
			go func() {
				defer close(done)
				h.Run(tickCtx, report)
			}()
		},
	}

	result, err := runner.Run(ctx, inv, opts)
	stop()
	if started {
		<-done
	}
	return result, err
}
