package mocks

import (
	"context"
	"sync"

	"github.com/user/sequencestitch/pkg/ports"
)

// ProcessRunner is a mock implementation of ports.ProcessRunner.
// Without RunFunc every call succeeds with exit code 0.
type ProcessRunner struct {
	mu sync.Mutex

	RunFunc func(ctx context.Context, inv ports.Invocation, opts ports.RunOptions) (ports.ProcessResult, error)

	Calls []ports.Invocation
}

func (m *ProcessRunner) Run(ctx context.Context, inv ports.Invocation, opts ports.RunOptions) (ports.ProcessResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, inv)
	m.mu.Unlock()

	if opts.OnStart != nil {
		opts.OnStart()
	}
	if m.RunFunc != nil {
		return m.RunFunc(ctx, inv, opts)
	}
	return ports.ProcessResult{}, nil
}

// Invocations returns a copy of the recorded calls.
func (m *ProcessRunner) Invocations() []ports.Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.Invocation(nil), m.Calls...)
}

var _ ports.ProcessRunner = (*ProcessRunner)(nil)
