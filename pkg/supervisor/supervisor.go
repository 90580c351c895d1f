// Package supervisor runs one ffmpeg process per invocation and tracks its
// lifecycle.
package supervisor

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// State is the lifecycle state of a Supervisor.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == Cancelled
}

// Capture limits for retained output. ffmpeg prints its errors last.
const (
	MaxStderrBytes = 64 * 1024
	MaxStdoutBytes = 16 * 1024
)

// WaitDelay bounds how long output is drained after the process exits.
const WaitDelay = 2 * time.Second

// Supervisor owns a single process launch. It cannot be restarted; build a
// new one to retry.
type Supervisor struct {
	inv  ports.Invocation
	opts ports.RunOptions

	mu              sync.Mutex
	state           State
	cmd             *exec.Cmd
	cancelRequested bool
	started         time.Time
	result          ports.ProcessResult

	stdout *lineWriter
	stderr *tailBuffer
	done   chan struct{}
}

// New prepares a supervisor for inv. Nothing runs until Start.
func New(inv ports.Invocation, opts ports.RunOptions) *Supervisor {
	return &Supervisor{
		inv:    inv,
		opts:   opts,
		stdout: newLineWriter(newTailBuffer(MaxStdoutBytes), opts.OnStdoutLine),
		stderr: newTailBuffer(MaxStderrBytes),
		done:   make(chan struct{}),
	}
}

// Start launches the process and returns without waiting for it.
// Cancelling ctx has the same effect as calling Cancel.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return pipeline.ErrAlreadyStarted
	}
	if ctx != nil && ctx.Err() != nil {
		// Never spawn for a context that is already done.
		s.cancelRequested = true
		s.state = Cancelled
		s.result = ports.ProcessResult{ExitCode: -1, Cancelled: true}
		close(s.done)
		s.mu.Unlock()
		return nil
	}

	cmd := exec.Command(s.inv.Binary, s.inv.Args...)
	cmd.Dir = s.inv.Dir
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	// Stray children holding the pipes must not block Wait forever.
	cmd.WaitDelay = WaitDelay

	s.started = time.Now()
	if err := cmd.Start(); err != nil {
		s.state = Failed
		s.result = ports.ProcessResult{ExitCode: -1}
		close(s.done)
		s.mu.Unlock()
		return err
	}
	s.cmd = cmd
	s.state = Running
	s.mu.Unlock()

	go s.wait()
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Cancel()
			case <-s.done:
			}
		}()
	}

	if s.opts.OnStart != nil {
		s.opts.OnStart()
	}
	return nil
}

func (s *Supervisor) wait() {
	err := s.cmd.Wait()
	s.stdout.Flush()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	s.mu.Lock()
	s.result = ports.ProcessResult{
		ExitCode:  exitCode,
		Stdout:    s.stdout.String(),
		Stderr:    s.stderr.String(),
		Cancelled: s.cancelRequested,
		Duration:  time.Since(s.started),
	}
	switch {
	case s.cancelRequested:
		s.state = Cancelled
	case exitCode == 0:
		s.state = Succeeded
	default:
		s.state = Failed
	}
	s.mu.Unlock()
	close(s.done)
}

// Cancel flags the run as cancelled and kills the process. It only has an
// effect while running and reports whether it did.
func (s *Supervisor) Cancel() bool {
	s.mu.Lock()
	if s.state != Running || s.cancelRequested {
		s.mu.Unlock()
		return false
	}
	s.cancelRequested = true
	proc := s.cmd.Process
	s.mu.Unlock()

	// The process may already have exited; the flag still wins.
	_ = proc.Kill()
	return true
}

// CancelRequested reports whether Cancel took effect.
func (s *Supervisor) CancelRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelRequested
}

// Done is closed once the process has exited and the result is final.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the process has exited and returns its result.
func (s *Supervisor) Wait() ports.ProcessResult {
	<-s.done
	return s.Result()
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the final result. It is zero until Done is closed.
func (s *Supervisor) Result() ports.ProcessResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Invocation returns the command this supervisor runs.
func (s *Supervisor) Invocation() ports.Invocation {
	return s.inv
}
