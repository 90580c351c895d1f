package ports

import (
	"context"
	"time"
)

// Invocation is a fully resolved ffmpeg command. It is not modified after
// it has been built.
type Invocation struct {
	// Binary is the absolute path of the executable.
	Binary string
	// Args excludes the binary itself.
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Output is the path the command is expected to produce.
	Output string
}

// RunOptions carries optional hooks for a single run.
type RunOptions struct {
	// OnStart is called once the process has been launched.
	OnStart func()
	// OnStdoutLine receives each complete stdout line as it arrives.
	OnStdoutLine func(line string)
}

// ProcessResult is what remains of a finished process.
type ProcessResult struct {
	ExitCode  int
	Stdout    string
	Stderr    string
	Cancelled bool
	Duration  time.Duration
}

// ProcessRunner runs external processes.
type ProcessRunner interface {
	// Run launches the invocation and blocks until it exits or ctx is done.
	// An error is returned only when the process could not be started;
	// nonzero exits and cancellation are reported in ProcessResult.
	Run(ctx context.Context, inv Invocation, opts RunOptions) (ProcessResult, error)
}
