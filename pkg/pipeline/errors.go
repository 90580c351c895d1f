package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrBinaryNotFound is returned when no ffmpeg executable could be located.
	ErrBinaryNotFound = errors.New("ffmpeg binary not found")

	// ErrEmptyInput is returned when a sequence contains no images.
	ErrEmptyInput = errors.New("no images to export")

	// ErrCancelled is returned when the caller cancelled the operation.
	ErrCancelled = errors.New("operation cancelled")

	// ErrOutputNotProduced is returned when ffmpeg exited cleanly but left no output behind.
	ErrOutputNotProduced = errors.New("output not produced")

	// ErrSourceTooLarge is returned when an import source exceeds the size limit.
	ErrSourceTooLarge = errors.New("source video too large")

	// ErrInvalidSettings is returned when export settings fail validation.
	ErrInvalidSettings = errors.New("invalid export settings")

	// ErrAlreadyStarted is returned when a process invocation is started twice.
	ErrAlreadyStarted = errors.New("invocation already started")
)

// ArtifactWriteError reports a failure writing an intermediate file.
type ArtifactWriteError struct {
	Path string
	Err  error
}

func (e *ArtifactWriteError) Error() string {
	return fmt.Sprintf("write artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactWriteError) Unwrap() error {
	return e.Err
}

// SubprocessError reports a failed ffmpeg invocation.
// Error returns Message verbatim so it can be shown to the user as is.
type SubprocessError struct {
	Stage    string
	ExitCode int
	Message  string
}

func (e *SubprocessError) Error() string {
	return e.Message
}
