// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/sequencestitch/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveCommand does nothing.
func (s *Sink) SaveCommand(stage string, inv ports.Invocation) error {
	return nil
}

// SaveEncoderLog does nothing.
func (s *Sink) SaveEncoderLog(stage string, result ports.ProcessResult) error {
	return nil
}

// SaveConcatList does nothing.
func (s *Sink) SaveConcatList(name string, data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
