package mocks

import (
	"sync"

	"github.com/user/sequencestitch/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Commands    map[string]ports.Invocation
	Logs        map[string]ports.ProcessResult
	ConcatLists map[string][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:     enabled,
		Commands:    make(map[string]ports.Invocation),
		Logs:        make(map[string]ports.ProcessResult),
		ConcatLists: make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveCommand(stage string, inv ports.Invocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands[stage] = inv
	return nil
}

func (m *DebugSink) SaveEncoderLog(stage string, result ports.ProcessResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs[stage] = result
	return nil
}

func (m *DebugSink) SaveConcatList(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConcatLists[name] = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool { return false }

func (m *NullSink) SaveCommand(stage string, inv ports.Invocation) error { return nil }

func (m *NullSink) SaveEncoderLog(stage string, result ports.ProcessResult) error { return nil }

func (m *NullSink) SaveConcatList(name string, data []byte) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
