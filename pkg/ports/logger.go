// Package ports defines the interfaces sequencestitch uses to reach the outside world.
package ports

import (
	"fmt"
	"strings"
)

// LogLevel is the minimum severity a logger emits.
type LogLevel int

const (
	// LevelDebug covers subprocess arguments, list contents and stage internals.
	LevelDebug LogLevel = iota
	// LevelInfo covers export and import milestones.
	LevelInfo
	// LevelWarn covers fallbacks such as a missing secondary sequence.
	LevelWarn
	// LevelError covers failed stages.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = map[LogLevel]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLogLevel accepts the names printed by String, case-insensitively,
// plus "warning". An empty string means info.
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger abstracts logging with translatable message keys.
// The msg parameter is a lexicon key; args fill its verbs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
