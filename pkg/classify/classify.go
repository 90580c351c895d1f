// Package classify maps finished ffmpeg runs onto the pipeline error taxonomy.
package classify

import (
	"fmt"
	"strings"

	"github.com/user/sequencestitch/pkg/pipeline"
)

// MaxDiagnosticLines is how many matching stderr lines end up in a message.
const MaxDiagnosticLines = 3

// markers are matched case-sensitively, as ffmpeg capitalizes its errors.
var markers = []string{"Error", "Invalid", "failed"}

// Outcome is everything the classifier looks at.
type Outcome struct {
	Stage     string
	ExitCode  int
	Stderr    string
	Cancelled bool

	// OutputPath is checked for existence after a clean exit.
	// Leave empty when the caller verifies output itself.
	OutputPath string

	// Redactions replaces substrings of the message, e.g. a source path.
	Redactions map[string]string
}

// Classify returns nil for a successful run and one error otherwise.
// Precedence: cancellation, missing output after exit 0, nonzero exit.
func Classify(o Outcome, exists func(path string) bool) error {
	if o.Cancelled {
		return pipeline.ErrCancelled
	}

	if o.ExitCode == 0 {
		if o.OutputPath != "" && exists != nil && !exists(o.OutputPath) {
			return fmt.Errorf("%s: %w: %s", o.Stage, pipeline.ErrOutputNotProduced, o.OutputPath)
		}
		return nil
	}

	msg := Diagnose(o.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("subprocess exited with code %d", o.ExitCode)
	}
	for from, to := range o.Redactions {
		if from != "" {
			msg = strings.ReplaceAll(msg, from, to)
		}
	}

	return &pipeline.SubprocessError{
		Stage:    o.Stage,
		ExitCode: o.ExitCode,
		Message:  msg,
	}
}

// Diagnose returns the last matching stderr lines joined with "; ".
func Diagnose(stderr string) string {
	var matched []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, m := range markers {
			if strings.Contains(line, m) {
				matched = append(matched, line)
				break
			}
		}
	}
	if len(matched) > MaxDiagnosticLines {
		matched = matched[len(matched)-MaxDiagnosticLines:]
	}
	return strings.Join(matched, "; ")
}
