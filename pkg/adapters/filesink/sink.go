// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/sequencestitch/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveCommand writes a shell-pastable command line to <stage>.command.txt.
func (s *Sink) SaveCommand(stage string, inv ports.Invocation) error {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, shellQuote(inv.Binary))
	for _, a := range inv.Args {
		parts = append(parts, shellQuote(a))
	}
	content := strings.Join(parts, " ") + "\n"
	if inv.Dir != "" {
		content = fmt.Sprintf("# cwd: %s\n%s", inv.Dir, content)
	}
	path := filepath.Join(s.baseDir, stage+".command.txt")
	return s.fs.WriteFile(path, []byte(content))
}

// SaveEncoderLog writes captured output to <stage>.log.
func (s *Sink) SaveEncoderLog(stage string, result ports.ProcessResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "exit code: %d\n", result.ExitCode)
	fmt.Fprintf(&b, "cancelled: %t\n", result.Cancelled)
	fmt.Fprintf(&b, "duration: %s\n", result.Duration)
	b.WriteString("=== stderr ===\n")
	b.WriteString(result.Stderr)
	b.WriteString("\n=== stdout ===\n")
	b.WriteString(result.Stdout)
	path := filepath.Join(s.baseDir, stage+".log")
	return s.fs.WriteFile(path, []byte(b.String()))
}

// SaveConcatList copies a concat list into the lists directory.
func (s *Sink) SaveConcatList(name string, data []byte) error {
	dir := filepath.Join(s.baseDir, "lists")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$;&|<>()*?[]{}#~`!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
