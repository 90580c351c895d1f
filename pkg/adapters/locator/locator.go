// Package locator finds the ffmpeg and ffprobe executables.
package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// Tool names.
const (
	FFmpeg  = "ffmpeg"
	FFprobe = "ffprobe"
)

// Locator searches for executables in a fixed order:
//  1. an explicit path (config, or the FFMPEG_PATH/FFPROBE_PATH env var)
//  2. next to the running executable and in its ../Resources
//  3. well-known package manager locations
//  4. every directory on PATH
//
// The first executable candidate wins.
type Locator struct {
	// Explicit is the configured ffmpeg path. ffprobe is looked up next to it.
	Explicit string

	GOOS         string
	Getenv       func(key string) string
	Executable   func() (string, error)
	IsExecutable func(path string) bool
}

// New creates a Locator for the current platform.
func New(explicit string) *Locator {
	return &Locator{
		Explicit:     explicit,
		GOOS:         runtime.GOOS,
		Getenv:       os.Getenv,
		Executable:   os.Executable,
		IsExecutable: isExecutable,
	}
}

// FFmpeg returns the path of the ffmpeg executable.
func (l *Locator) FFmpeg() (string, error) {
	return l.Find(FFmpeg)
}

// FFprobe returns the path of the ffprobe executable.
func (l *Locator) FFprobe() (string, error) {
	return l.Find(FFprobe)
}

// Find returns the first executable candidate for tool.
func (l *Locator) Find(tool string) (string, error) {
	if explicit, source := l.explicit(tool); explicit != "" {
		if l.IsExecutable(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s %s is not executable", pipeline.ErrBinaryNotFound, source, explicit)
	}

	for _, p := range l.Candidates(tool) {
		if l.IsExecutable(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", pipeline.ErrBinaryNotFound, tool)
}

func (l *Locator) explicit(tool string) (path, source string) {
	switch tool {
	case FFmpeg:
		if l.Explicit != "" {
			return l.Explicit, "configured path"
		}
		if env := l.getenv("FFMPEG_PATH"); env != "" {
			return env, "FFMPEG_PATH"
		}
	case FFprobe:
		if env := l.getenv("FFPROBE_PATH"); env != "" {
			return env, "FFPROBE_PATH"
		}
	}
	return "", ""
}

// Candidates returns the ordered, de-duplicated search list for tool,
// excluding explicit paths.
func (l *Locator) Candidates(tool string) []string {
	name := tool
	if l.GOOS == "windows" {
		name += ".exe"
	}

	var dirs []string

	// ffprobe usually ships beside a configured ffmpeg.
	if tool != FFmpeg {
		ffmpeg := l.Explicit
		if ffmpeg == "" {
			ffmpeg = l.getenv("FFMPEG_PATH")
		}
		if ffmpeg != "" {
			dirs = append(dirs, filepath.Dir(ffmpeg))
		}
	}

	if l.Executable != nil {
		if exe, err := l.Executable(); err == nil {
			dir := filepath.Dir(exe)
			dirs = append(dirs, dir, filepath.Join(dir, "..", "Resources"))
		}
	}

	dirs = append(dirs, l.wellKnownDirs()...)

	if path := l.getenv("PATH"); path != "" {
		sep := ":"
		if l.GOOS == "windows" {
			sep = ";"
		}
		for _, d := range strings.Split(path, sep) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}

	seen := make(map[string]bool, len(dirs))
	var out []string
	for _, d := range dirs {
		p := filepath.Join(filepath.Clean(d), name)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func (l *Locator) wellKnownDirs() []string {
	switch l.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
			"/opt/local/bin",
		}
	default:
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/opt/local/bin",
			"/snap/bin",
		}
	}
}

func (l *Locator) getenv(key string) string {
	if l.Getenv == nil {
		return ""
	}
	return l.Getenv(key)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

var _ ports.BinaryLocator = (*Locator)(nil)
