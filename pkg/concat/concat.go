// Package concat builds and parses ffmpeg concat demuxer lists.
//
// The concat demuxer shows a frame for the duration given on its own entry,
// but ignores the duration of the final entry unless another file follows.
// Every list therefore repeats its last image as a bare trailing entry.
package concat

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

const (
	filePrefix     = "file '"
	durationPrefix = "duration "
	quoteEscape    = `'\''`
)

// Build turns an ordered list of image paths into concat entries.
// Relative paths are resolved against the working directory.
func Build(paths []string, duration float64) ([]pipeline.ConcatEntry, error) {
	if len(paths) == 0 {
		return nil, pipeline.ErrEmptyInput
	}
	if duration <= 0 {
		return nil, fmt.Errorf("frame duration must be positive, got %v", duration)
	}

	entries := make([]pipeline.ConcatEntry, 0, len(paths)+1)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		entries = append(entries, pipeline.ConcatEntry{Path: abs, Duration: duration})
	}

	last := entries[len(entries)-1]
	entries = append(entries, pipeline.ConcatEntry{Path: last.Path})
	return entries, nil
}

// Render serializes entries in concat demuxer syntax.
func Render(entries []pipeline.ConcatEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(filePrefix)
		buf.WriteString(Escape(e.Path))
		buf.WriteString("'\n")
		if e.Duration > 0 {
			buf.WriteString(durationPrefix)
			buf.WriteString(FormatSeconds(e.Duration))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// RenderSimple serializes a list without duration directives.
func RenderSimple(paths []string) []byte {
	entries := make([]pipeline.ConcatEntry, len(paths))
	for i, p := range paths {
		entries[i] = pipeline.ConcatEntry{Path: p}
	}
	return Render(entries)
}

// Write renders entries to path.
func Write(fs ports.FileSystem, path string, entries []pipeline.ConcatEntry) error {
	if err := fs.WriteFile(path, Render(entries)); err != nil {
		return &pipeline.ArtifactWriteError{Path: path, Err: err}
	}
	return nil
}

// Parse reads a list produced by Render.
func Parse(data []byte) ([]pipeline.ConcatEntry, error) {
	var entries []pipeline.ConcatEntry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, filePrefix):
			if !strings.HasSuffix(line, "'") || len(line) < len(filePrefix)+1 {
				return nil, fmt.Errorf("line %d: unterminated file path", lineNo)
			}
			quoted := line[len(filePrefix) : len(line)-1]
			entries = append(entries, pipeline.ConcatEntry{Path: Unescape(quoted)})
		case strings.HasPrefix(line, durationPrefix):
			if len(entries) == 0 {
				return nil, fmt.Errorf("line %d: duration before any file", lineNo)
			}
			d, err := strconv.ParseFloat(strings.TrimSpace(line[len(durationPrefix):]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			entries[len(entries)-1].Duration = d
		default:
			return nil, fmt.Errorf("line %d: unrecognized directive %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ImagePaths returns the image order of a parsed list, dropping the bare
// trailing sentinel that repeats the last image.
func ImagePaths(entries []pipeline.ConcatEntry) []string {
	n := len(entries)
	if n >= 2 && entries[n-1].Duration == 0 && entries[n-1].Path == entries[n-2].Path {
		n--
	}
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		paths[i] = entries[i].Path
	}
	return paths
}

// Escape quotes a path for a single-quoted concat directive.
func Escape(path string) string {
	return strings.ReplaceAll(path, "'", quoteEscape)
}

// Unescape reverses Escape.
func Unescape(quoted string) string {
	return strings.ReplaceAll(quoted, quoteEscape, "'")
}

// FormatSeconds formats a duration with at least one fractional digit.
func FormatSeconds(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
