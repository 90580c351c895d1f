// Package extract implements the frame extraction stage used by import.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/classify"
	"github.com/user/sequencestitch/pkg/ffargs"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/progress"
)

// StageName identifies extraction in errors and debug artifacts.
const StageName = "extract"

// DefaultMaxSourceBytes is the largest video import accepts.
const DefaultMaxSourceBytes int64 = 500 << 20

// sourceLabel replaces the source path in user-facing messages.
const sourceLabel = "video file"

// Stage decodes a video into numbered still images.
type Stage struct {
	runner ports.ProcessRunner
	fs     ports.FileSystem
	sink   ports.DebugSink
	logger ports.Logger
	opts   ffargs.ExtractOptions
}

// New creates a new extract stage.
func New(runner ports.ProcessRunner, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, opts ffargs.ExtractOptions) *Stage {
	return &Stage{
		runner: runner,
		fs:     fs,
		sink:   sink,
		logger: logger.WithComponent("extract"),
		opts:   opts,
	}
}

// Execute extracts frames from input.VideoPath into input.OutputDir.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{}
	start := time.Now()

	inv := ports.Invocation{
		Binary: input.Binary,
		Args:   ffargs.ExtractArgs(input.VideoPath, input.OutputDir, s.opts),
		Output: input.OutputDir,
	}
	if s.sink.Enabled() {
		if err := s.sink.SaveCommand(StageName, inv); err != nil {
			s.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
	}

	measured := progress.Measured{Total: input.Duration, Report: input.Progress}
	s.logger.Debug(l10n.F("Extracting frames at %s", ffargs.ExtractFilter(s.opts)))

	runResult, err := s.runner.Run(ctx, inv, ports.RunOptions{
		OnStdoutLine: measured.Observe,
	})
	if err != nil {
		return result, fmt.Errorf("start ffmpeg: %w", err)
	}
	if s.sink.Enabled() {
		if err := s.sink.SaveEncoderLog(StageName, runResult); err != nil {
			s.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
	}

	err = classify.Classify(classify.Outcome{
		Stage:      StageName,
		ExitCode:   runResult.ExitCode,
		Stderr:     runResult.Stderr,
		Cancelled:  runResult.Cancelled,
		Redactions: map[string]string{input.VideoPath: sourceLabel},
	}, nil)
	if err != nil {
		return result, err
	}

	frames, err := s.collect(input.OutputDir)
	if err != nil {
		return result, err
	}
	if len(frames) == 0 {
		return result, fmt.Errorf("%s: %w: no frames in %s", StageName, pipeline.ErrOutputNotProduced, input.OutputDir)
	}
	s.logger.Debug(l10n.F("Extracted %d frames", len(frames)))

	result.Frames = frames
	result.Elapsed = time.Since(start)
	if input.Progress != nil {
		input.Progress(1)
	}
	return result, nil
}

// collect lists the PNG files in dir sorted by name.
func (s *Stage) collect(dir string) ([]string, error) {
	names, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	var frames []string
	for _, name := range names {
		if strings.EqualFold(filepath.Ext(name), ".png") {
			frames = append(frames, name)
		}
	}
	sort.Strings(frames)
	for i, name := range frames {
		frames[i] = filepath.Join(dir, name)
	}
	return frames, nil
}

// CheckSourceSize rejects videos larger than limit bytes.
// A limit of zero or less disables the check.
func CheckSourceSize(fs ports.FileSystem, path string, limit int64) error {
	if limit <= 0 {
		return nil
	}
	size, err := fs.Size(path)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if size > limit {
		return fmt.Errorf("%w: %s exceeds the %s limit", pipeline.ErrSourceTooLarge, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
	}
	return nil
}
