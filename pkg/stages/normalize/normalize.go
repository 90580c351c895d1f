// Package normalize implements the sequence normalization stage.
//
// Before two sequences can be stacked, each one is re-encoded into an
// intermediate video with a fixed frame size and a constant frame rate.
// Mixed image sizes would otherwise reconfigure the stacking filter graph
// mid-stream.
package normalize

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/classify"
	"github.com/user/sequencestitch/pkg/concat"
	"github.com/user/sequencestitch/pkg/ffargs"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/progress"
)

// SimplePrefix is prepended to the concat list name for the duration-free copy.
const SimplePrefix = "simple_"

// Stage normalizes one image sequence.
type Stage struct {
	runner ports.ProcessRunner
	fs     ports.FileSystem
	sink   ports.DebugSink
	logger ports.Logger

	// Heuristic tunes the wall-time progress estimate. FrameCount and
	// Hardware are filled in per run.
	Heuristic progress.Heuristic
}

// New creates a new normalize stage.
func New(runner ports.ProcessRunner, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		runner: runner,
		fs:     fs,
		sink:   sink,
		logger: logger.WithComponent("normalize"),
	}
}

// Execute rewrites the concat list without durations and encodes it into
// input.OutputPath.
func (s *Stage) Execute(ctx context.Context, input pipeline.NormalizeInput) (pipeline.NormalizeResult, error) {
	result := pipeline.NormalizeResult{VideoPath: input.OutputPath}
	start := time.Now()

	data, err := s.fs.ReadFile(input.ConcatPath)
	if err != nil {
		return result, fmt.Errorf("read concat list: %w", err)
	}
	entries, err := concat.Parse(data)
	if err != nil {
		return result, fmt.Errorf("parse concat list: %w", err)
	}
	images := concat.ImagePaths(entries)
	if len(images) == 0 {
		return result, pipeline.ErrEmptyInput
	}

	simple := filepath.Join(filepath.Dir(input.ConcatPath), SimplePrefix+filepath.Base(input.ConcatPath))
	simpleData := concat.RenderSimple(images)
	if err := s.fs.WriteFile(simple, simpleData); err != nil {
		return result, &pipeline.ArtifactWriteError{Path: simple, Err: err}
	}
	result.SimpleList = simple

	args, err := ffargs.NormalizeArgs(simple, input.OutputPath, input.FrameDuration, input.Width, input.Height)
	if err != nil {
		return result, err
	}
	inv := ports.Invocation{
		Binary: input.Binary,
		Args:   args,
		Output: input.OutputPath,
	}

	name := stageName(input.OutputPath)
	if s.sink.Enabled() {
		if err := s.sink.SaveConcatList(filepath.Base(simple), simpleData); err != nil {
			s.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
		if err := s.sink.SaveCommand(name, inv); err != nil {
			s.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
	}

	s.logger.Debug(l10n.F("Normalizing %d images to %dx%d", len(images), input.Width, input.Height))

	frameCount := input.FrameCount
	if frameCount <= 0 {
		frameCount = len(images)
	}
	h := s.Heuristic
	h.FrameCount = frameCount
	h.Hardware = false

	runResult, err := progress.RunEstimated(ctx, s.runner, inv, h, input.Progress)
	if err != nil {
		return result, fmt.Errorf("start ffmpeg: %w", err)
	}
	if s.sink.Enabled() {
		if err := s.sink.SaveEncoderLog(name, runResult); err != nil {
			s.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
	}

	err = classify.Classify(classify.Outcome{
		Stage:      name,
		ExitCode:   runResult.ExitCode,
		Stderr:     runResult.Stderr,
		Cancelled:  runResult.Cancelled,
		OutputPath: input.OutputPath,
	}, s.exists)
	if err != nil {
		return result, err
	}

	result.Elapsed = time.Since(start)
	if input.Progress != nil {
		input.Progress(1)
	}
	return result, nil
}

func (s *Stage) exists(path string) bool {
	ok, err := s.fs.Exists(path)
	return err == nil && ok
}

// stageName derives the debug artifact name from the output file,
// e.g. "primary_normalized".
func stageName(output string) string {
	base := filepath.Base(output)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
