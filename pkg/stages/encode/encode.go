// Package encode implements the final video encoding stage.
package encode

import (
	"context"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/classify"
	"github.com/user/sequencestitch/pkg/ffargs"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/progress"
)

// StageName identifies the final encode in errors and debug artifacts.
const StageName = "encode"

// Stage encodes a concat list, or two normalized videos, into the output file.
type Stage struct {
	runner  ports.ProcessRunner
	fs      ports.FileSystem
	sink    ports.DebugSink
	logger  ports.Logger
	builder *ffargs.Builder

	// Heuristic tunes the wall-time progress estimate. FrameCount and
	// Hardware are filled in per run.
	Heuristic progress.Heuristic
}

// NewStage creates a new encode stage.
func NewStage(runner ports.ProcessRunner, fs ports.FileSystem, sink ports.DebugSink, builder *ffargs.Builder, logger ports.Logger) *Stage {
	if builder == nil {
		builder = ffargs.NewBuilder()
	}
	return &Stage{
		runner:  runner,
		fs:      fs,
		sink:    sink,
		logger:  logger.WithComponent("encode"),
		builder: builder,
	}
}

// Execute runs the final ffmpeg encode.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{OutputPath: input.OutputPath}
	start := time.Now()

	args, err := s.builder.Build(ffargs.Request{
		Primary:   input.Primary,
		Secondary: input.Secondary,
		Output:    input.OutputPath,
		Settings:  input.Settings,
		Width:     input.Width,
		Height:    input.Height,
	})
	if err != nil {
		return result, fmt.Errorf("build arguments: %w", err)
	}
	result.Args = args
	result.Codec, result.Hardware = s.builder.Codec(input.Settings)

	inv := ports.Invocation{
		Binary: input.Binary,
		Args:   args,
		Output: input.OutputPath,
	}
	if s.sink.Enabled() {
		if err := s.sink.SaveCommand(StageName, inv); err != nil {
			s.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
	}

	s.logger.Debug(l10n.F("Encoding with %s", result.Codec))

	h := s.Heuristic
	h.FrameCount = input.FrameCount
	h.Hardware = result.Hardware

	runResult, err := progress.RunEstimated(ctx, s.runner, inv, h, input.Progress)
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
		OutputPath: input.OutputPath,
	}, func(path string) bool {
		ok, err := s.fs.Exists(path)
		return err == nil && ok
	})
	if err != nil {
		return result, err
	}

	result.Elapsed = time.Since(start)
	if input.Progress != nil {
		input.Progress(1)
	}
	return result, nil
}
