package orchestrator

import (
	"context"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/progress"
	"github.com/user/sequencestitch/pkg/stages/extract"
)

// ImportRequest describes one video import.
type ImportRequest struct {
	VideoPath string

	// Progress is optional.
	Progress pipeline.ProgressFunc
}

// ImportResult lists the extracted frames. Dir is owned by the caller.
type ImportResult struct {
	VideoPath string
	Dir       string
	Frames    []string
	// Duration is zero when the source could not be probed.
	Duration time.Duration
	Elapsed  time.Duration
}

// Import extracts the distinct frames of a video into a new directory.
func (o *Orchestrator) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	start := time.Now()
	result := ImportResult{VideoPath: req.VideoPath}

	if err := extract.CheckSourceSize(o.fs, req.VideoPath, o.config.MaxSourceBytes); err != nil {
		o.logger.Error(l10n.F("Cannot import %s: %s", req.VideoPath, err))
		return result, err
	}

	binary, err := o.locator.FFmpeg()
	if err != nil {
		o.logger.Error(l10n.F("Failed to locate ffmpeg: %s", err))
		return result, err
	}
	o.logger.Info(l10n.F("Using ffmpeg at %s", binary))

	if info := o.probe(ctx, req.VideoPath); info != nil {
		result.Duration = info.Duration
		o.logger.Info(l10n.F("Source duration: %.2f s", info.Duration.Seconds()))
	}

	reporter := progress.NewReporter(req.Progress)
	reporter.Bind(ctx)
	reporter.Reset()

	dir, err := o.createWorkDir(ImportDirPrefix)
	if err != nil {
		reporter.Stop()
		return result, err
	}

	o.logger.Info(l10n.F("Extracting frames from %s", req.VideoPath))
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{
		Binary:    binary,
		VideoPath: req.VideoPath,
		OutputDir: dir,
		Duration:  result.Duration,
		Progress:  reporter.Report,
	})
	if err != nil {
		reporter.Stop()
		o.logFailure("Failed to extract frames: %s", err)
		if rmErr := o.fs.RemoveAll(dir); rmErr != nil {
			o.logger.Debug(l10n.F("Failed to remove %s: %s", dir, rmErr))
		}
		return result, wrapStage("extract", err)
	}

	result.Dir = dir
	result.Frames = extracted.Frames
	result.Elapsed = time.Since(start)

	reporter.Complete()
	o.logger.Info(l10n.F("Import completed: %d frames in %s", len(result.Frames), dir))
	return result, nil
}
