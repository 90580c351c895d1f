package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/concat"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/progress"
)

// ExportRequest describes one export.
type ExportRequest struct {
	// Primary holds the image paths of the main sequence, in order.
	Primary []string
	// Secondary is only used when Settings requests stacking.
	Secondary []string

	FrameDuration float64
	Settings      pipeline.ExportSettings
	OutputPath    string

	// Progress is optional.
	Progress pipeline.ProgressFunc
}

// ExportResult contains the results of an export for summary generation.
type ExportResult struct {
	OutputPath string
	Codec      string
	Hardware   bool
	Args       []string

	PrimaryCount   int
	SecondaryCount int
	Stacked        bool

	// NormalizedWidth and NormalizedHeight are set for stacked exports.
	NormalizedWidth  int
	NormalizedHeight int

	FrameDuration float64
	// ExpectedDuration is the sum of the display durations.
	ExpectedDuration time.Duration
	FileSize         int64
	// Info is nil when the output could not be probed.
	Info *ports.MediaInfo

	WorkDir string
	Elapsed time.Duration
}

// Export turns the image sequences into a video file.
func (o *Orchestrator) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	start := time.Now()
	result := ExportResult{
		OutputPath:    req.OutputPath,
		PrimaryCount:  len(req.Primary),
		FrameDuration: req.FrameDuration,
	}

	// Pre-flight checks run before anything touches the disk.
	if len(req.Primary) == 0 {
		return result, pipeline.ErrEmptyInput
	}
	if req.FrameDuration <= 0 {
		return result, fmt.Errorf("%w: frame duration must be positive, got %v", pipeline.ErrInvalidSettings, req.FrameDuration)
	}
	if err := req.Settings.Validate(); err != nil {
		return result, err
	}
	settings := req.Settings
	stacked := settings.Stacked() && len(req.Secondary) > 0
	if settings.Stacked() && !stacked {
		o.logger.Warn(l10n.T("Secondary sequence is empty, exporting the primary sequence only"))
		settings.Stacking = pipeline.StackNone
	}
	result.Stacked = stacked
	if stacked {
		result.SecondaryCount = len(req.Secondary)
	}

	binary, err := o.locator.FFmpeg()
	if err != nil {
		o.logger.Error(l10n.F("Failed to locate ffmpeg: %s", err))
		return result, err
	}
	o.logger.Info(l10n.F("Using ffmpeg at %s", binary))

	reporter := progress.NewReporter(req.Progress)
	reporter.Bind(ctx)
	reporter.Reset()

	dir, err := o.createWorkDir(ExportDirPrefix)
	if err != nil {
		reporter.Stop()
		return result, err
	}
	result.WorkDir = dir
	defer o.cleanup(dir)

	if err := o.removeExisting(req.OutputPath); err != nil {
		reporter.Stop()
		return result, err
	}

	// 1. Concat lists
	primaryList := filepath.Join(dir, PrimaryListName)
	if err := o.writeList(primaryList, req.Primary, req.FrameDuration); err != nil {
		reporter.Stop()
		return result, err
	}
	var secondaryList string
	if stacked {
		secondaryList = filepath.Join(dir, SecondaryListName)
		if err := o.writeList(secondaryList, req.Secondary, req.FrameDuration); err != nil {
			reporter.Stop()
			return result, err
		}
	}

	encodeInput := pipeline.EncodeInput{
		Binary:     binary,
		Primary:    pipeline.EncodeSource{Kind: pipeline.SourceConcatList, Path: primaryList},
		OutputPath: req.OutputPath,
		Settings:   settings,
		FrameCount: len(req.Primary),
		Progress:   reporter.Report,
	}

	// 2. Normalization (stacked exports only)
	if stacked {
		width, height := o.normalizationSize(settings.Normalization, req.Primary[0])
		result.NormalizedWidth, result.NormalizedHeight = width, height

		o.logger.Info(l10n.F("Normalizing %d + %d images to %dx%d", len(req.Primary), len(req.Secondary), width, height))
		videos, err := o.normalizeBoth(ctx, binary, dir,
			[2]string{primaryList, secondaryList},
			[2]int{len(req.Primary), len(req.Secondary)},
			req.FrameDuration, width, height,
			progress.Span(reporter.Report, 0, 0.5))
		if err != nil {
			reporter.Stop()
			o.logFailure("Failed to normalize sequences: %s", err)
			return result, wrapStage("normalize", err)
		}
		o.logger.Info(l10n.T("Normalization completed"))

		encodeInput.Primary = pipeline.EncodeSource{Kind: pipeline.SourceNormalizedVideo, Path: videos[0]}
		encodeInput.Secondary = &pipeline.EncodeSource{Kind: pipeline.SourceNormalizedVideo, Path: videos[1]}
		encodeInput.Width, encodeInput.Height = width, height
		if len(req.Secondary) > encodeInput.FrameCount {
			encodeInput.FrameCount = len(req.Secondary)
		}
		encodeInput.Progress = progress.Span(reporter.Report, 0.5, 1)
	}

	// 3. Encode
	o.logger.Info(l10n.F("Encoding %s video", settings.Format))
	encoded, err := o.encodeStage.Execute(ctx, encodeInput)
	if err != nil {
		reporter.Stop()
		o.logFailure("Failed to encode video: %s", err)
		return result, wrapStage("encode", err)
	}
	result.Codec = encoded.Codec
	result.Hardware = encoded.Hardware
	result.Args = encoded.Args

	frames := len(req.Primary)
	if result.SecondaryCount > frames {
		frames = result.SecondaryCount
	}
	result.ExpectedDuration = time.Duration(float64(frames) * req.FrameDuration * float64(time.Second))
	if size, err := o.fs.Size(req.OutputPath); err == nil {
		result.FileSize = size
	}
	result.Info = o.probe(ctx, req.OutputPath)
	result.Elapsed = time.Since(start)

	reporter.Complete()
	o.logger.Info(l10n.F("Export completed: %s", req.OutputPath))
	return result, nil
}

// removeExisting deletes a previous output so a stale file is never
// mistaken for a fresh one.
func (o *Orchestrator) removeExisting(path string) error {
	exists, err := o.fs.Exists(path)
	if err != nil || !exists {
		return nil
	}
	if err := o.fs.Remove(path); err != nil {
		return &pipeline.ArtifactWriteError{Path: path, Err: err}
	}
	o.logger.Debug(l10n.F("Removed existing output %s", path))
	return nil
}

func (o *Orchestrator) writeList(path string, images []string, frameDuration float64) error {
	entries, err := concat.Build(images, frameDuration)
	if err != nil {
		return err
	}
	if err := concat.Write(o.fs, path, entries); err != nil {
		return err
	}
	if o.sink.Enabled() {
		if err := o.sink.SaveConcatList(filepath.Base(path), concat.Render(entries)); err != nil {
			o.logger.Warn(l10n.F("Failed to save debug artifact: %s", err))
		}
	}
	o.logger.Debug(l10n.F("Wrote %s with %d images", path, len(images)))
	return nil
}

// normalizationSize resolves the intermediate frame size. Original uses the
// first image rounded up to even dimensions.
func (o *Orchestrator) normalizationSize(n pipeline.NormalizationResolution, first string) (int, int) {
	if w, h, ok := n.Size(); ok {
		return w, h
	}
	if o.thumbs != nil {
		w, h, err := o.thumbs.Dimensions(first)
		if err == nil && w > 0 && h > 0 {
			return evenCeil(w), evenCeil(h)
		}
		o.logger.Warn(l10n.F("Could not read image size of %s, using %dx%d", first, fallbackNormalWidth, fallbackNormalHeight))
	}
	return fallbackNormalWidth, fallbackNormalHeight
}

func evenCeil(v int) int {
	return v + v%2
}

// normalizeBoth runs both normalizations concurrently. The first failure
// cancels the sibling; a real failure wins over the resulting cancellation.
func (o *Orchestrator) normalizeBoth(
	ctx context.Context,
	binary, dir string,
	lists [2]string,
	counts [2]int,
	frameDuration float64,
	width, height int,
	report pipeline.ProgressFunc,
) ([2]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outputs := [2]string{
		filepath.Join(dir, PrimaryNormalized),
		filepath.Join(dir, SecondaryNormalized),
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		fractions [2]float64
		errs      [2]error
	)
	for i := range lists {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := o.normalizeStage.Execute(ctx, pipeline.NormalizeInput{
				Binary:        binary,
				ConcatPath:    lists[i],
				OutputPath:    outputs[i],
				FrameDuration: frameDuration,
				Width:         width,
				Height:        height,
				FrameCount:    counts[i],
				Progress: func(v float64) {
					mu.Lock()
					fractions[i] = v
					combined := (fractions[0] + fractions[1]) / 2
					mu.Unlock()
					report(combined)
				},
			})
			if err != nil {
				errs[i] = err
				cancel()
			}
		}(i)
	}
	wg.Wait()

	return outputs, firstFailure(errs[:])
}

// firstFailure prefers an error that is not a cancellation.
func firstFailure(errs []error) error {
	var cancelled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, pipeline.ErrCancelled) {
			return err
		}
		if cancelled == nil {
			cancelled = err
		}
	}
	return cancelled
}

// logFailure logs cancellations at Info and everything else at Error.
func (o *Orchestrator) logFailure(format string, err error) {
	if errors.Is(err, pipeline.ErrCancelled) {
		o.logger.Info(l10n.T("Operation cancelled"))
		return
	}
	o.logger.Error(l10n.F(format, err))
}
