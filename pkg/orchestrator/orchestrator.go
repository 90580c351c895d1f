// Package orchestrator coordinates the export and import pipelines.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// Temp directory prefixes, one directory per operation.
const (
	ExportDirPrefix = "SequenceStitch_"
	ImportDirPrefix = "Import_"
)

// Artifact names inside an export directory.
const (
	PrimaryListName      = "input.txt"
	SecondaryListName    = "input_secondary.txt"
	PrimaryNormalized    = "primary_normalized.mp4"
	SecondaryNormalized  = "secondary_normalized.mp4"
	fallbackNormalWidth  = 1920
	fallbackNormalHeight = 1080
)

// Config contains the orchestrator settings that are not per request.
type Config struct {
	// TempDir is the root for per-operation directories. Empty means os.TempDir().
	TempDir string

	// KeepArtifacts leaves the operation directory in place after export.
	KeepArtifacts bool

	// MaxSourceBytes rejects larger import sources. Zero disables the check.
	MaxSourceBytes int64
}

// Orchestrator coordinates the execution of the pipeline stages.
type Orchestrator struct {
	normalizeStage pipeline.Stage[pipeline.NormalizeInput, pipeline.NormalizeResult]
	encodeStage    pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	extractStage   pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	locator        ports.BinaryLocator
	fs             ports.FileSystem
	thumbs         ports.Thumbnailer
	prober         ports.MediaProber
	sink           ports.DebugSink
	logger         ports.Logger
	config         Config

	newID func() string
}

// New creates a new Orchestrator. thumbs and prober may be nil.
func New(
	normalizeStage pipeline.Stage[pipeline.NormalizeInput, pipeline.NormalizeResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	locator ports.BinaryLocator,
	fs ports.FileSystem,
	thumbs ports.Thumbnailer,
	prober ports.MediaProber,
	sink ports.DebugSink,
	logger ports.Logger,
	config Config,
) *Orchestrator {
	return &Orchestrator{
		normalizeStage: normalizeStage,
		encodeStage:    encodeStage,
		extractStage:   extractStage,
		locator:        locator,
		fs:             fs,
		thumbs:         thumbs,
		prober:         prober,
		sink:           sink,
		logger:         logger,
		config:         config,
		newID:          uuid.NewString,
	}
}

func (o *Orchestrator) tempRoot() string {
	if o.config.TempDir != "" {
		return o.config.TempDir
	}
	return os.TempDir()
}

// createWorkDir creates a fresh operation directory.
func (o *Orchestrator) createWorkDir(prefix string) (string, error) {
	dir := filepath.Join(o.tempRoot(), prefix+o.newID())
	if err := o.fs.MkdirAll(dir); err != nil {
		return "", &pipeline.ArtifactWriteError{Path: dir, Err: err}
	}
	o.logger.Debug(l10n.F("Created working directory %s", dir))
	return dir, nil
}

// cleanup removes dir unless artifacts are kept. Failures are only logged.
func (o *Orchestrator) cleanup(dir string) {
	if o.config.KeepArtifacts || o.sink.Enabled() {
		o.logger.Info(l10n.F("Keeping artifacts in %s", dir))
		return
	}
	if err := o.fs.RemoveAll(dir); err != nil {
		o.logger.Debug(l10n.F("Failed to remove %s: %s", dir, err))
	}
}

// probe returns metadata for path when a prober is configured.
func (o *Orchestrator) probe(ctx context.Context, path string) *ports.MediaInfo {
	if o.prober == nil {
		return nil
	}
	info, err := o.prober.Probe(ctx, path)
	if err != nil {
		o.logger.Debug(l10n.F("Failed to probe %s: %s", path, err))
		return nil
	}
	return &info
}

func wrapStage(stage string, err error) error {
	return fmt.Errorf("%s stage: %w", stage, err)
}
