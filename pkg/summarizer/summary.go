// Package summarizer provides summary generation for export and import results.
package summarizer

import "time"

// Kind tells which operation a Summary describes.
type Kind string

const (
	KindExport Kind = "export"
	KindImport Kind = "import"
)

// Summary contains all data collected during one operation.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Kind        Kind

	// Input sequences or video
	Source SourceInfo

	// Export settings (export only)
	Settings Settings

	// Produced video or frames
	Output OutputInfo
}

// SourceInfo describes what went into the operation.
type SourceInfo struct {
	PrimaryCount   int
	SecondaryCount int
	FrameDuration  float64

	// VideoPath is the import source.
	VideoPath string
	// VideoDuration is the probed import source length.
	VideoDuration time.Duration
}

// Settings contains the export configuration.
type Settings struct {
	Format        string
	Resolution    string
	Quality       string
	FrameRate     int
	Codec         string
	Hardware      bool
	Stacking      string
	Spacing       int
	Normalization string
	// NormalizedWidth and NormalizedHeight are set for stacked exports.
	NormalizedWidth  int
	NormalizedHeight int
}

// OutputInfo contains information about the result.
type OutputInfo struct {
	Path     string
	Duration time.Duration
	FileSize int64
	Width    int
	Height   int
	Codec    string

	// FrameCount is the number of images written by an import.
	FrameCount int

	Elapsed time.Duration
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary(kind Kind) *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
		Kind:        kind,
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder(kind Kind) *Builder {
	return &Builder{
		summary: NewSummary(kind),
	}
}

// WithSequences sets the exported sequence sizes.
func (b *Builder) WithSequences(primary, secondary int, frameDuration float64) *Builder {
	b.summary.Source.PrimaryCount = primary
	b.summary.Source.SecondaryCount = secondary
	b.summary.Source.FrameDuration = frameDuration
	return b
}

// WithSourceVideo sets the imported video.
func (b *Builder) WithSourceVideo(path string, duration time.Duration) *Builder {
	b.summary.Source.VideoPath = path
	b.summary.Source.VideoDuration = duration
	return b
}

// WithSettings sets export settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
