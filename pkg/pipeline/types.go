package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Sequence Types
// =============================================================================

// SequenceItem is one image in an ordered sequence.
type SequenceItem struct {
	ID uuid.UUID

	// SourcePath is the file the user added.
	SourcePath string

	// ProcessedPath is the image actually fed to ffmpeg.
	// It differs from SourcePath for images rendered from documents.
	ProcessedPath string

	// OriginalFilename is the display name, kept for natural sorting.
	OriginalFilename string

	// Created is the creation (or modification) time of the source.
	Created time.Time

	// FromDocument marks images rendered from a document page.
	FromDocument bool
}

// NewSequenceItem creates an item whose processed path is its source path.
func NewSequenceItem(path string, created time.Time) SequenceItem {
	return SequenceItem{
		ID:               uuid.New(),
		SourcePath:       path,
		ProcessedPath:    path,
		OriginalFilename: filepath.Base(path),
		Created:          created,
	}
}

// ConcatEntry is one line pair of an ffmpeg concat list.
// A zero Duration marks the bare trailing entry.
type ConcatEntry struct {
	Path     string
	Duration float64
}

// =============================================================================
// Export Settings
// =============================================================================

// OutputFormat is the output container.
type OutputFormat string

const (
	FormatMP4  OutputFormat = "mp4"
	FormatMOV  OutputFormat = "mov"
	FormatWebM OutputFormat = "webm"
)

// ParseOutputFormat parses a container name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatMP4, FormatMOV, FormatWebM:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrInvalidSettings, s)
}

// Extension returns the file extension without the dot.
func (f OutputFormat) Extension() string {
	return string(f)
}

// SoftwareCodec returns the software encoder used for the format.
func (f OutputFormat) SoftwareCodec() string {
	if f == FormatWebM {
		return "libvpx-vp9"
	}
	return "libx264"
}

// SupportsHardware reports whether the format belongs to the H.264 family,
// the only family with a hardware encoder.
func (f OutputFormat) SupportsHardware() bool {
	return f == FormatMP4 || f == FormatMOV
}

// SupportsFastStart reports whether the container takes -movflags +faststart.
func (f OutputFormat) SupportsFastStart() bool {
	return f == FormatMP4 || f == FormatMOV
}

// ResolutionScale is the final output resolution target.
type ResolutionScale string

const (
	ScaleOriginal ResolutionScale = "original"
	Scale2x       ResolutionScale = "2x"
	Scale4x       ResolutionScale = "4x"
	Scale720p     ResolutionScale = "720p"
	Scale1080p    ResolutionScale = "1080p"
	Scale4K       ResolutionScale = "4k"
)

// ParseResolutionScale parses a resolution name.
func ParseResolutionScale(s string) (ResolutionScale, error) {
	switch r := ResolutionScale(strings.ToLower(s)); r {
	case ScaleOriginal, Scale2x, Scale4x, Scale720p, Scale1080p, Scale4K:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown resolution %q", ErrInvalidSettings, s)
}

// Filter returns the ffmpeg scale filter, or "" for the original size.
func (r ResolutionScale) Filter() string {
	switch r {
	case Scale2x:
		return "scale=iw*2:ih*2"
	case Scale4x:
		return "scale=iw*4:ih*4"
	case Scale720p:
		return "scale=-2:720"
	case Scale1080p:
		return "scale=-2:1080"
	case Scale4K:
		return "scale=-2:2160"
	default:
		return ""
	}
}

// QualityPreset selects crf and encoder speed.
type QualityPreset string

const (
	QualityLow      QualityPreset = "low"
	QualityMedium   QualityPreset = "medium"
	QualityHigh     QualityPreset = "high"
	QualityLossless QualityPreset = "lossless"
)

// ParseQualityPreset parses a quality name.
func ParseQualityPreset(s string) (QualityPreset, error) {
	switch q := QualityPreset(strings.ToLower(s)); q {
	case QualityLow, QualityMedium, QualityHigh, QualityLossless:
		return q, nil
	}
	return "", fmt.Errorf("%w: unknown quality %q", ErrInvalidSettings, s)
}

// CRF returns the constant rate factor for the preset.
func (q QualityPreset) CRF() int {
	switch q {
	case QualityLow:
		return 28
	case QualityMedium:
		return 23
	case QualityLossless:
		return 0
	default:
		return 18
	}
}

// Preset returns the x264 speed preset.
func (q QualityPreset) Preset() string {
	switch q {
	case QualityLow:
		return "faster"
	case QualityMedium:
		return "medium"
	case QualityLossless:
		return "veryslow"
	default:
		return "slow"
	}
}

// FrameRate is the output frame rate.
type FrameRate int

const (
	FrameRate24 FrameRate = 24
	FrameRate30 FrameRate = 30
	FrameRate60 FrameRate = 60
)

// Valid reports whether r is one of the supported rates.
func (r FrameRate) Valid() bool {
	return r == FrameRate24 || r == FrameRate30 || r == FrameRate60
}

// StackingMode is the comparison layout.
type StackingMode string

const (
	StackNone       StackingMode = "none"
	StackHorizontal StackingMode = "horizontal"
	StackVertical   StackingMode = "vertical"
)

// ParseStackingMode parses a stacking name.
func ParseStackingMode(s string) (StackingMode, error) {
	switch m := StackingMode(strings.ToLower(s)); m {
	case "", StackNone:
		return StackNone, nil
	case StackHorizontal, StackVertical:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown stacking mode %q", ErrInvalidSettings, s)
}

// NormalizationResolution is the frame size both sequences are letterboxed
// into before stacking.
type NormalizationResolution string

const (
	NormalizeOriginal NormalizationResolution = "original"
	Normalize720p     NormalizationResolution = "720p"
	Normalize1080p    NormalizationResolution = "1080p"
	Normalize4K       NormalizationResolution = "4k"
)

// ParseNormalizationResolution parses a normalization resolution name.
func ParseNormalizationResolution(s string) (NormalizationResolution, error) {
	switch n := NormalizationResolution(strings.ToLower(s)); n {
	case "", NormalizeOriginal:
		return NormalizeOriginal, nil
	case Normalize720p, Normalize1080p, Normalize4K:
		return n, nil
	}
	return "", fmt.Errorf("%w: unknown normalization resolution %q", ErrInvalidSettings, s)
}

// Size returns fixed dimensions. ok is false for NormalizeOriginal, whose
// size depends on the first image.
func (n NormalizationResolution) Size() (width, height int, ok bool) {
	switch n {
	case Normalize720p:
		return 1280, 720, true
	case Normalize1080p:
		return 1920, 1080, true
	case Normalize4K:
		return 3840, 2160, true
	default:
		return 0, 0, false
	}
}

// ExportSettings holds every knob of an export.
type ExportSettings struct {
	Format        OutputFormat
	Resolution    ResolutionScale
	Quality       QualityPreset
	FrameRate     FrameRate
	Hardware      bool
	Stacking      StackingMode
	Spacing       int
	Normalization NormalizationResolution
}

// DefaultExportSettings returns the settings used when nothing is configured.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Format:        FormatMP4,
		Resolution:    ScaleOriginal,
		Quality:       QualityHigh,
		FrameRate:     FrameRate30,
		Stacking:      StackNone,
		Normalization: Normalize720p,
	}
}

// Validate checks that every field holds a known value.
func (s ExportSettings) Validate() error {
	if _, err := ParseOutputFormat(string(s.Format)); err != nil {
		return err
	}
	if _, err := ParseResolutionScale(string(s.Resolution)); err != nil {
		return err
	}
	if _, err := ParseQualityPreset(string(s.Quality)); err != nil {
		return err
	}
	if !s.FrameRate.Valid() {
		return fmt.Errorf("%w: unsupported frame rate %d", ErrInvalidSettings, s.FrameRate)
	}
	if _, err := ParseStackingMode(string(s.Stacking)); err != nil {
		return err
	}
	if _, err := ParseNormalizationResolution(string(s.Normalization)); err != nil {
		return err
	}
	return nil
}

// Stacked reports whether a comparison layout is requested.
func (s ExportSettings) Stacked() bool {
	return s.Stacking == StackHorizontal || s.Stacking == StackVertical
}

// =============================================================================
// Encoder Inputs
// =============================================================================

// SourceKind tells the argument builder how an input must be read.
type SourceKind int

const (
	// SourceConcatList is a concat demuxer list with duration directives.
	SourceConcatList SourceKind = iota
	// SourceNormalizedVideo is a fixed-size, fixed-rate intermediate video.
	SourceNormalizedVideo
)

// EncodeSource is one input of the final encode.
type EncodeSource struct {
	Kind SourceKind
	Path string
}

// =============================================================================
// Normalize Stage Types
// =============================================================================

// NormalizeInput describes one sequence normalization.
type NormalizeInput struct {
	Binary        string
	ConcatPath    string
	OutputPath    string
	FrameDuration float64
	Width         int
	Height        int
	// Progress is optional.
	Progress   ProgressFunc
	FrameCount int
}

// NormalizeResult is the normalized intermediate video.
type NormalizeResult struct {
	VideoPath  string
	SimpleList string
	Elapsed    time.Duration
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput describes the final encode.
type EncodeInput struct {
	Binary     string
	Primary    EncodeSource
	Secondary  *EncodeSource
	OutputPath string
	Settings   ExportSettings

	// Width and Height are the normalized frame size, used for spacing.
	Width  int
	Height int

	// FrameCount drives the progress heuristic.
	FrameCount int
	Progress   ProgressFunc
}

// EncodeResult describes the produced video.
type EncodeResult struct {
	OutputPath string
	Args       []string
	Codec      string
	Hardware   bool
	Elapsed    time.Duration
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput describes one frame extraction.
type ExtractInput struct {
	Binary    string
	VideoPath string
	OutputDir string

	// Duration is the probed source length; zero disables fractional progress.
	Duration time.Duration
	Progress ProgressFunc
}

// ExtractResult lists the extracted frames in order.
type ExtractResult struct {
	Frames  []string
	Elapsed time.Duration
}
