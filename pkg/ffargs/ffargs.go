// Package ffargs builds ffmpeg argument vectors for the final export.
package ffargs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/sequencestitch/pkg/pipeline"
)

// SafetyFilter rounds both dimensions down to even numbers; libx264 and
// yuv420p reject odd sizes.
const SafetyFilter = "scale=trunc(iw/2)*2:trunc(ih/2)*2"

// StackedLabel is the filter graph output mapped into the file.
const StackedLabel = "[stacked]"

var (
	// ErrTimingOrder is returned when an output frame rate would be applied
	// to a concat input. The concat durations must establish timing first.
	ErrTimingOrder = errors.New("ffargs: -r must not precede concat input")

	// ErrMismatchedInputs is returned for input combinations the export
	// never produces.
	ErrMismatchedInputs = errors.New("ffargs: mismatched inputs")

	// ErrInvalidSpacing is returned when an overlap swallows a whole frame.
	ErrInvalidSpacing = errors.New("ffargs: invalid stacking spacing")
)

// HardwareCodec is a platform hardware encoder and its extra flags.
type HardwareCodec struct {
	Name string
	Args []string
}

// HardwareTable looks up the hardware encoder for a format.
type HardwareTable func(format pipeline.OutputFormat) (HardwareCodec, bool)

// NoHardware is a HardwareTable without any hardware encoders.
func NoHardware(pipeline.OutputFormat) (HardwareCodec, bool) {
	return HardwareCodec{}, false
}

// Request describes one final encode.
type Request struct {
	Primary   pipeline.EncodeSource
	Secondary *pipeline.EncodeSource
	Output    string
	Settings  pipeline.ExportSettings

	// Width and Height are the normalized frame size. They are only needed
	// when stacking with nonzero spacing.
	Width  int
	Height int
}

// Builder builds argument vectors.
type Builder struct {
	Hardware HardwareTable
}

// NewBuilder returns a Builder using the hardware encoders of this platform.
func NewBuilder() *Builder {
	return &Builder{Hardware: PlatformHardware}
}

// Codec returns the video encoder the settings resolve to.
func (b *Builder) Codec(s pipeline.ExportSettings) (name string, hardware bool) {
	if hw, ok := b.hardwareFor(s); ok {
		return hw.Name, true
	}
	return s.Format.SoftwareCodec(), false
}

func (b *Builder) hardwareFor(s pipeline.ExportSettings) (HardwareCodec, bool) {
	if !s.Hardware || !s.Format.SupportsHardware() || b.Hardware == nil {
		return HardwareCodec{}, false
	}
	return b.Hardware(s.Format)
}

// Build returns the arguments for req, excluding the binary.
func (b *Builder) Build(req Request) ([]string, error) {
	s := req.Settings
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var args []string
	switch req.Primary.Kind {
	case pipeline.SourceConcatList:
		if req.Secondary != nil {
			return nil, fmt.Errorf("%w: concat input cannot be stacked", ErrMismatchedInputs)
		}
		// No -r here: the duration directives own the timing.
		args = append(args, "-f", "concat", "-safe", "0", "-i", req.Primary.Path)

		filter := s.Resolution.Filter()
		if filter == "" {
			filter = SafetyFilter
		}
		args = append(args, "-vf", filter)

	case pipeline.SourceNormalizedVideo:
		if req.Secondary == nil || req.Secondary.Kind != pipeline.SourceNormalizedVideo {
			return nil, fmt.Errorf("%w: normalized input needs a normalized secondary", ErrMismatchedInputs)
		}
		if !s.Stacked() {
			return nil, fmt.Errorf("%w: normalized inputs need a stacking mode", ErrMismatchedInputs)
		}
		graph, err := StackGraph(s.Stacking, s.Spacing, req.Width, req.Height)
		if err != nil {
			return nil, err
		}
		args = append(args,
			"-i", req.Primary.Path,
			"-i", req.Secondary.Path,
			"-filter_complex", graph,
			"-map", StackedLabel,
		)

	default:
		return nil, fmt.Errorf("%w: unknown source kind %d", ErrMismatchedInputs, req.Primary.Kind)
	}

	args = append(args, b.codecArgs(s)...)
	args = append(args, "-r", strconv.Itoa(int(s.FrameRate)))
	args = append(args, "-pix_fmt", "yuv420p")
	if s.Format.SupportsFastStart() {
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, "-y", req.Output)

	if req.Primary.Kind == pipeline.SourceConcatList {
		if err := CheckTimingOrder(args); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func (b *Builder) codecArgs(s pipeline.ExportSettings) []string {
	q := s.Quality
	if s.Format == pipeline.FormatWebM {
		return []string{"-c:v", "libvpx-vp9", "-crf", strconv.Itoa(q.CRF()), "-b:v", "0"}
	}

	if hw, ok := b.hardwareFor(s); ok {
		return append([]string{"-c:v", hw.Name}, hw.Args...)
	}

	args := []string{"-c:v", "libx264", "-preset", q.Preset(), "-crf", strconv.Itoa(q.CRF())}
	// The main profile cannot carry lossless streams.
	if q != pipeline.QualityLossless {
		args = append(args, "-profile:v", "main")
	}
	return args
}

// CheckTimingOrder fails if any -r appears before the last -i.
func CheckTimingOrder(args []string) error {
	lastInput := -1
	for i, a := range args {
		if a == "-i" {
			lastInput = i
		}
	}
	for i := 0; i < lastInput; i++ {
		if args[i] == "-r" {
			return ErrTimingOrder
		}
	}
	return nil
}

// StackGraph returns the filter graph placing input 1 next to input 0.
// Zero spacing uses hstack/vstack. Other spacing pads input 0 onto a larger
// black canvas and overlays input 1 at an offset; a negative spacing
// overlaps the two, with input 1 drawn on top.
func StackGraph(mode pipeline.StackingMode, spacing, width, height int) (string, error) {
	stack := "hstack"
	if mode == pipeline.StackVertical {
		stack = "vstack"
	} else if mode != pipeline.StackHorizontal {
		return "", fmt.Errorf("%w: stacking mode %q", ErrMismatchedInputs, mode)
	}

	if spacing == 0 {
		return fmt.Sprintf("[0:v][1:v]%s=inputs=2%s", stack, StackedLabel), nil
	}

	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("%w: frame size required for spacing %d", ErrInvalidSpacing, spacing)
	}

	axis := width
	if mode == pipeline.StackVertical {
		axis = height
	}
	if spacing <= -axis {
		return "", fmt.Errorf("%w: overlap %d exceeds frame size %d", ErrInvalidSpacing, -spacing, axis)
	}

	canvasW, canvasH := width, height
	x, y := 0, 0
	if mode == pipeline.StackHorizontal {
		canvasW = evenCeil(2*width + spacing)
		x = width + spacing
	} else {
		canvasH = evenCeil(2*height + spacing)
		y = height + spacing
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[0:v]pad=w=%d:h=%d:x=0:y=0:color=black[base];", canvasW, canvasH)
	fmt.Fprintf(&sb, "[base][1:v]overlay=x=%d:y=%d%s", x, y, StackedLabel)
	return sb.String(), nil
}

func evenCeil(n int) int {
	if n%2 != 0 {
		return n + 1
	}
	return n
}
