package ffargs

import (
	"errors"
	"strings"
	"testing"

	"github.com/user/sequencestitch/pkg/pipeline"
)

func fakeHardware(format pipeline.OutputFormat) (HardwareCodec, bool) {
	if !format.SupportsHardware() {
		return HardwareCodec{}, false
	}
	return HardwareCodec{Name: "h264_fakehw", Args: []string{"-allow_sw", "1"}}, true
}

func concatRequest(s pipeline.ExportSettings) Request {
	return Request{
		Primary:  pipeline.EncodeSource{Kind: pipeline.SourceConcatList, Path: "/tmp/job/input.txt"},
		Output:   "/out/video." + s.Format.Extension(),
		Settings: s,
	}
}

func stackedRequest(s pipeline.ExportSettings) Request {
	return Request{
		Primary:   pipeline.EncodeSource{Kind: pipeline.SourceNormalizedVideo, Path: "/tmp/job/primary_normalized.mp4"},
		Secondary: &pipeline.EncodeSource{Kind: pipeline.SourceNormalizedVideo, Path: "/tmp/job/secondary_normalized.mp4"},
		Output:    "/out/compare.mp4",
		Settings:  s,
		Width:     1280,
		Height:    720,
	}
}

// valueAfter returns the argument following flag, or "".
func valueAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func count(args []string, s string) int {
	n := 0
	for _, a := range args {
		if a == s {
			n++
		}
	}
	return n
}

func TestBuild_ScenarioA(t *testing.T) {
	s := pipeline.DefaultExportSettings()
	s.Quality = pipeline.QualityHigh

	args, err := (&Builder{Hardware: NoHardware}).Build(concatRequest(s))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{
		"-f", "concat", "-safe", "0", "-i", "/tmp/job/input.txt",
		"-vf", SafetyFilter,
		"-c:v", "libx264", "-preset", "slow", "-crf", "18", "-profile:v", "main",
		"-r", "30",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-y", "/out/video.mp4",
	}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("unexpected args:\n got %v\nwant %v", args, want)
	}
}

func TestBuild_QualityTable(t *testing.T) {
	tests := []struct {
		quality pipeline.QualityPreset
		crf     string
		preset  string
	}{
		{pipeline.QualityLow, "28", "faster"},
		{pipeline.QualityMedium, "23", "medium"},
		{pipeline.QualityHigh, "18", "slow"},
		{pipeline.QualityLossless, "0", "veryslow"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			s := pipeline.DefaultExportSettings()
			s.Quality = tt.quality

			args, err := NewBuilder().Build(concatRequest(s))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if got := valueAfter(args, "-crf"); got != tt.crf {
				t.Errorf("expected crf %s, got %s", tt.crf, got)
			}
			if got := valueAfter(args, "-preset"); got != tt.preset {
				t.Errorf("expected preset %s, got %s", tt.preset, got)
			}
		})
	}
}

func TestBuild_LosslessOmitsMainProfile(t *testing.T) {
	s := pipeline.DefaultExportSettings()
	s.Quality = pipeline.QualityLossless

	args, err := (&Builder{Hardware: NoHardware}).Build(concatRequest(s))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if count(args, "-profile:v") != 0 {
		t.Errorf("lossless must not force a profile: %v", args)
	}
}

func TestBuild_ResolutionFilters(t *testing.T) {
	tests := []struct {
		res    pipeline.ResolutionScale
		filter string
	}{
		{pipeline.ScaleOriginal, SafetyFilter},
		{pipeline.Scale2x, "scale=iw*2:ih*2"},
		{pipeline.Scale4x, "scale=iw*4:ih*4"},
		{pipeline.Scale720p, "scale=-2:720"},
		{pipeline.Scale1080p, "scale=-2:1080"},
		{pipeline.Scale4K, "scale=-2:2160"},
	}

	for _, tt := range tests {
		t.Run(string(tt.res), func(t *testing.T) {
			s := pipeline.DefaultExportSettings()
			s.Resolution = tt.res

			args, err := NewBuilder().Build(concatRequest(s))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if got := valueAfter(args, "-vf"); got != tt.filter {
				t.Errorf("expected filter %q, got %q", tt.filter, got)
			}
			if tt.res != pipeline.ScaleOriginal && count(args, SafetyFilter) != 0 {
				t.Errorf("safety filter must not be combined with %s", tt.res)
			}
		})
	}
}

func TestBuild_FrameRateAfterConcatInput(t *testing.T) {
	for _, fps := range []pipeline.FrameRate{24, 30, 60} {
		s := pipeline.DefaultExportSettings()
		s.FrameRate = fps

		args, err := NewBuilder().Build(concatRequest(s))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if err := CheckTimingOrder(args); err != nil {
			t.Errorf("fps %d: %v", fps, err)
		}
		if count(args, "-r") != 1 {
			t.Errorf("expected exactly one -r, got %v", args)
		}
	}
}

func TestCheckTimingOrder(t *testing.T) {
	bad := []string{"-r", "30", "-f", "concat", "-safe", "0", "-i", "list.txt", "-y", "out.mp4"}
	if !errors.Is(CheckTimingOrder(bad), ErrTimingOrder) {
		t.Error("expected ErrTimingOrder for -r before -i")
	}

	good := []string{"-f", "concat", "-i", "list.txt", "-r", "30", "-y", "out.mp4"}
	if err := CheckTimingOrder(good); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuild_Hardware(t *testing.T) {
	b := &Builder{Hardware: fakeHardware}

	t.Run("requested", func(t *testing.T) {
		s := pipeline.DefaultExportSettings()
		s.Hardware = true

		args, err := b.Build(concatRequest(s))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := valueAfter(args, "-c:v"); got != "h264_fakehw" {
			t.Errorf("expected hardware codec, got %s", got)
		}
		if valueAfter(args, "-allow_sw") != "1" {
			t.Errorf("expected hardware flags, got %v", args)
		}
		if count(args, "-crf") != 0 || count(args, "-preset") != 0 {
			t.Errorf("software quality flags must not be passed to hardware codec: %v", args)
		}
	})

	t.Run("not requested", func(t *testing.T) {
		s := pipeline.DefaultExportSettings()

		args, err := b.Build(concatRequest(s))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := valueAfter(args, "-c:v"); got != "libx264" {
			t.Errorf("expected libx264, got %s", got)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		s := pipeline.DefaultExportSettings()
		s.Hardware = true

		args, err := (&Builder{Hardware: NoHardware}).Build(concatRequest(s))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := valueAfter(args, "-c:v"); got != "libx264" {
			t.Errorf("expected software fallback, got %s", got)
		}
	})
}

func TestBuild_WebM(t *testing.T) {
	s := pipeline.DefaultExportSettings()
	s.Format = pipeline.FormatWebM
	s.Hardware = true
	s.Quality = pipeline.QualityMedium

	args, err := (&Builder{Hardware: fakeHardware}).Build(concatRequest(s))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := valueAfter(args, "-c:v"); got != "libvpx-vp9" {
		t.Errorf("expected libvpx-vp9, got %s", got)
	}
	if valueAfter(args, "-crf") != "23" || valueAfter(args, "-b:v") != "0" {
		t.Errorf("expected constrained quality flags, got %v", args)
	}
	if count(args, "-movflags") != 0 {
		t.Errorf("webm must not get -movflags: %v", args)
	}
	if count(args, "-pix_fmt") != 1 {
		t.Errorf("expected pixel format, got %v", args)
	}
}

func TestBuild_OverwriteOutputLast(t *testing.T) {
	for _, f := range []pipeline.OutputFormat{pipeline.FormatMP4, pipeline.FormatMOV, pipeline.FormatWebM} {
		s := pipeline.DefaultExportSettings()
		s.Format = f
		req := concatRequest(s)

		args, err := NewBuilder().Build(req)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		n := len(args)
		if args[n-2] != "-y" || args[n-1] != req.Output {
			t.Errorf("%s: expected -y <output> last, got %v", f, args[n-2:])
		}
	}
}

func TestBuild_ScenarioB_Stacked(t *testing.T) {
	for _, tt := range []struct {
		mode  pipeline.StackingMode
		graph string
	}{
		{pipeline.StackHorizontal, "[0:v][1:v]hstack=inputs=2[stacked]"},
		{pipeline.StackVertical, "[0:v][1:v]vstack=inputs=2[stacked]"},
	} {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := pipeline.DefaultExportSettings()
			s.Stacking = tt.mode

			args, err := NewBuilder().Build(stackedRequest(s))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if count(args, "-i") != 2 {
				t.Errorf("expected two inputs, got %v", args)
			}
			if got := valueAfter(args, "-filter_complex"); got != tt.graph {
				t.Errorf("expected graph %q, got %q", tt.graph, got)
			}
			if got := valueAfter(args, "-map"); got != StackedLabel {
				t.Errorf("expected map %s, got %s", StackedLabel, got)
			}
			if count(args, "-vf") != 0 {
				t.Errorf("stacked export must not add -vf: %v", args)
			}
		})
	}
}

func TestStackGraph_Spacing(t *testing.T) {
	tests := []struct {
		name    string
		mode    pipeline.StackingMode
		spacing int
		want    string
	}{
		{
			name:    "horizontal gap",
			mode:    pipeline.StackHorizontal,
			spacing: 20,
			want:    "[0:v]pad=w=2580:h=720:x=0:y=0:color=black[base];[base][1:v]overlay=x=1300:y=0[stacked]",
		},
		{
			name:    "vertical gap odd",
			mode:    pipeline.StackVertical,
			spacing: 15,
			want:    "[0:v]pad=w=1280:h=1456:x=0:y=0:color=black[base];[base][1:v]overlay=x=0:y=735[stacked]",
		},
		{
			name:    "horizontal overlap",
			mode:    pipeline.StackHorizontal,
			spacing: -100,
			want:    "[0:v]pad=w=2460:h=720:x=0:y=0:color=black[base];[base][1:v]overlay=x=1180:y=0[stacked]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StackGraph(tt.mode, tt.spacing, 1280, 720)
			if err != nil {
				t.Fatalf("StackGraph failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected graph:\n got %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestStackGraph_RejectsFullOverlap(t *testing.T) {
	if _, err := StackGraph(pipeline.StackHorizontal, -1280, 1280, 720); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("expected ErrInvalidSpacing, got %v", err)
	}
	if _, err := StackGraph(pipeline.StackVertical, -720, 1280, 720); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("expected ErrInvalidSpacing, got %v", err)
	}
	if _, err := StackGraph(pipeline.StackHorizontal, 10, 0, 0); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("expected ErrInvalidSpacing without frame size, got %v", err)
	}
}

func TestBuild_MismatchedInputs(t *testing.T) {
	s := pipeline.DefaultExportSettings()

	req := concatRequest(s)
	req.Secondary = &pipeline.EncodeSource{Kind: pipeline.SourceConcatList, Path: "/b.txt"}
	if _, err := NewBuilder().Build(req); !errors.Is(err, ErrMismatchedInputs) {
		t.Errorf("expected ErrMismatchedInputs for concat pair, got %v", err)
	}

	if _, err := NewBuilder().Build(stackedRequest(s)); !errors.Is(err, ErrMismatchedInputs) {
		t.Errorf("expected ErrMismatchedInputs without stacking mode, got %v", err)
	}
}

func TestBuild_InvalidSettings(t *testing.T) {
	s := pipeline.DefaultExportSettings()
	s.FrameRate = 25

	if _, err := NewBuilder().Build(concatRequest(s)); !errors.Is(err, pipeline.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}
