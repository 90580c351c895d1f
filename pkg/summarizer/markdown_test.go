package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/sequencestitch/pkg/mocks"
)

func exportSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Kind:        KindExport,
		Source: SourceInfo{
			PrimaryCount:   5,
			SecondaryCount: 5,
			FrameDuration:  2.0,
		},
		Settings: Settings{
			Format:           "mp4",
			Resolution:       "original",
			Quality:          "high",
			FrameRate:        30,
			Codec:            "libx264",
			Stacking:         "horizontal",
			Spacing:          20,
			Normalization:    "720p",
			NormalizedWidth:  1280,
			NormalizedHeight: 720,
		},
		Output: OutputInfo{
			Path:     "/out/video.mp4",
			Duration: 10 * time.Second,
			FileSize: 1024 * 1024,
			Width:    2580,
			Height:   720,
			Codec:    "h264",
			Elapsed:  1500 * time.Millisecond,
		},
	}
}

func TestMarkdownFormatter_Format_Export(t *testing.T) {
	result := NewMarkdownFormatter().Format(exportSummary())

	checks := []string{
		"# Export Summary",
		"| Images | 5 |",
		"| Comparison Images | 5 |",
		"2.00 s",
		"30 fps",
		"libx264",
		"horizontal",
		"720p (1280x720)",
		"1.0 MiB",
		"2580x720",
		"10.00 s",
		"/out/video.mp4",
		"2024-01-15T10:30:00Z",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestMarkdownFormatter_Format_SingleSequence(t *testing.T) {
	summary := exportSummary()
	summary.Source.SecondaryCount = 0
	summary.Settings.Stacking = "none"
	summary.Settings.Hardware = true
	summary.Settings.Codec = "h264_videotoolbox"

	result := NewMarkdownFormatter().Format(summary)

	if strings.Contains(result, "Stacking") || strings.Contains(result, "Comparison Images") {
		t.Error("single-sequence summary must not list stacking")
	}
	if !strings.Contains(result, "h264_videotoolbox (hardware)") {
		t.Error("expected hardware codec marker")
	}
}

func TestMarkdownFormatter_Format_Import(t *testing.T) {
	summary := &Summary{
		GeneratedAt: time.Now(),
		Kind:        KindImport,
		Source:      SourceInfo{VideoPath: "/videos/clip.mp4"},
		Output:      OutputInfo{Path: "/tmp/Import_x", FrameCount: 42},
	}

	result := NewMarkdownFormatter().Format(summary)

	for _, check := range []string{"# Import Summary", "/videos/clip.mp4", "| Frames | 42 |", "N/A"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Contains(result, "## Settings") {
		t.Error("import summary must not list export settings")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Export Summary": "書き出しサマリー",
			"Images":         "画像",
			"Output":         "出力",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(exportSummary())

	for _, want := range []string{"書き出しサマリー", "| 画像 | 5 |", "## 出力"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(exportSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{500 * 1024 * 1024, "500 MiB"},
		{1536 * 1024 * 1024, "1.5 GiB"},
		{-1, "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	writer := NewWriter(FormatFunc(func(s *Summary) string { return "summary" }), fs)

	if err := writer.Write("/out/reports/summary.md", exportSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := fs.GetFile("/out/reports/summary.md")
	if !ok || string(data) != "summary" {
		t.Errorf("unexpected content %q", data)
	}
	if len(fs.MkdirCalls) != 1 || fs.MkdirCalls[0] != "/out/reports" {
		t.Errorf("expected parent directory creation, got %v", fs.MkdirCalls)
	}
}
