package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	if s.Kind == KindImport {
		fmt.Fprintf(&b, "# %s\n\n", t("Import Summary"))
	} else {
		fmt.Fprintf(&b, "# %s\n\n", t("Export Summary"))
	}

	b.WriteString("## " + t("Source") + "\n\n")
	f.header(&b)
	if s.Kind == KindImport {
		f.row(&b, "Video", s.Source.VideoPath)
		f.row(&b, "Duration", formatDuration(s.Source.VideoDuration))
	} else {
		f.row(&b, "Images", fmt.Sprintf("%d", s.Source.PrimaryCount))
		if s.Source.SecondaryCount > 0 {
			f.row(&b, "Comparison Images", fmt.Sprintf("%d", s.Source.SecondaryCount))
		}
		f.row(&b, "Frame Duration", fmt.Sprintf("%.2f s", s.Source.FrameDuration))
	}
	b.WriteString("\n")

	if s.Kind != KindImport {
		b.WriteString("## " + t("Settings") + "\n\n")
		f.header(&b)
		f.row(&b, "Format", s.Settings.Format)
		f.row(&b, "Resolution", s.Settings.Resolution)
		f.row(&b, "Quality", s.Settings.Quality)
		f.row(&b, "Frame Rate", fmt.Sprintf("%d fps", s.Settings.FrameRate))
		codec := s.Settings.Codec
		if s.Settings.Hardware {
			codec += " (" + t("hardware") + ")"
		}
		f.row(&b, "Codec", codec)
		if s.Settings.Stacking != "" && s.Settings.Stacking != "none" {
			f.row(&b, "Stacking", s.Settings.Stacking)
			f.row(&b, "Spacing", fmt.Sprintf("%d px", s.Settings.Spacing))
			f.row(&b, "Normalization", fmt.Sprintf("%s (%dx%d)",
				s.Settings.Normalization, s.Settings.NormalizedWidth, s.Settings.NormalizedHeight))
		}
		b.WriteString("\n")
	}

	b.WriteString("## " + t("Output") + "\n\n")
	f.header(&b)
	f.row(&b, "Path", s.Output.Path)
	if s.Kind == KindImport {
		f.row(&b, "Frames", fmt.Sprintf("%d", s.Output.FrameCount))
	} else {
		f.row(&b, "Duration", formatDuration(s.Output.Duration))
		f.row(&b, "File Size", formatBytes(s.Output.FileSize))
		if s.Output.Width > 0 && s.Output.Height > 0 {
			f.row(&b, "Dimensions", fmt.Sprintf("%dx%d", s.Output.Width, s.Output.Height))
		}
		if s.Output.Codec != "" {
			f.row(&b, "Stream Codec", s.Output.Codec)
		}
	}
	f.row(&b, "Elapsed", formatDuration(s.Output.Elapsed))
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" by seqstitch %s", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", f.translate("Item"), f.translate("Value"))
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	if value == "" {
		value = "N/A"
	}
	fmt.Fprintf(b, "| %s | %s |\n", f.translate(label), value)
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

var _ Formatter = (*MarkdownFormatter)(nil)
