package projectfile

import (
	"github.com/user/sequencestitch/pkg/pipeline"
)

// Display names used by the macOS app. Parsing is case-insensitive, so
// only names that differ from the lowercased value need an entry.
var (
	formatNames = map[pipeline.OutputFormat]string{
		pipeline.FormatMP4:  "MP4",
		pipeline.FormatMOV:  "MOV",
		pipeline.FormatWebM: "WebM",
	}
	resolutionNames = map[pipeline.ResolutionScale]string{
		pipeline.ScaleOriginal: "Original",
		pipeline.Scale4K:       "4K",
	}
	qualityNames = map[pipeline.QualityPreset]string{
		pipeline.QualityLow:      "Low",
		pipeline.QualityMedium:   "Medium",
		pipeline.QualityHigh:     "High",
		pipeline.QualityLossless: "Lossless",
	}
)

func displayName[K ~string](names map[K]string, v K) string {
	if n, ok := names[v]; ok {
		return n
	}
	return string(v)
}

func encodeSettings(s pipeline.ExportSettings) settingsJSON {
	out := settingsJSON{
		Format:              displayName(formatNames, s.Format),
		Resolution:          displayName(resolutionNames, s.Resolution),
		Quality:             displayName(qualityNames, s.Quality),
		FrameRate:           int(s.FrameRate),
		UseHardwareEncoding: s.Hardware,
	}
	if s.Stacked() {
		out.StackingMode = string(s.Stacking)
		out.StackingSpacing = s.Spacing
	}
	if s.Normalization != "" {
		out.Normalization = string(s.Normalization)
	}
	return out
}

func decodeSettings(in settingsJSON) pipeline.ExportSettings {
	s := pipeline.DefaultExportSettings()
	if f, err := pipeline.ParseOutputFormat(in.Format); err == nil {
		s.Format = f
	}
	if r, err := pipeline.ParseResolutionScale(in.Resolution); err == nil {
		s.Resolution = r
	}
	if q, err := pipeline.ParseQualityPreset(in.Quality); err == nil {
		s.Quality = q
	}
	if fr := pipeline.FrameRate(in.FrameRate); fr.Valid() {
		s.FrameRate = fr
	}
	s.Hardware = in.UseHardwareEncoding
	if m, err := pipeline.ParseStackingMode(in.StackingMode); err == nil {
		s.Stacking = m
	}
	s.Spacing = in.StackingSpacing
	if in.Normalization != "" {
		if n, err := pipeline.ParseNormalizationResolution(in.Normalization); err == nil {
			s.Normalization = n
		}
	}
	return s
}
