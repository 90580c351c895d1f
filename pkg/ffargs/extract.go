package ffargs

import (
	"fmt"
	"path/filepath"
)

// FramePattern names extracted frames; the fixed width keeps
// lexicographic and numeric order identical.
const FramePattern = "frame_%05d.png"

// DefaultSampleRate is the extraction rate in frames per second. It is
// coarser than typical video rates and still catches most motion.
const DefaultSampleRate = 10

// ExtractOptions tunes frame extraction.
type ExtractOptions struct {
	SampleRate int
	// DecimateParams is appended to mpdecimate, e.g. "hi=768:lo=320".
	// Empty keeps the filter defaults.
	DecimateParams string
}

// ExtractFilter returns the sampling and duplicate elimination chain.
func ExtractFilter(opts ExtractOptions) string {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	filter := fmt.Sprintf("fps=%d,mpdecimate", rate)
	if opts.DecimateParams != "" {
		filter += "=" + opts.DecimateParams
	}
	return filter
}

// ExtractArgs returns the arguments that decode video into outputDir.
// -vsync 0 keeps ffmpeg from duplicating frames mpdecimate dropped.
// Progress goes to stdout as key=value lines.
func ExtractArgs(video, outputDir string, opts ExtractOptions) []string {
	return []string{
		"-i", video,
		"-vf", ExtractFilter(opts),
		"-vsync", "0",
		"-progress", "pipe:1",
		"-nostats",
		filepath.Join(outputDir, FramePattern),
	}
}
