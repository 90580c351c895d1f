package ffargs

import (
	"fmt"
	"strconv"

	"github.com/user/sequencestitch/pkg/pipeline"
)

// NormalizeFilter letterboxes every frame into a fixed width x height
// canvas so stacked inputs never reconfigure the filter graph mid-stream.
func NormalizeFilter(width, height int) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black,setsar=1",
		width, height, width, height)
}

// FrameRateFor converts a per-image duration into a frame rate string.
func FrameRateFor(frameDuration float64) string {
	return strconv.FormatFloat(1/frameDuration, 'f', -1, 64)
}

// NormalizeArgs returns the arguments that turn a duration-free concat list
// into a constant-size intermediate video. The input frame rate is set on
// purpose here: the simple list carries no durations.
func NormalizeArgs(simpleList, output string, frameDuration float64, width, height int) ([]string, error) {
	if frameDuration <= 0 {
		return nil, fmt.Errorf("%w: frame duration must be positive, got %v", pipeline.ErrInvalidSettings, frameDuration)
	}
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: normalization size %dx%d must be positive and even", pipeline.ErrInvalidSettings, width, height)
	}
	fps := FrameRateFor(frameDuration)
	return []string{
		"-r", fps,
		"-f", "concat",
		"-safe", "0",
		"-i", simpleList,
		"-vf", NormalizeFilter(width, height),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "18",
		"-pix_fmt", "yuv420p",
		"-r", fps,
		"-y", output,
	}, nil
}
