//go:build !darwin && !windows

package ffargs

import "github.com/user/sequencestitch/pkg/pipeline"

// PlatformHardware reports no hardware encoder. VAAPI and NVENC need device
// setup flags that differ per machine, so exports fall back to libx264.
func PlatformHardware(format pipeline.OutputFormat) (HardwareCodec, bool) {
	return NoHardware(format)
}
