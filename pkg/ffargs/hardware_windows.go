//go:build windows

package ffargs

import "github.com/user/sequencestitch/pkg/pipeline"

// PlatformHardware returns the Media Foundation encoder for the H.264 formats.
func PlatformHardware(format pipeline.OutputFormat) (HardwareCodec, bool) {
	if !format.SupportsHardware() {
		return HardwareCodec{}, false
	}
	return HardwareCodec{Name: "h264_mf"}, true
}
