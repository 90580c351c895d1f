//go:build darwin

package ffargs

import "github.com/user/sequencestitch/pkg/pipeline"

// PlatformHardware returns VideoToolbox for the H.264 formats.
// -allow_sw lets VideoToolbox fall back to its software path on machines
// without an encoder block instead of failing.
func PlatformHardware(format pipeline.OutputFormat) (HardwareCodec, bool) {
	if !format.SupportsHardware() {
		return HardwareCodec{}, false
	}
	return HardwareCodec{Name: "h264_videotoolbox", Args: []string{"-allow_sw", "1"}}, true
}
