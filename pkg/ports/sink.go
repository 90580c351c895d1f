package ports

// DebugSink abstracts debug output for intermediate results.
// It keeps the artifacts of an export around so a failed ffmpeg run can be
// reproduced by hand.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveCommand saves the command line of one ffmpeg run.
	SaveCommand(stage string, inv Invocation) error

	// SaveEncoderLog saves the captured stdout and stderr of one ffmpeg run.
	SaveEncoderLog(stage string, result ProcessResult) error

	// SaveConcatList saves a copy of a generated concat list.
	SaveConcatList(name string, data []byte) error
}
