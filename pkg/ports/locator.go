package ports

// BinaryLocator finds the external executables.
type BinaryLocator interface {
	// FFmpeg returns the path of the ffmpeg executable.
	FFmpeg() (string, error)

	// FFprobe returns the path of the ffprobe executable.
	FFprobe() (string, error)
}
