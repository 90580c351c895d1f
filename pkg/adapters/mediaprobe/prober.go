package mediaprobe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/ports"
)

// ErrUnsupported is returned for non-MP4 containers when ffprobe is unavailable.
var ErrUnsupported = errors.New("unsupported container")

// Prober implements ports.MediaProber.
type Prober struct {
	runner  ports.ProcessRunner
	ffprobe string
	logger  ports.Logger
}

// New creates a Prober. ffprobe may be empty, in which case only
// MP4-family files can be probed.
func New(runner ports.ProcessRunner, ffprobe string, logger ports.Logger) *Prober {
	return &Prober{
		runner:  runner,
		ffprobe: ffprobe,
		logger:  logger.WithComponent("probe"),
	}
}

// Probe reads the metadata of path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	if isMP4Family(path) {
		info, err := ProbeMP4File(path)
		if err == nil {
			return info, nil
		}
		p.logger.Debug(l10n.F("mp4 probe failed, trying ffprobe: %s", err))
	}

	if p.ffprobe == "" || p.runner == nil {
		return ports.MediaInfo{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
	return p.probeFFprobe(ctx, path)
}

func isMP4Family(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".m4v", ".3gp":
		return true
	}
	return false
}

var _ ports.MediaProber = (*Prober)(nil)
