package mediaprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/user/sequencestitch/pkg/ports"
)

// ffprobeArgs asks for the first video stream and the container duration.
func ffprobeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,duration:format=duration",
		"-of", "json",
		path,
	}
}

type ffprobeOutput struct {
	Streams []struct {
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseFFprobe converts ffprobe JSON into MediaInfo.
func parseFFprobe(data []byte) (ports.MediaInfo, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	s := out.Streams[0]
	info := ports.MediaInfo{
		Codec:  s.CodecName,
		Width:  s.Width,
		Height: s.Height,
	}
	duration := out.Format.Duration
	if duration == "" || duration == "N/A" {
		duration = s.Duration
	}
	if secs, err := strconv.ParseFloat(duration, 64); err == nil && secs > 0 {
		info.Duration = time.Duration(secs * float64(time.Second))
	}
	return info, nil
}

func (p *Prober) probeFFprobe(ctx context.Context, path string) (ports.MediaInfo, error) {
	result, err := p.runner.Run(ctx, ports.Invocation{
		Binary: p.ffprobe,
		Args:   ffprobeArgs(path),
	}, ports.RunOptions{})
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("start ffprobe: %w", err)
	}
	if result.Cancelled {
		return ports.MediaInfo{}, ctx.Err()
	}
	if result.ExitCode != 0 {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe exited with code %d", result.ExitCode)
	}
	return parseFFprobe([]byte(result.Stdout))
}
