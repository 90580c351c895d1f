package mediaprobe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/sequencestitch/pkg/adapters/logger"
	"github.com/user/sequencestitch/pkg/mocks"
	"github.com/user/sequencestitch/pkg/ports"
)

func buildMP4(t *testing.T, handler string) []byte {
	t.Helper()
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(1000, handler, "und")
	init.Moov.Mvhd.Timescale = 1000
	init.Moov.Mvhd.Duration = 4500

	if handler == "video" {
		stsd := init.Moov.Trak.Mdia.Minf.Stbl.Stsd
		stsd.AddChild(mp4.CreateVisualSampleEntryBox("avc1", 1280, 720, nil))
	}

	var buf bytes.Buffer
	if err := init.Encode(&buf); err != nil {
		t.Fatalf("encode mp4: %v", err)
	}
	return buf.Bytes()
}

func TestProbeMP4(t *testing.T) {
	info, err := ProbeMP4(bytes.NewReader(buildMP4(t, "video")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Codec != "h264" {
		t.Errorf("expected h264, got %q", info.Codec)
	}
	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", info.Width, info.Height)
	}
	if info.Duration != 4500*time.Millisecond {
		t.Errorf("expected 4.5s, got %v", info.Duration)
	}
}

func TestProbeMP4_NoVideoTrack(t *testing.T) {
	_, err := ProbeMP4(bytes.NewReader(buildMP4(t, "audio")))
	if !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("expected ErrNoVideoTrack, got %v", err)
	}
}

func TestCodecName(t *testing.T) {
	tests := map[string]string{
		"avc1": "h264",
		"avc3": "h264",
		"hvc1": "hevc",
		"av01": "av1",
		"vp09": "vp9",
		"apch": "prores",
		"mp4v": "mp4v",
	}
	for in, want := range tests {
		if got := codecName(in); got != want {
			t.Errorf("codecName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFFprobe(t *testing.T) {
	data := []byte(`{
		"programs": [],
		"streams": [{"codec_name": "vp9", "width": 1920, "height": 1080}],
		"format": {"duration": "12.480000"}
	}`)
	info, err := parseFFprobe(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Codec != "vp9" || info.Width != 1920 || info.Height != 1080 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Duration != 12480*time.Millisecond {
		t.Errorf("expected 12.48s, got %v", info.Duration)
	}
}

func TestParseFFprobe_StreamDurationFallback(t *testing.T) {
	data := []byte(`{"streams": [{"codec_name": "h264", "duration": "3.0"}], "format": {"duration": "N/A"}}`)
	info, err := parseFFprobe(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Duration != 3*time.Second {
		t.Errorf("expected 3s, got %v", info.Duration)
	}
}

func TestParseFFprobe_NoStreams(t *testing.T) {
	if _, err := parseFFprobe([]byte(`{"streams": [], "format": {}}`)); !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("expected ErrNoVideoTrack, got %v", err)
	}
}

func TestProber_FallsBackToFFprobe(t *testing.T) {
	runner := &mocks.ProcessRunner{
		RunFunc: func(ctx context.Context, inv ports.Invocation, opts ports.RunOptions) (ports.ProcessResult, error) {
			return ports.ProcessResult{Stdout: `{"streams":[{"codec_name":"vp9","width":640,"height":480}],"format":{"duration":"2.5"}}`}, nil
		},
	}
	p := New(runner, "/usr/bin/ffprobe", logger.NewNoop())

	info, err := p.Probe(context.Background(), "/videos/clip.webm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Duration != 2500*time.Millisecond {
		t.Errorf("expected 2.5s, got %v", info.Duration)
	}

	calls := runner.Invocations()
	if len(calls) != 1 || calls[0].Binary != "/usr/bin/ffprobe" {
		t.Fatalf("expected one ffprobe call, got %+v", calls)
	}
	if !strings.Contains(strings.Join(calls[0].Args, " "), "-of json /videos/clip.webm") {
		t.Errorf("unexpected args %v", calls[0].Args)
	}
}

func TestProber_FFprobeFailure(t *testing.T) {
	runner := &mocks.ProcessRunner{
		RunFunc: func(ctx context.Context, inv ports.Invocation, opts ports.RunOptions) (ports.ProcessResult, error) {
			return ports.ProcessResult{ExitCode: 1}, nil
		},
	}
	p := New(runner, "/usr/bin/ffprobe", logger.NewNoop())

	if _, err := p.Probe(context.Background(), "/videos/clip.mkv"); err == nil {
		t.Fatal("expected error")
	}
}

func TestProber_UnsupportedWithoutFFprobe(t *testing.T) {
	p := New(nil, "", logger.NewNoop())

	_, err := p.Probe(context.Background(), "/videos/clip.mkv")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
