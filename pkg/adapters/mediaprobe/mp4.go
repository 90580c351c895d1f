// Package mediaprobe reads duration, codec and frame size of video files.
//
// MP4 and QuickTime files are parsed in-process with mp4ff. Other
// containers fall back to ffprobe when it is available.
package mediaprobe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/sequencestitch/pkg/ports"
)

// ErrNoVideoTrack is returned when a container has no video track.
var ErrNoVideoTrack = errors.New("no video track found")

// ProbeMP4File reads the metadata of an MP4/MOV file at path.
func ProbeMP4File(path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeMP4(f)
}

// ProbeMP4 reads the metadata of an MP4/MOV stream. Sample data is not loaded.
func ProbeMP4(reader io.ReadSeeker) (ports.MediaInfo, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: missing moov box")
	}

	info := ports.MediaInfo{}
	found := false
	for _, trak := range moov.Traks {
		if fromTrack(trak, &info) {
			found = true
			break
		}
	}
	if !found {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	if mvhd := moov.Mvhd; mvhd != nil && mvhd.Timescale > 0 && mvhd.Duration > 0 {
		info.Duration = scaled(mvhd.Duration, mvhd.Timescale)
	}
	return info, nil
}

// fromTrack fills info from a video track and reports whether trak was one.
func fromTrack(trak *mp4.TrakBox, info *ports.MediaInfo) bool {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return false
	}
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return false
	}

	// Track duration is a fallback; fragmented files leave mvhd empty.
	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		info.Duration = scaled(mdhd.Duration, mdhd.Timescale)
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return true
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		info.Codec = codecName(child.Type())
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		break
	}
	return true
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp09":
		return "vp9"
	case "apcn", "apch", "apcs", "apco", "ap4h":
		return "prores"
	default:
		return sampleEntry
	}
}

func scaled(value uint64, timescale uint32) time.Duration {
	secs := value / uint64(timescale)
	rem := value % uint64(timescale)
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(timescale)
}
