// Package projectfile reads and writes .seqstitch project files.
//
// The format is JSON with sorted keys. Dates are stored as seconds since
// 2001-01-01 UTC so files written by the macOS app load unchanged.
package projectfile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// Extension is the project file extension without the dot.
const Extension = "seqstitch"

// Version is the format version written by Save.
const Version = 1

// referenceDate is the epoch of stored dates.
var referenceDate = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// thumbnailProbeSize is only used to check that an image still decodes.
const thumbnailProbeSize = 64

// Fields are declared in key order to mirror sorted-key output.
type projectJSON struct {
	ExportSettings settingsJSON `json:"exportSettings"`
	FrameDuration  float64      `json:"frameDuration"`
	Items          []itemJSON   `json:"items"`
	SecondaryItems []itemJSON   `json:"secondaryItems,omitempty"`
	Version        int          `json:"version"`
}

type settingsJSON struct {
	Format              string `json:"format"`
	FrameRate           int    `json:"frameRate"`
	Normalization       string `json:"normalization,omitempty"`
	Quality             string `json:"quality"`
	Resolution          string `json:"resolution"`
	StackingMode        string `json:"stackingMode,omitempty"`
	StackingSpacing     int    `json:"stackingSpacing,omitempty"`
	UseHardwareEncoding bool   `json:"useHardwareEncoding"`
}

type itemJSON struct {
	DateCreated      float64 `json:"dateCreated"`
	IsFromPDF        bool    `json:"isFromPDF"`
	OriginalFilename string  `json:"originalFilename"`
	OriginalPath     string  `json:"originalPath"`
	ProcessedPath    string  `json:"processedPath"`
}

// Store implements ports.ProjectStore on a FileSystem.
type Store struct {
	fs     ports.FileSystem
	thumbs ports.Thumbnailer
	logger ports.Logger
}

// New creates a Store. thumbs validates images on load and may be nil.
func New(fs ports.FileSystem, thumbs ports.Thumbnailer, logger ports.Logger) *Store {
	return &Store{
		fs:     fs,
		thumbs: thumbs,
		logger: logger.WithComponent("project"),
	}
}

// Save writes project to path.
func (s *Store) Save(path string, project ports.Project) error {
	doc := projectJSON{
		Version:        Version,
		FrameDuration:  project.FrameDuration,
		ExportSettings: encodeSettings(project.Settings),
		Items:          encodeItems(project.Items),
		SecondaryItems: encodeItems(project.SecondaryItems),
	}
	if doc.Items == nil {
		doc.Items = []itemJSON{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return &pipeline.ArtifactWriteError{Path: path, Err: err}
	}
	return nil
}

// Load reads path. Items whose processed image is missing or no longer
// decodes are skipped. Unknown settings fall back to their defaults.
func (s *Store) Load(path string) (ports.Project, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return ports.Project{}, fmt.Errorf("read project: %w", err)
	}

	var doc projectJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return ports.Project{}, fmt.Errorf("decode project: %w", err)
	}
	if doc.Version > Version {
		return ports.Project{}, fmt.Errorf("decode project: unsupported version %d", doc.Version)
	}

	return ports.Project{
		FrameDuration:  doc.FrameDuration,
		Settings:       decodeSettings(doc.ExportSettings),
		Items:          s.decodeItems(doc.Items),
		SecondaryItems: s.decodeItems(doc.SecondaryItems),
	}, nil
}

func (s *Store) decodeItems(items []itemJSON) []pipeline.SequenceItem {
	var out []pipeline.SequenceItem
	for _, it := range items {
		if ok, err := s.fs.Exists(it.ProcessedPath); err != nil || !ok {
			s.logger.Warn(l10n.F("Skipping missing image %s", it.ProcessedPath))
			continue
		}
		if s.thumbs != nil {
			if _, err := s.thumbs.Thumbnail(it.ProcessedPath, thumbnailProbeSize); err != nil {
				s.logger.Warn(l10n.F("Skipping unreadable image %s", it.ProcessedPath))
				continue
			}
		}
		out = append(out, pipeline.SequenceItem{
			ID:               uuid.New(),
			SourcePath:       it.OriginalPath,
			ProcessedPath:    it.ProcessedPath,
			OriginalFilename: it.OriginalFilename,
			Created:          FromReferenceSeconds(it.DateCreated),
			FromDocument:     it.IsFromPDF,
		})
	}
	return out
}

func encodeItems(items []pipeline.SequenceItem) []itemJSON {
	if len(items) == 0 {
		return nil
	}
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, itemJSON{
			OriginalPath:     it.SourcePath,
			ProcessedPath:    it.ProcessedPath,
			OriginalFilename: it.OriginalFilename,
			DateCreated:      ToReferenceSeconds(it.Created),
			IsFromPDF:        it.FromDocument,
		})
	}
	return out
}

// ToReferenceSeconds converts t to seconds since 2001-01-01 UTC.
func ToReferenceSeconds(t time.Time) float64 {
	return t.Sub(referenceDate).Seconds()
}

// FromReferenceSeconds converts seconds since 2001-01-01 UTC to a time.
func FromReferenceSeconds(secs float64) time.Time {
	return referenceDate.Add(time.Duration(secs * float64(time.Second)))
}
