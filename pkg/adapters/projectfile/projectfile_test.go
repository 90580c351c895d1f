package projectfile

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/user/sequencestitch/pkg/adapters/logger"
	"github.com/user/sequencestitch/pkg/mocks"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// appProject is a file as written by the macOS app.
const appProject = `{
  "exportSettings" : {
    "format" : "MOV",
    "frameRate" : 24,
    "quality" : "Lossless",
    "resolution" : "4K",
    "useHardwareEncoding" : true
  },
  "frameDuration" : 0.5,
  "items" : [
    {
      "dateCreated" : 700000000.5,
      "isFromPDF" : false,
      "originalFilename" : "b.png",
      "originalPath" : "/shots/b.png",
      "processedPath" : "/shots/b.png"
    },
    {
      "dateCreated" : 700000100,
      "isFromPDF" : true,
      "originalFilename" : "deck.pdf",
      "originalPath" : "/docs/deck.pdf",
      "processedPath" : "/tmp/deck_page1.png"
    },
    {
      "dateCreated" : 700000200,
      "isFromPDF" : false,
      "originalFilename" : "gone.png",
      "originalPath" : "/shots/gone.png",
      "processedPath" : "/shots/gone.png"
    }
  ],
  "version" : 1
}`

// newStore builds a Store; a nil thumbs disables image verification.
func newStore(fs *mocks.FileSystem, thumbs *mocks.Thumbnailer) *Store {
	if thumbs == nil {
		return New(fs, nil, logger.NewNoop())
	}
	return New(fs, thumbs, logger.NewNoop())
}

func TestStore_LoadAppProject(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/p/demo.seqstitch", []byte(appProject))
	fs.AddFile("/shots/b.png", []byte("png"))
	fs.AddFile("/tmp/deck_page1.png", []byte("png"))

	thumbs := &mocks.Thumbnailer{Sizes: map[string][2]int{
		"/shots/b.png":        {800, 600},
		"/tmp/deck_page1.png": {1200, 1600},
	}}

	project, err := newStore(fs, thumbs).Load("/p/demo.seqstitch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if project.FrameDuration != 0.5 {
		t.Errorf("expected frame duration 0.5, got %v", project.FrameDuration)
	}
	s := project.Settings
	if s.Format != pipeline.FormatMOV || s.Quality != pipeline.QualityLossless ||
		s.Resolution != pipeline.Scale4K || s.FrameRate != pipeline.FrameRate24 || !s.Hardware {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.Stacking != pipeline.StackNone {
		t.Errorf("expected no stacking, got %q", s.Stacking)
	}

	if len(project.Items) != 2 {
		t.Fatalf("expected missing item to be skipped, got %d items", len(project.Items))
	}
	first := project.Items[0]
	wantCreated := time.Date(2023, 3, 8, 20, 26, 40, 500000000, time.UTC)
	if !first.Created.Equal(wantCreated) {
		t.Errorf("expected created %v, got %v", wantCreated, first.Created)
	}
	if !project.Items[1].FromDocument || project.Items[1].SourcePath != "/docs/deck.pdf" {
		t.Errorf("unexpected document item %+v", project.Items[1])
	}
	if first.ID == project.Items[1].ID {
		t.Error("expected unique item IDs")
	}
}

func TestStore_LoadWithoutThumbnailer(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/p/demo.seqstitch", []byte(appProject))
	fs.AddFile("/shots/b.png", []byte("png"))
	fs.AddFile("/tmp/deck_page1.png", []byte("png"))

	project, err := newStore(fs, nil).Load("/p/demo.seqstitch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(project.Items) != 2 {
		t.Errorf("expected every existing image kept, got %d", len(project.Items))
	}
}

func TestStore_LoadSkipsUnreadableImages(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/p/demo.seqstitch", []byte(appProject))
	fs.AddFile("/shots/b.png", []byte("png"))
	fs.AddFile("/tmp/deck_page1.png", []byte("png"))

	// Only b.png decodes.
	thumbs := &mocks.Thumbnailer{Sizes: map[string][2]int{"/shots/b.png": {800, 600}}}

	project, err := newStore(fs, thumbs).Load("/p/demo.seqstitch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(project.Items) != 1 || project.Items[0].OriginalFilename != "b.png" {
		t.Errorf("expected only b.png, got %+v", project.Items)
	}
}

func TestStore_SaveLoadStacked(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/a/1.png", nil)
	fs.AddFile("/b/1.png", nil)
	store := newStore(fs, nil)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	settings := pipeline.DefaultExportSettings()
	settings.Stacking = pipeline.StackHorizontal
	settings.Spacing = -40
	settings.Normalization = pipeline.Normalize1080p

	in := ports.Project{
		FrameDuration:  1.5,
		Settings:       settings,
		Items:          []pipeline.SequenceItem{pipeline.NewSequenceItem("/a/1.png", created)},
		SecondaryItems: []pipeline.SequenceItem{pipeline.NewSequenceItem("/b/1.png", created)},
	}
	if err := store.Save("/p/compare.seqstitch", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.Load("/p/compare.seqstitch")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if out.Settings != settings {
		t.Errorf("settings changed:\n got %+v\nwant %+v", out.Settings, settings)
	}
	if len(out.SecondaryItems) != 1 || out.SecondaryItems[0].SourcePath != "/b/1.png" {
		t.Errorf("unexpected secondary items %+v", out.SecondaryItems)
	}
	if !out.Items[0].Created.Equal(created) {
		t.Errorf("expected created %v, got %v", created, out.Items[0].Created)
	}
}

func TestStore_SaveWritesAppNames(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newStore(fs, nil)

	if err := store.Save("/p/empty.seqstitch", ports.Project{FrameDuration: 2, Settings: pipeline.DefaultExportSettings()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, _ := fs.GetFile("/p/empty.seqstitch")

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	settings := raw["exportSettings"].(map[string]any)
	if settings["format"] != "MP4" || settings["quality"] != "High" || settings["resolution"] != "Original" {
		t.Errorf("unexpected settings %v", settings)
	}
	if _, ok := settings["stackingMode"]; ok {
		t.Error("single-sequence projects must not carry stacking fields")
	}
	if items, ok := raw["items"].([]any); !ok || len(items) != 0 {
		t.Errorf("expected empty items array, got %v", raw["items"])
	}
	if !strings.Contains(string(data), `"version": 1`) {
		t.Errorf("expected version 1:\n%s", data)
	}
}

func TestStore_LoadErrors(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/p/bad.seqstitch", []byte("{"))
	fs.AddFile("/p/future.seqstitch", []byte(`{"version": 99, "items": []}`))
	store := newStore(fs, nil)

	for _, path := range []string{"/p/missing.seqstitch", "/p/bad.seqstitch", "/p/future.seqstitch"} {
		if _, err := store.Load(path); err == nil {
			t.Errorf("%s: expected error", path)
		}
	}
}

func TestReferenceSeconds(t *testing.T) {
	if got := FromReferenceSeconds(0); !got.Equal(referenceDate) {
		t.Errorf("expected reference date, got %v", got)
	}
	ts := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := FromReferenceSeconds(ToReferenceSeconds(ts)); !got.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, got)
	}
}
