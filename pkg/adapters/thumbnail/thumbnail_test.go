package thumbnail

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestThumbnailer_Thumbnail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	writePNG(t, path, 640, 320)

	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	preview, err := New().Thumbnail(path, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := preview.Image.Bounds()
	if b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("expected 300x150, got %dx%d", b.Dx(), b.Dy())
	}
	if !preview.Created.Equal(mtime) {
		t.Errorf("expected created %v, got %v", mtime, preview.Created)
	}
}

func TestThumbnailer_ThumbnailSmallImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.png")
	writePNG(t, path, 40, 80)

	preview, err := New().Thumbnail(path, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := preview.Image.Bounds()
	if b.Dx() != 40 || b.Dy() != 80 {
		t.Errorf("expected unscaled 40x80, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestThumbnailer_ThumbnailNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New().Thumbnail(path, 300); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestThumbnailer_Dimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	writePNG(t, path, 123, 45)

	w, h, err := New().Dimensions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 123 || h != 45 {
		t.Errorf("expected 123x45, got %dx%d", w, h)
	}
}

func TestFit_Portrait(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 1000))
	b := Fit(img, 100).Bounds()
	if b.Dx() != 20 || b.Dy() != 100 {
		t.Errorf("expected 20x100, got %dx%d", b.Dx(), b.Dy())
	}
}
