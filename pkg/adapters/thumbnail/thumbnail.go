// Package thumbnail decodes images into downscaled previews.
package thumbnail

import (
	"fmt"
	"image"
	"os"

	// Decoders beyond PNG/JPEG/GIF accepted as sequence frames.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/sequencestitch/pkg/ports"
)

// DefaultMaxSize bounds preview images on their longer side.
const DefaultMaxSize = 300

// Thumbnailer implements ports.Thumbnailer using gg and x/image.
type Thumbnailer struct{}

// New creates a new Thumbnailer.
func New() *Thumbnailer {
	return &Thumbnailer{}
}

// Thumbnail decodes path and fits it inside maxSize x maxSize, keeping the
// aspect ratio. Images already small enough are returned as decoded.
func (t *Thumbnailer) Thumbnail(path string, maxSize int) (ports.Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.Preview{}, fmt.Errorf("stat image: %w", err)
	}

	img, err := gg.LoadImage(path)
	if err != nil {
		return ports.Preview{}, fmt.Errorf("decode image: %w", err)
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return ports.Preview{
		Image:   Fit(img, maxSize),
		Created: info.ModTime(),
	}, nil
}

// Dimensions returns the pixel size of path from its header.
func (t *Thumbnailer) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Fit scales img down so neither side exceeds maxSize.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	tw, th := maxSize, maxSize
	if w >= h {
		th = h * maxSize / w
	} else {
		tw = w * maxSize / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dc := gg.NewContext(tw, th)
	dst := dc.Image().(*image.RGBA)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

var _ ports.Thumbnailer = (*Thumbnailer)(nil)
