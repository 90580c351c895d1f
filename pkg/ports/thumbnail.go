package ports

import (
	"image"
	"time"
)

// Preview is a decoded, downscaled image plus its creation time.
type Preview struct {
	Image   image.Image
	Created time.Time
}

// Thumbnailer produces previews and reads image metadata.
type Thumbnailer interface {
	// Thumbnail decodes path and fits it inside maxSize x maxSize.
	Thumbnail(path string, maxSize int) (Preview, error)

	// Dimensions returns the pixel size of the image without a full decode.
	Dimensions(path string) (width, height int, err error)
}
