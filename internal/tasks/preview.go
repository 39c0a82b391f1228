package tasks

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/desertthunder/pictx/internal/shared"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultThumbnailSize bounds both preview dimensions.
const DefaultThumbnailSize = 200

// Thumbnail is a scaled-down preview of one file.
type Thumbnail struct {
	Name   string
	Format string
	Source image.Point // original dimensions
	Image  *image.RGBA
}

// Preview decodes r and scales it to fit within maxSize×maxSize, preserving aspect ratio.
// Images already within bounds are not upscaled.
func Preview(name string, r io.Reader, maxSize int) (*Thumbnail, error) {
	if maxSize <= 0 {
		maxSize = DefaultThumbnailSize
	}

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrUnsupportedImage, name, err)
	}

	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return &Thumbnail{
		Name:   name,
		Format: format,
		Source: image.Pt(b.Dx(), b.Dy()),
		Image:  dst,
	}, nil
}

// fitWithin scales w×h so the longer side is at most limit. Neither side drops below 1.
func fitWithin(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return max(w, 1), max(h, 1)
	}

	scale := min(float64(limit)/float64(w), float64(limit)/float64(h))
	return max(int(float64(w)*scale), 1), max(int(float64(h)*scale), 1)
}
