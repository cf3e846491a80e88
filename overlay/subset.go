package overlay

import (
	"image"

	"github.com/disintegration/imaging"
)

// Thumbnail rescales a rendered image to the given width, keeping its aspect
// ratio. A non-positive width, or one at least as wide as the image, returns
// the image unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}

	return imaging.Resize(img, width, 0, imaging.Lanczos)
}
