package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// bandMask is opaque where inside reports true and transparent elsewhere. The
// color channels are deliberately noisy to show that only alpha is used.
func bandMask(w, h int, inside func(x, y int) bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0)
			if inside(x, y) {
				a = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: 200, B: uint8(y), A: a})
		}
	}
	return img
}

// borderTemplate is transparent apart from one opaque black pixel in the
// bottom right corner.
func borderTemplate(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(w-1, h-1, color.NRGBA{A: 255})
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
}

// twoMaskLibrary splits a w x h canvas into a left and a right mask.
func twoMaskLibrary(t *testing.T, w, h int) *MaskLibrary {
	t.Helper()

	left := bandMask(w, h, func(x, y int) bool { return x < w/2 })
	right := bandMask(w, h, func(x, y int) bool { return x >= w/2 })

	lib, err := NewMaskLibrary([]image.Image{left, right}, borderTemplate(w, h), 2)
	require.NoError(t, err)

	return lib
}

// writeResources lays out a template and n numbered masks in a temp folder
// and returns a config pointing at it.
func writeResources(t *testing.T, w, h, n int) JSONConfig {
	t.Helper()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Template.png"), borderTemplate(w, h))
	for i := 1; i <= n; i++ {
		i := i
		writePNG(t, filepath.Join(dir, fmt.Sprintf("%d_mask-01.png", i)), bandMask(w, h, func(x, y int) bool { return x == i-1 }))
	}

	config := DefaultConfig()
	config.Resources = dir
	config.MaskCount = n
	config.Width = w
	config.Height = h

	return config
}
