package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
)

// Compositor paints aggregated abundances over a MaskLibrary.
type Compositor struct {
	library *MaskLibrary
	margin  image.Point

	// Font faces keep glyph caches and are not safe for concurrent use, so
	// label drawing is serialized. Everything else in a render only touches
	// per-call buffers.
	faceMu sync.Mutex
	face   font.Face
}

// NewCompositor renders with library, drawing labels with face (see
// LoadFontFace) at margin pixels from the top left corner.
func NewCompositor(library *MaskLibrary, face font.Face, margin int) *Compositor {
	return &Compositor{
		library: library,
		face:    face,
		margin:  image.Pt(margin, margin),
	}
}

// Library returns the masks this compositor paints with.
func (c *Compositor) Library() *MaskLibrary {
	return c.library
}

// Render paints one image:
//
//  1. an opaque white canvas the size of the template;
//  2. the label, if any, joined with LabelSeparator, in black;
//  3. for each mask in order whose abundance is not zero, a layer of tint
//     whose alpha is the mask scaled by min(abundance*scale, 1), composited
//     over what is already there;
//  4. the template, composited over everything.
//
// A scale of 0 means 1. The abundance vector must have exactly one entry per
// mask; anything else is a programming error and panics, as does a negative
// or NaN scale.
func (c *Compositor) Render(abundances []float64, label []string, tint color.RGBA, scale float64) *image.RGBA {
	lib := c.library
	if len(abundances) != lib.Len() {
		panic(fmt.Sprintf("overlay: %d abundances for %d masks", len(abundances), lib.Len()))
	}
	if scale < 0 || math.IsNaN(scale) {
		panic(fmt.Sprintf("overlay: invalid scale %v", scale))
	}
	if scale == 0 {
		scale = 1
	}

	bounds := lib.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.White, image.Point{}, draw.Src)

	if len(label) > 0 {
		c.faceMu.Lock()
		drawLabel(canvas, c.face, c.margin, label)
		c.faceMu.Unlock()
	}

	tint.A = 255
	fill := image.NewUniform(tint)
	layer := image.NewAlpha(bounds)

	for i, abundance := range abundances {
		// Zero (and anything that is not a positive number) would be an
		// invisible layer
		if !(abundance > 0) {
			continue
		}

		mask := lib.Mask(i)
		if scaled := math.Min(abundance*scale, 1); scaled < 1 {
			scaleAlpha(layer, mask, scaled)
			mask = layer
		}

		draw.DrawMask(canvas, bounds, fill, image.Point{}, mask, image.Point{}, draw.Over)
	}

	draw.Draw(canvas, bounds, lib.Template(), image.Point{}, draw.Over)

	return canvas
}

// scaleAlpha sets dst to src with every alpha value multiplied by factor and
// rounded to the nearest level. Both images must share bounds.
func scaleAlpha(dst, src *image.Alpha, factor float64) {
	for i, v := range src.Pix {
		dst.Pix[i] = uint8(math.Round(float64(v) * factor))
	}
}
