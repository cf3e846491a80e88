package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/carbocation/microbemap/abundance"
	"github.com/carbocation/microbemap/strains"
	"github.com/carbocation/microbemap/taxa"
	"github.com/carbocation/microbemap/taxindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{R: 255, A: 255}

func newCompositor(t *testing.T, lib *MaskLibrary) *Compositor {
	t.Helper()

	face, err := LoadFontFace("", 20, nil)
	require.NoError(t, err)

	return NewCompositor(lib, face, 10)
}

// expectedBlank is the white canvas, the label and the template with nothing
// in between.
func expectedBlank(c *Compositor, label []string) *image.RGBA {
	lib := c.Library()
	out := image.NewRGBA(lib.Bounds())
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	drawLabel(out, c.face, c.margin, label)
	draw.Draw(out, out.Bounds(), lib.Template(), image.Point{}, draw.Over)
	return out
}

func TestRenderAllZeroIsBlank(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 160, 60))

	for _, label := range [][]string{nil, {"Proteobacteria", "Gamma"}} {
		got := c.Render([]float64{0, 0}, label, red, 1)
		assert.Equal(t, expectedBlank(c, label).Pix, got.Pix, "label %v", label)

		// No tint anywhere
		for i := 0; i < len(got.Pix); i += 4 {
			if got.Pix[i] != got.Pix[i+1] || got.Pix[i+1] != got.Pix[i+2] {
				t.Fatalf("found a tinted pixel at offset %d: %v", i, got.Pix[i:i+4])
			}
		}
	}
}

func TestRenderSaturates(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 4, 2))

	// 0.5 * 4 >= 1, so the left mask is painted at full strength
	got := c.Render([]float64{0.5, 0}, nil, red, 4)

	assert.Equal(t, red, got.RGBAAt(0, 0))
	assert.Equal(t, red, got.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, got.RGBAAt(2, 0))

	// The template's opaque pixel always wins
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, got.RGBAAt(3, 1))
}

func TestRenderNearlySaturatedRoundsUp(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 4, 2))

	// 255 * 0.999 rounds to a fully opaque layer
	got := c.Render([]float64{0.999, 0}, nil, red, 1)
	assert.Equal(t, red, got.RGBAAt(0, 0))
}

func TestRenderPartialAlpha(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 4, 2))

	got := c.Render([]float64{0, 0.5}, nil, color.RGBA{G: 255}, 1)

	// alpha = round(255*0.5) = 128 of green over white
	px := got.RGBAAt(2, 0)
	assert.InDelta(t, 128, int(px.R), 1)
	assert.Equal(t, uint8(255), px.G)
	assert.InDelta(t, 128, int(px.B), 1)
	assert.Equal(t, uint8(255), px.A)

	// The left half is untouched
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, got.RGBAAt(0, 0))
}

// Overlapping masks stack by alpha compositing rather than taking a maximum.
func TestRenderOverlapComposites(t *testing.T) {
	w, h := 4, 2
	all := bandMask(w, h, func(x, y int) bool { return true })
	lib, err := NewMaskLibrary([]image.Image{all, all}, image.NewNRGBA(image.Rect(0, 0, w, h)), 2)
	require.NoError(t, err)

	c := newCompositor(t, lib)

	one := c.Render([]float64{0.5, 0}, nil, red, 1).RGBAAt(0, 0)
	two := c.Render([]float64{0.5, 0.5}, nil, red, 1).RGBAAt(0, 0)

	assert.InDelta(t, 128, int(one.G), 1)
	assert.InDelta(t, 64, int(two.G), 1)
	assert.Equal(t, uint8(255), two.R)
}

func TestRenderScaleZeroMeansOne(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 4, 2))

	v := []float64{0.25, 0.75}
	assert.Equal(t, c.Render(v, nil, red, 1).Pix, c.Render(v, nil, red, 0).Pix)
}

func TestRenderIgnoresTintAlpha(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 4, 2))

	v := []float64{1, 0}
	assert.Equal(t, c.Render(v, nil, red, 1).Pix, c.Render(v, nil, color.RGBA{R: 255}, 1).Pix)
}

func TestRenderContractViolationsPanic(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 4, 2))

	assert.Panics(t, func() { c.Render([]float64{1}, nil, red, 1) })
	assert.Panics(t, func() { c.Render([]float64{1, 0, 0}, nil, red, 1) })
	assert.Panics(t, func() { c.Render([]float64{1, 0}, nil, red, -1) })
}

func TestRenderDoesNotTouchLibrary(t *testing.T) {
	lib := twoMaskLibrary(t, 4, 2)
	before := append([]uint8(nil), lib.Mask(0).Pix...)
	template := append([]uint8(nil), lib.Template().Pix...)

	newCompositor(t, lib).Render([]float64{0.3, 0.9}, nil, red, 2)

	assert.Equal(t, before, lib.Mask(0).Pix)
	assert.Equal(t, template, lib.Template().Pix)
}

func TestRenderLabel(t *testing.T) {
	c := newCompositor(t, twoMaskLibrary(t, 160, 60))

	hasInk := func(img *image.RGBA) bool {
		for y := 10; y < 40; y++ {
			for x := 10; x < 80; x++ {
				if img.RGBAAt(x, y).R < 128 {
					return true
				}
			}
		}
		return false
	}

	assert.True(t, hasInk(c.Render([]float64{0, 0}, []string{"Foo"}, red, 1)))
	assert.False(t, hasInk(c.Render([]float64{0, 0}, nil, red, 1)))

	// Nothing is drawn above or left of the margin
	shown := c.Render([]float64{0, 0}, []string{"Foo"}, red, 1)
	for x := 0; x < 160; x++ {
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, shown.RGBAAt(x, 0))
	}
}

// Two strains of genus Foo, summed and rendered in red.
func TestRenderGenusEndToEnd(t *testing.T) {
	w, h := 160, 60
	bottom := bandMask(w, h, func(x, y int) bool { return y >= 40 })
	top := bandMask(w, h, func(x, y int) bool { return y < 5 })
	lib, err := NewMaskLibrary([]image.Image{bottom, top}, borderTemplate(w, h), 2)
	require.NoError(t, err)

	foo := map[taxa.Rank]string{taxa.Phylum: "Firmicutes", taxa.Genus: "Foo"}
	all := []*strains.Strain{
		strains.New("1", foo, []float64{0.5, 0}),
		strains.New("2", map[taxa.Rank]string{taxa.Genus: "Bar"}, []float64{0.9, 0.9}),
		strains.New("3", foo, []float64{0.3, 0}),
	}

	idx := taxindex.Build(all)
	group := idx.Lookup(taxa.Genus, "Foo")
	require.Len(t, group, 2)

	v, err := abundance.Aggregate(group, abundance.Sum, lib.Len())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, 0}, v, 1e-12)

	label := taxindex.Breadcrumb(taxa.Genus, group)
	assert.Equal(t, []string{"Firmicutes", "Foo"}, label)

	c := newCompositor(t, lib)
	got := c.Render(v, []string{"Foo"}, red, 1)

	// Mask 0 is red at alpha uint8(255*0.8) = 204 over white
	px := got.RGBAAt(5, 50)
	assert.Equal(t, uint8(255), px.R)
	assert.InDelta(t, 51, int(px.G), 1)
	assert.InDelta(t, 51, int(px.B), 1)

	// Mask 1 is untouched
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, got.RGBAAt(150, 0))

	// Template on top
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, got.RGBAAt(w-1, h-1))

	// Label is there
	dark := 0
	for y := 10; y < 35; y++ {
		for x := 10; x < 60; x++ {
			if got.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 0)
}
