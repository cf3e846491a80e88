package overlay

import (
	"fmt"
	"image"
	"image/draw"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/carbocation/microbemap"
	"github.com/gocarina/gocsv"
)

// MaskLibrary is the fixed, ordered set of region masks plus the template
// that is painted over every render. Mask i lines up with entry i of every
// abundance vector. A MaskLibrary is never modified after it is built, so one
// library can back any number of concurrent renders.
type MaskLibrary struct {
	masks    []*image.Alpha
	regions  []string
	template *image.RGBA
	bounds   image.Rectangle
}

// MaskManifestEntry is one row of a mask manifest: a CSV with the columns
// index (1-based position in the abundance vector), region and file.
type MaskManifestEntry struct {
	Index  int    `csv:"index"`
	Region string `csv:"region"`
	File   string `csv:"file"`
}

// NewMaskLibrary builds a library from already decoded images. Only the alpha
// channel of each mask is kept. expected is the number of masks the
// abundance vectors call for.
func NewMaskLibrary(masks []image.Image, template image.Image, expected int) (*MaskLibrary, error) {
	if template == nil {
		return nil, &ResourceLoadError{Reason: "no template image"}
	}

	if len(masks) != expected {
		return nil, &ResourceLoadError{Reason: fmt.Sprintf("found %d masks, but abundance vectors have %d entries", len(masks), expected)}
	}

	size := template.Bounds().Size()
	lib := &MaskLibrary{
		masks:    make([]*image.Alpha, 0, len(masks)),
		regions:  make([]string, len(masks)),
		template: image.NewRGBA(image.Rectangle{Max: size}),
		bounds:   image.Rectangle{Max: size},
	}
	draw.Draw(lib.template, lib.bounds, template, template.Bounds().Min, draw.Src)

	for i, m := range masks {
		if m == nil {
			return nil, &ResourceLoadError{Reason: fmt.Sprintf("mask %d is missing", i+1)}
		}
		if m.Bounds().Size() != size {
			return nil, &ResourceLoadError{Reason: fmt.Sprintf("mask %d is %v but the template is %v", i+1, m.Bounds().Size(), size)}
		}

		lib.masks = append(lib.masks, alphaChannel(m))
	}

	return lib, nil
}

// LoadMaskLibrary reads the template and every mask named by the config,
// either through the mask manifest or through the numbered mask pattern.
func LoadMaskLibrary(config JSONConfig, client *storage.Client) (*MaskLibrary, error) {
	maskPaths, regions, err := config.maskFiles(client)
	if err != nil {
		return nil, err
	}

	templatePath := config.ResourcePath(config.TemplatePath)
	template, err := OpenImageFromLocalFileOrGoogleStorage(templatePath, client)
	if err != nil {
		return nil, &ResourceLoadError{Path: templatePath, Reason: "cannot read template", Err: err}
	}

	if config.Width > 0 && config.Height > 0 {
		if want := image.Pt(config.Width, config.Height); template.Bounds().Size() != want {
			return nil, &ResourceLoadError{Path: templatePath, Reason: fmt.Sprintf("template is %v, expected %v", template.Bounds().Size(), want)}
		}
	}

	masks := make([]image.Image, 0, len(maskPaths))
	for _, maskPath := range maskPaths {
		m, err := OpenImageFromLocalFileOrGoogleStorage(maskPath, client)
		if err != nil {
			return nil, &ResourceLoadError{Path: maskPath, Reason: "cannot read mask", Err: err}
		}

		masks = append(masks, m)
	}

	lib, err := NewMaskLibrary(masks, template, config.MaskCount)
	if err != nil {
		if rle, ok := err.(*ResourceLoadError); ok && rle.Path == "" {
			rle.Path = config.Resources
		}
		return nil, err
	}
	copy(lib.regions, regions)

	return lib, nil
}

// maskFiles lists the mask paths in abundance order, and their region names
// when a manifest provides them.
func (c JSONConfig) maskFiles(client *storage.Client) ([]string, []string, error) {
	if c.MaskManifest == "" {
		paths := make([]string, 0, c.MaskCount)
		for i := 1; i <= c.MaskCount; i++ {
			paths = append(paths, c.ResourcePath(fmt.Sprintf(c.MaskPattern, i)))
		}

		return paths, nil, nil
	}

	manifestPath := c.ResourcePath(c.MaskManifest)
	f, err := microbemap.MaybeOpenFromGoogleStorage(manifestPath, client)
	if err != nil {
		return nil, nil, &ResourceLoadError{Path: manifestPath, Reason: "cannot read mask manifest", Err: err}
	}
	defer f.Close()

	entries := []*MaskManifestEntry{}
	if err := gocsv.Unmarshal(f, &entries); err != nil {
		return nil, nil, &ResourceLoadError{Path: manifestPath, Reason: "cannot parse mask manifest", Err: err}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })

	paths := make([]string, 0, len(entries))
	regions := make([]string, 0, len(entries))
	for i, e := range entries {
		if e.Index != i+1 {
			return nil, nil, &ResourceLoadError{Path: manifestPath, Reason: fmt.Sprintf("mask indices must run from 1 without gaps or repeats; found %d at position %d", e.Index, i+1)}
		}

		paths = append(paths, c.ResourcePath(e.File))
		regions = append(regions, e.Region)
	}

	return paths, regions, nil
}

// alphaChannel copies the alpha of img into a new zero-origin Alpha image.
func alphaChannel(img image.Image) *image.Alpha {
	b := img.Bounds()
	out := image.NewAlpha(image.Rectangle{Max: b.Size()})

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				out.Pix[y*out.Stride+x] = row[4*x+3]
			}
		}
	case *image.RGBA:
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				out.Pix[y*out.Stride+x] = row[4*x+3]
			}
		}
	default:
		// Anything without an alpha channel of its own (gray, paletted
		// without transparency) comes out fully opaque.
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	}

	return out
}

// Len is the number of masks, which is also the abundance vector length.
func (l *MaskLibrary) Len() int {
	return len(l.masks)
}

// Bounds is the pixel rectangle shared by the template and every mask.
func (l *MaskLibrary) Bounds() image.Rectangle {
	return l.bounds
}

// Mask returns the alpha channel of mask i. It must not be modified.
func (l *MaskLibrary) Mask(i int) *image.Alpha {
	return l.masks[i]
}

// Template returns the top layer artwork. It must not be modified.
func (l *MaskLibrary) Template() *image.RGBA {
	return l.template
}

// Region names mask i, falling back to its 1-based number when no manifest
// named it.
func (l *MaskLibrary) Region(i int) string {
	if i >= 0 && i < len(l.regions) && l.regions[i] != "" {
		return l.regions[i]
	}

	return fmt.Sprintf("region %d", i+1)
}
