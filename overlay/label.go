package overlay

import (
	"image"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/microbemap"
	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LabelSeparator joins the names of a breadcrumb label.
const LabelSeparator = "  >  "

// LoadFontFace loads the label font at the given size in pixels. Local font
// files go through gg and gs:// fonts are parsed from memory. An empty path
// selects the built-in Go Regular font, so rendering never depends on fonts
// installed on the machine.
func LoadFontFace(path string, size float64, client *storage.Client) (font.Face, error) {
	if path == "" {
		return faceFromBytes(goregular.TTF, size)
	}

	if !microbemap.IsGoogleStoragePath(path) {
		face, err := gg.LoadFontFace(path, size)
		return face, pfx.Err(err)
	}

	f, err := microbemap.MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	fontBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return faceFromBytes(fontBytes, size)
}

func faceFromBytes(fontBytes []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, pfx.Err(err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return face, pfx.Err(err)
}

// drawLabel writes the breadcrumb in black with its top left corner at
// margin. An empty breadcrumb draws nothing.
func drawLabel(canvas *image.RGBA, face font.Face, margin image.Point, segments []string) {
	text := strings.Join(segments, LabelSeparator)
	if text == "" || face == nil {
		return
	}

	ctx := gg.NewContextForRGBA(canvas)
	ctx.SetFontFace(face)
	ctx.SetRGB(0, 0, 0)

	// gg positions text by its baseline
	ascent := float64(face.Metrics().Ascent) / 64
	ctx.DrawString(text, float64(margin.X), float64(margin.Y)+ascent)
}
