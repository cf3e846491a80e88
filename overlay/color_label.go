package overlay

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor reads a tint either as an RGB hex code ("#ff0000", "ff0000") or
// as three comma separated integers ("255,0,0"). The result is always opaque.
func ParseColor(code string) (color.RGBA, error) {
	code = strings.TrimSpace(code)

	if strings.Contains(code, ",") {
		parts := strings.Split(code, ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("Color %q should have 3 channels, found %d", code, len(parts))
		}

		channels := [3]int{}
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return color.RGBA{}, fmt.Errorf("Color %q: %w", code, err)
			}
			channels[i] = v
		}

		return TintFromRGB(channels[0], channels[1], channels[2])
	}

	return rgbaFromColorCode(code)
}

// TintFromRGB builds an opaque tint, checking that each channel is in 0-255.
func TintFromRGB(r, g, b int) (color.RGBA, error) {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("Color channel %d is outside of 0-255", v)
		}
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
}

// ColorCode formats c as a lower case hex code, e.g. #ff0000.
func ColorCode(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rgbaFromColorCode(colorCode string) (color.RGBA, error) {
	colorCode = strings.ToLower(strings.TrimPrefix(colorCode, "#"))

	if len(colorCode) != 6 {
		return color.RGBA{}, fmt.Errorf("Color code %q should have 6 hex digits", colorCode)
	}

	// Parse each channel
	r, err := strconv.ParseUint(colorCode[0:2], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := strconv.ParseUint(colorCode[2:4], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := strconv.ParseUint(colorCode[4:6], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}

	return color.RGBA{
		R: uint8(r),
		G: uint8(g),
		B: uint8(b),
		A: 255,
	}, nil
}
