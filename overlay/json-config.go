package overlay

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/microbemap"
	"github.com/carbocation/pfx"
)

// JSONConfig holds everything needed to turn an abundance table into images:
// where the data and the image resources live, and the rendering defaults.
// Command-line flags may override the rendering defaults.
type JSONConfig struct {
	ConfigPath string `json:"-"`

	// Abundance table
	DataPath  string `json:"data"`
	Layout    string `json:"layout"`
	Normalize bool   `json:"normalize"`

	// Image resources. Relative paths are resolved against Resources.
	Resources    string `json:"resources"`
	TemplatePath string `json:"template"`
	MaskPattern  string `json:"mask_pattern"`
	MaskManifest string `json:"mask_manifest"`
	MaskCount    int    `json:"mask_count"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`

	// Rendering
	FontPath    string  `json:"font"`
	FontSize    float64 `json:"font_size"`
	Margin      int     `json:"margin"`
	Aggregation string  `json:"aggregation"`
	Scale       float64 `json:"scale"`
	Color       string  `json:"color"`
}

// DefaultConfig matches the 56-region root template at 1920x1080.
func DefaultConfig() JSONConfig {
	return JSONConfig{
		Layout:       "MAPPING",
		TemplatePath: "Template.png",
		MaskPattern:  "%d_mask-01.png",
		MaskCount:    56,
		Width:        1920,
		Height:       1080,
		FontSize:     20,
		Margin:       10,
		Aggregation:  "mean",
		Scale:        1,
		Color:        "#ff0000",
	}
}

// ParseJSONConfigFromPath reads a config file on top of DefaultConfig, so a
// file only needs to name what differs.
func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := DefaultConfig()
	out.ConfigPath = path

	f, err := os.Open(microbemap.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	// Internally, go uses lower case for all colors, so we will too (while
	// permitting the user to use mixed case)
	out.Color = strings.ToLower(out.Color)

	// Interpret ~ if present
	out.ConfigPath = microbemap.ExpandHome(out.ConfigPath)
	out.DataPath = microbemap.ExpandHome(out.DataPath)
	out.Resources = microbemap.ExpandHome(out.Resources)
	out.MaskManifest = microbemap.ExpandHome(out.MaskManifest)
	out.FontPath = microbemap.ExpandHome(out.FontPath)

	return out, pfx.Err(out.Validate())
}

// Validate checks the values that rendering depends on.
func (c JSONConfig) Validate() error {
	if c.MaskCount < 1 {
		return fmt.Errorf("mask_count must be positive, got %d", c.MaskCount)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height cannot be negative, got %dx%d", c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", c.FontSize)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin cannot be negative, got %d", c.Margin)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale cannot be negative, got %v", c.Scale)
	}
	if c.MaskManifest == "" && !strings.Contains(c.MaskPattern, "%") {
		return fmt.Errorf("mask_pattern %q needs a verb (such as %%d) for the mask number", c.MaskPattern)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}

	return nil
}

// ResourcePath resolves name against the resources folder, which may be a
// local folder or a gs:// prefix. Absolute and gs:// names are left alone.
func (c JSONConfig) ResourcePath(name string) string {
	name = microbemap.ExpandHome(name)

	if c.Resources == "" || filepath.IsAbs(name) || microbemap.IsGoogleStoragePath(name) {
		return name
	}

	if microbemap.IsGoogleStoragePath(c.Resources) {
		return strings.TrimSuffix(c.Resources, "/") + "/" + name
	}

	return filepath.Join(c.Resources, name)
}

// Paths lists every file the config points at, for deciding whether a Google
// Storage client is needed.
func (c JSONConfig) Paths() []string {
	return []string{c.DataPath, c.Resources, c.MaskManifest, c.FontPath, c.ResourcePath(c.TemplatePath)}
}
