package main

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/microbemap/abundance"
	"github.com/carbocation/microbemap/overlay"
	"github.com/carbocation/microbemap/strains"
	"github.com/carbocation/microbemap/taxa"
	"github.com/carbocation/microbemap/taxindex"
)

// session holds the loaded, read-only data plus the user's current rendering
// choices.
type session struct {
	client      *storage.Client
	index       *taxindex.Index
	compositor  *overlay.Compositor
	strainCount int

	mode         abundance.Mode
	tint         color.RGBA
	scale        float64
	autoscale    bool
	hideName     bool
	previewWidth int
}

// rendering is the outcome of one query.
type rendering struct {
	Rank       taxa.Rank
	Name       string
	Strains    int
	Abundances []float64
	Label      []string
	Scale      float64
	Image      image.Image
}

func newSession(config overlay.JSONConfig, client *storage.Client) (*session, error) {
	mode, err := abundance.ParseMode(config.Aggregation)
	if err != nil {
		return nil, err
	}

	tint, err := overlay.ParseColor(config.Color)
	if err != nil {
		return nil, err
	}

	parser, err := strains.NewParser(config.Layout, config.MaskCount)
	if err != nil {
		return nil, err
	}

	all, err := parser.ParseFile(config.DataPath, client)
	if err != nil {
		return nil, err
	}

	if config.Normalize {
		if all, err = strains.Normalize(all); err != nil {
			return nil, err
		}
	}

	lib, err := overlay.LoadMaskLibrary(config, client)
	if err != nil {
		return nil, err
	}

	face, err := overlay.LoadFontFace(config.FontPath, config.FontSize, client)
	if err != nil {
		return nil, err
	}

	return &session{
		client:      client,
		index:       taxindex.Build(all),
		compositor:  overlay.NewCompositor(lib, face, config.Margin),
		strainCount: len(all),
		mode:        mode,
		tint:        tint,
		scale:       config.Scale,
	}, nil
}

// render aggregates and paints the strains at (rank, name). A query that
// matches nothing returns a nil rendering and no error.
func (s *session) render(rank taxa.Rank, name string) (*rendering, error) {
	group := s.index.Lookup(rank, name)
	if len(group) == 0 {
		return nil, nil
	}

	lib := s.compositor.Library()
	v, err := abundance.Aggregate(group, s.mode, lib.Len())
	if err != nil {
		return nil, err
	}

	out := &rendering{
		Rank:       rank,
		Name:       name,
		Strains:    len(group),
		Abundances: v,
		Scale:      s.scale,
	}

	out.Label = taxindex.Breadcrumb(rank, group)

	if s.autoscale {
		out.Scale = abundance.AutoScale(v)
	}

	var label []string
	if !s.hideName {
		label = out.Label
	}

	out.Image = s.compositor.Render(v, label, s.tint, out.Scale)

	return out, nil
}

// save writes the rendering, plus a preview when a preview width is set.
func (s *session) save(r *rendering, path string) error {
	if err := overlay.SaveImage(r.Image, path, s.client); err != nil {
		return err
	}

	if s.previewWidth > 0 {
		ext := filepath.Ext(path)
		previewPath := strings.TrimSuffix(path, ext) + ".preview" + ext
		if err := overlay.SaveImage(overlay.Thumbnail(r.Image, s.previewWidth), previewPath, s.client); err != nil {
			return err
		}
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (r *rendering) defaultFilename() string {
	return unsafeFilenameChars.ReplaceAllString(r.Rank.String()+"_"+r.Name, "_") + ".png"
}

func (r *rendering) describe() string {
	sum := abundance.Summarize(r.Abundances)
	return fmt.Sprintf("%d strains, %d of %d regions non-zero, max %.4g, p99 %.4g, scale %.4g", r.Strains, sum.NonZero, sum.Regions, sum.Max, sum.P99, r.Scale)
}
