package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/render"
	"github.com/matzehuels/textsvg/pkg/render/raster"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// renderFunc produces one format. svg is the document every format derives
// from.
type renderFunc func(ctx context.Context, opts Options, svg []byte) ([]byte, error)

var renderers = map[string]renderFunc{
	FormatSVG:  renderSVG,
	FormatPNG:  renderPNG,
	FormatPDF:  renderPDF,
	FormatJSON: renderLayout,
}

// Render produces every requested format without touching a cache. Options
// must have passed ValidateAndSetDefaults.
func Render(ctx context.Context, opts Options) (map[string][]byte, error) {
	svg := []byte(svgtext.Render(opts.Text, opts.Style))
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fn, ok := renderers[format]
		if !ok {
			return nil, ValidateFormat(format)
		}
		data, err := fn(ctx, opts, svg)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(_ context.Context, _ Options, svg []byte) ([]byte, error) {
	return svg, nil
}

// renderPNG draws the layout natively unless rsvg-convert was asked for.
func renderPNG(ctx context.Context, opts Options, svg []byte) ([]byte, error) {
	if opts.Rasterizer == RasterRSVG {
		return render.ToPNG(ctx, svg, opts.Scale)
	}
	return raster.Render(opts.Text, opts.Style, opts.Scale)
}

func renderPDF(ctx context.Context, _ Options, svg []byte) ([]byte, error) {
	return render.ToPDF(ctx, svg)
}

// layoutDocument is the json artifact.
type layoutDocument struct {
	Text string `json:"text"`
	svgtext.Placement
}

// renderLayout fails with INVALID_DIMENSION when a number has no JSON form
// (NaN, ±Inf).
func renderLayout(_ context.Context, opts Options, _ []byte) ([]byte, error) {
	data, err := json.MarshalIndent(layoutDocument{Text: opts.Text, Placement: svgtext.Place(opts.Style)}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDimension, err, "layout has a non-finite number")
	}
	return data, nil
}
