// Package pipeline turns a text and its options into output artifacts.
//
// This package is the single entry point used by both the CLI and the HTTP
// server, so that defaults, validation and caching behave the same
// everywhere.
//
// # Formats
//
//   - svg: the document produced by [svgtext.Render]
//   - png: a raster preview, drawn natively or converted with rsvg-convert
//   - pdf: the SVG converted with rsvg-convert
//   - json: the resolved options and anchor point, for tooling
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    "ZALA13",
//	    Style:   svgtext.Options{Width: 400, Height: 200, FontSize: 60},
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [svgtext.Render]: github.com/matzehuels/textsvg/pkg/svgtext.Render
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textsvg/pkg/cache"
	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// =============================================================================
// Defaults shared by the CLI and the server
// =============================================================================

// DefaultScale multiplies the SVG size for PNG output.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Rasterizers for PNG output.
const (
	RasterNative = "native"
	RasterRSVG   = "rsvg"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Rasterizers lists the PNG backends.
var Rasterizers = []string{RasterNative, RasterRSVG}

// =============================================================================
// Options
// =============================================================================

// Options describes one pipeline run. It decodes from the JSON body of a
// render request.
type Options struct {
	Text       string          `json:"text"`
	Style      svgtext.Options `json:"options"`
	Formats    []string        `json:"formats,omitempty"`
	Scale      float64         `json:"scale,omitempty"`
	Rasterizer string          `json:"rasterizer,omitempty"`
	Refresh    bool            `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is what a run produced.
type Result struct {
	Placement svgtext.Placement // resolved options and anchor point
	Artifacts map[string][]byte // keyed by format
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats reports how long a run took and how much it produced.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo reports whether the artifacts were served from the cache.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat returns INVALID_FORMAT for anything not in [Formats].
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats, ", ")).WithField("format")
	}
	return nil
}

// ValidateFormats stops at the first invalid format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats
}

// ValidateRasterizer returns INVALID_INPUT for anything not in [Rasterizers].
func ValidateRasterizer(name string) error {
	if !slices.Contains(Rasterizers, name) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid rasterizer: %q (must be one of: %s)",
			name, strings.Join(Rasterizers, ", ")).WithField("rasterizer")
	}
	return nil
}

// ValidateAndSetDefaults requires Text, checks formats and rasterizer, and
// fills Formats, Scale, Rasterizer and Logger. Style is left alone since
// svgtext renders any options. Later calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "text is required").WithField("text")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Rasterizer == "" {
		o.Rasterizer = RasterNative
	}
	if err := ValidateRasterizer(o.Rasterizer); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Options are
// resolved first so that explicit defaults share a key with omitted ones.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Options: svgtext.Resolve(o.Style),
	}
	if format == FormatPNG {
		k.Format = format + "+" + o.Rasterizer
		k.Scale = o.Scale
	}
	return k
}
