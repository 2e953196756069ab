// Package pkg provides the libraries behind textsvg.
//
// # Overview
//
// textsvg renders a single line of text into a standalone SVG document. The
// pkg directory is organized by concern:
//
//  1. [svgtext] - the renderer: option defaults, layout, SVG output
//  2. [pipeline] - orchestration: formats, caching, hooks
//  3. [render] - conversion: PDF and PNG via rsvg-convert, native PNG in render/raster
//  4. [cache], [config], [io] - infrastructure: artifact cache, settings and presets, files
//  5. [errors], [observability], [buildinfo], [fonts] - supporting packages
//
// # Data Flow
//
//	text + Options
//	      ↓
//	[svgtext.Resolve] (zero fields take defaults)
//	      ↓
//	[svgtext.Render] (anchor x, baseline y, SVG markup)
//	      ↓
//	[pipeline] (svg, png, pdf, json; cached by resolved options)
//
// # Quick Start
//
//	import "github.com/matzehuels/textsvg/pkg/svgtext"
//
//	svg := svgtext.Render("ZALA13", svgtext.Options{
//	    Width:       400,
//	    Height:      200,
//	    FontSize:    60,
//	    Fill:        "#2c3e50",
//	    Stroke:      "#ecf0f1",
//	    StrokeWidth: 2,
//	})
//
// [svgtext]: github.com/matzehuels/textsvg/pkg/svgtext
// [pipeline]: github.com/matzehuels/textsvg/pkg/pipeline
// [render]: github.com/matzehuels/textsvg/pkg/render
// [cache]: github.com/matzehuels/textsvg/pkg/cache
// [config]: github.com/matzehuels/textsvg/pkg/config
// [io]: github.com/matzehuels/textsvg/pkg/io
// [errors]: github.com/matzehuels/textsvg/pkg/errors
// [observability]: github.com/matzehuels/textsvg/pkg/observability
// [buildinfo]: github.com/matzehuels/textsvg/pkg/buildinfo
// [fonts]: github.com/matzehuels/textsvg/pkg/fonts
// [svgtext.Resolve]: github.com/matzehuels/textsvg/pkg/svgtext.Resolve
// [svgtext.Render]: github.com/matzehuels/textsvg/pkg/svgtext.Render
package pkg
