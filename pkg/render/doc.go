// Package render converts rendered SVG documents into other formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := svgtext.Render("ZALA13", opts)
//	pdf, err := render.ToPDF(ctx, []byte(svg))
//	png, err := render.ToPNG(ctx, []byte(svg), 2.0)  // 2x scale
//
// When rsvg-convert is not installed the functions return an error with
// code MISSING_TOOLING.
//
// # Native Raster Preview
//
// The [raster] subpackage draws the same layout with an embedded font and
// needs no external tools. The pipeline uses it for the png format.
//
// [raster]: github.com/matzehuels/textsvg/pkg/render/raster
package render
