// Package svgtext renders a short text string into a standalone SVG document.
//
// # Overview
//
// [Render] is a pure function: it resolves an [Options] value against the
// package defaults, computes a baseline and an anchor position, and
// interpolates everything into a fixed SVG template. The same inputs always
// produce the same bytes.
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
// # Defaults
//
// Every field of [Options] is resolved on its own. A zero value (0 or "")
// means "not set" and takes the default, so Width: 0 renders at 300 wide.
// There is no way to request a literal zero; see [Resolve].
//
// # Layout
//
// The vertical baseline depends on [Options.VerticalAlign] (see [Baseline]).
// The horizontal position is always the canvas center (see [AnchorX]);
// [Options.TextAlign] is written verbatim into the text-anchor attribute and
// does not move the anchor point.
//
// # Trusted Input
//
// Text and string fields are embedded as-is. Callers that handle untrusted
// input should pass text through [EscapeText] and check options with
// [Validate] before rendering. Neither is applied by [Render].
package svgtext
