// Package raster draws a text layout into a PNG without external tools.
//
// The layout matches the SVG produced by svgtext: same canvas, same anchor
// point, same baseline. Horizontal placement follows how SVG viewers treat
// the text-anchor attribute, so values other than "middle" and "end"
// (including the default "center") start the text at the anchor point.
//
// Glyphs are drawn with freetype using the embedded Go Regular font, not
// the requested font family. Strokes are approximated by painting offset
// copies of the glyphs underneath the fill.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/fonts"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// maxPixels bounds the canvas so absurd dimensions fail instead of
// allocating gigabytes.
const maxPixels = 64 << 20

// maxFontPixels bounds the scaled font size. The glyph mask grows with its
// square.
const maxFontPixels = 4096

// Render rasterizes text with the layout svgtext.Render would produce,
// scaled by scale (2.0 for 2x resolution). Scale <= 0 means 1.
func Render(text string, opts svgtext.Options, scale float64) ([]byte, error) {
	img, err := Draw(text, opts, scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Draw is Render without the PNG encoding.
func Draw(text string, opts svgtext.Options, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	p := svgtext.Place(opts)

	w, h := p.Width*scale, p.Height*scale
	if !finite(w) || !finite(h) || w < 1 || h < 1 || w*h > maxPixels {
		return nil, errors.New(errors.ErrCodeInvalidDimension,
			"cannot rasterize a %sx%s canvas at scale %s", svgtext.Number(p.Width), svgtext.Number(p.Height), svgtext.Number(scale))
	}
	size := p.FontSize * scale
	if !finite(size) || size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimension, "font size must be positive, got %s", svgtext.Number(p.FontSize))
	}
	if size > maxFontPixels || size > 4*max(w, h) {
		return nil, errors.New(errors.ErrCodeInvalidDimension,
			"font size %s is too large to rasterize on a %sx%s canvas", svgtext.Number(p.FontSize), svgtext.Number(p.Width), svgtext.Number(p.Height)).WithField("fontSize")
	}

	fill, hasFill, err := ParseColor(p.Fill)
	if err != nil {
		return nil, err
	}
	stroke, hasStroke, err := ParseColor(p.Stroke)
	if err != nil {
		return nil, err
	}

	face, err := fonts.Face(size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h))))
	d := &font.Drawer{Dst: img, Face: face}

	x := AnchorStart(p.X*scale, d.MeasureString(text), p.TextAlign)
	y := p.Y * scale

	if hasStroke && p.StrokeWidth > 0 {
		r := p.StrokeWidth * scale / 2
		for _, off := range ring(r) {
			drawAt(d, text, stroke, x+off.X, y+off.Y)
		}
	}
	if hasFill {
		drawAt(d, text, fill, x, y)
	}
	return img, nil
}

// AnchorStart returns the x where drawing starts for a run of the given
// advance width anchored at x.
func AnchorStart(x float64, advance fixed.Int26_6, anchor svgtext.Align) float64 {
	width := float64(advance) / 64
	switch anchor {
	case "middle":
		return x - width/2
	case "end":
		return x - width
	default:
		return x
	}
}

func drawAt(d *font.Drawer, text string, c color.RGBA, x, y float64) {
	d.Src = image.NewUniform(c)
	d.Dot = fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
	d.DrawString(text)
}

type offset struct{ X, Y float64 }

// ring returns points on a circle of radius r spaced roughly one pixel apart.
func ring(r float64) []offset {
	if r < 0.5 {
		r = 0.5
	}
	n := max(8, int(math.Ceil(2*math.Pi*r)))
	out := make([]offset, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = offset{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
