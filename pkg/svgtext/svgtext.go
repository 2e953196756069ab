package svgtext

import (
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the XML namespace of the root svg element.
const Namespace = "http://www.w3.org/2000/svg"

const (
	// middleBaselineDivisor approximates half the glyph height without
	// font metrics: y = height/2 + fontSize/3.5.
	middleBaselineDivisor = 3.5

	// bottomMargin is the distance of a bottom-aligned baseline from the
	// lower edge of the canvas.
	bottomMargin = 10.0
)

// Render returns an SVG document containing text laid out according to opts.
//
// The result has a single svg root sized Width x Height with one text
// element at ([AnchorX], [Baseline]). Text is not escaped and opts are not
// validated; invalid values produce invalid markup rather than an error.
// The returned string carries no leading or trailing whitespace.
func Render(text string, opts Options) string {
	cfg := Resolve(opts)
	x := AnchorX(cfg)
	y := Baseline(cfg)

	var b strings.Builder
	fmt.Fprintf(&b, "<svg width=\"%s\" height=\"%s\" xmlns=\"%s\">\n", Number(cfg.Width), Number(cfg.Height), Namespace)
	b.WriteString("    <text \n")
	fmt.Fprintf(&b, "        x=\"%s\" \n", Number(x))
	fmt.Fprintf(&b, "        y=\"%s\" \n", Number(y))
	fmt.Fprintf(&b, "        font-family=\"%s\" \n", cfg.FontFamily)
	fmt.Fprintf(&b, "        font-size=\"%s\" \n", Number(cfg.FontSize))
	fmt.Fprintf(&b, "        fill=\"%s\" \n", cfg.Fill)
	fmt.Fprintf(&b, "        stroke=\"%s\" \n", cfg.Stroke)
	fmt.Fprintf(&b, "        stroke-width=\"%s\"\n", Number(cfg.StrokeWidth))
	fmt.Fprintf(&b, "        text-anchor=\"%s\"\n", cfg.TextAlign)
	b.WriteString("        dominant-baseline=\"auto\"\n")
	b.WriteString("    >\n")
	fmt.Fprintf(&b, "        %s\n", text)
	b.WriteString("    </text>\n")
	b.WriteString("</svg>")

	return strings.TrimSpace(b.String())
}

// Baseline returns the y coordinate of the text baseline for resolved
// options. Unknown vertical alignments are treated as bottom.
func Baseline(cfg Options) float64 {
	switch cfg.VerticalAlign {
	case AlignMiddle:
		return cfg.Height/2 + cfg.FontSize/middleBaselineDivisor
	case AlignTop:
		return cfg.FontSize
	default:
		return cfg.Height - bottomMargin
	}
}

// AnchorX returns the x coordinate of the text anchor. It is the canvas
// center for every [Align] value.
func AnchorX(cfg Options) float64 {
	return cfg.Width / 2
}

// Number formats v in its shortest decimal form, e.g. 200 or 88.71428571428571.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Placement is a fully resolved configuration together with the anchor
// point Render uses for it.
type Placement struct {
	Options
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Place resolves opts and computes the anchor point.
func Place(opts Options) Placement {
	cfg := Resolve(opts)
	return Placement{Options: cfg, X: AnchorX(cfg), Y: Baseline(cfg)}
}
