package svgtext

// Align is the horizontal alignment written to the text-anchor attribute.
type Align string

// Supported horizontal alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VerticalAlign selects how the baseline is placed on the canvas.
type VerticalAlign string

// Supported vertical alignments.
const (
	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "middle"
	AlignBottom VerticalAlign = "bottom"
)

// Default values applied by [Resolve].
const (
	DefaultWidth         = 300.0
	DefaultHeight        = 150.0
	DefaultFontSize      = 48.0
	DefaultFontFamily    = "Arial, Helvetica, sans-serif"
	DefaultFill          = "#000000"
	DefaultStroke        = "none"
	DefaultStrokeWidth   = 1.0
	DefaultTextAlign     = AlignCenter
	DefaultVerticalAlign = AlignMiddle
)

// Options configures a rendering. The zero value of every field means
// "use the default".
type Options struct {
	Width         float64       `json:"width,omitempty" toml:"width,omitempty"`
	Height        float64       `json:"height,omitempty" toml:"height,omitempty"`
	FontSize      float64       `json:"fontSize,omitempty" toml:"font_size,omitempty"`
	FontFamily    string        `json:"fontFamily,omitempty" toml:"font_family,omitempty"`
	Fill          string        `json:"fill,omitempty" toml:"fill,omitempty"`
	Stroke        string        `json:"stroke,omitempty" toml:"stroke,omitempty"`
	StrokeWidth   float64       `json:"strokeWidth,omitempty" toml:"stroke_width,omitempty"`
	TextAlign     Align         `json:"textAlign,omitempty" toml:"text_align,omitempty"`
	VerticalAlign VerticalAlign `json:"verticalAlign,omitempty" toml:"vertical_align,omitempty"`
}

// Resolve returns a copy of opts with every zero field replaced by its
// default. Fields are independent: setting one never affects another.
//
// Zero and empty values are indistinguishable from absent ones, so
// Width: 0 resolves to [DefaultWidth]. Negative numbers are kept.
func Resolve(opts Options) Options {
	return Options{
		Width:         or(opts.Width, DefaultWidth),
		Height:        or(opts.Height, DefaultHeight),
		FontSize:      or(opts.FontSize, DefaultFontSize),
		FontFamily:    or(opts.FontFamily, DefaultFontFamily),
		Fill:          or(opts.Fill, DefaultFill),
		Stroke:        or(opts.Stroke, DefaultStroke),
		StrokeWidth:   or(opts.StrokeWidth, DefaultStrokeWidth),
		TextAlign:     or(opts.TextAlign, DefaultTextAlign),
		VerticalAlign: or(opts.VerticalAlign, DefaultVerticalAlign),
	}
}

// Merge overlays the non-zero fields of override onto base.
// It is used to apply command-line flags on top of a preset.
func Merge(base, override Options) Options {
	return Options{
		Width:         or(override.Width, base.Width),
		Height:        or(override.Height, base.Height),
		FontSize:      or(override.FontSize, base.FontSize),
		FontFamily:    or(override.FontFamily, base.FontFamily),
		Fill:          or(override.Fill, base.Fill),
		Stroke:        or(override.Stroke, base.Stroke),
		StrokeWidth:   or(override.StrokeWidth, base.StrokeWidth),
		TextAlign:     or(override.TextAlign, base.TextAlign),
		VerticalAlign: or(override.VerticalAlign, base.VerticalAlign),
	}
}

// or returns v unless it is the zero value of its type.
func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
