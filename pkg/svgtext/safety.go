package svgtext

import (
	"encoding/xml"
	"math"
	"strings"

	"github.com/matzehuels/textsvg/pkg/errors"
)

// EscapeText escapes XML-significant characters so that s can be used as
// text content. Render never calls it.
func EscapeText(s string) string {
	var b strings.Builder
	// Writes to a strings.Builder never fail.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Validate reports options that would produce malformed or meaningless
// markup: negative or non-finite sizes and unknown alignments. Zero values
// are accepted because [Resolve] replaces them.
//
// Validate is advisory. [Render] accepts anything.
func Validate(opts Options) error {
	sizes := []struct {
		name  string
		field string
		v     float64
	}{
		{"width", "width", opts.Width},
		{"height", "height", opts.Height},
		{"font size", "fontSize", opts.FontSize},
		{"stroke width", "strokeWidth", opts.StrokeWidth},
	}
	for _, s := range sizes {
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return errors.New(errors.ErrCodeInvalidDimension, "%s must be finite", s.name).WithField(s.field)
		}
		if s.v < 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "%s must not be negative, got %s", s.name, Number(s.v)).WithField(s.field)
		}
	}

	switch opts.TextAlign {
	case "", AlignLeft, AlignCenter, AlignRight:
	default:
		return errors.New(errors.ErrCodeInvalidAlign, "unknown text align %q (must be left, center, or right)", opts.TextAlign).WithField("textAlign")
	}

	switch opts.VerticalAlign {
	case "", AlignTop, AlignMiddle, AlignBottom:
	default:
		return errors.New(errors.ErrCodeInvalidAlign, "unknown vertical align %q (must be top, middle, or bottom)", opts.VerticalAlign).WithField("verticalAlign")
	}

	return nil
}
