package svgtext

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textsvg/pkg/errors"
)

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "ZALA13", EscapeText("ZALA13"))
	assert.Equal(t, "&lt;b&gt;a &amp; b&lt;/b&gt;", EscapeText("<b>a & b</b>"))
	assert.Equal(t, "&#34;q&#39;", EscapeText(`"q'`))
}

func TestEscapedTextRendersWellFormed(t *testing.T) {
	doc := decode(t, Render(EscapeText("a<b"), Options{}))
	assert.Contains(t, doc.Text[0].Content, "a<b")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		code  errors.Code
		field string
	}{
		{"zero value", Options{}, "", ""},
		{"typical", Options{Width: 400, Height: 200, TextAlign: AlignLeft, VerticalAlign: AlignBottom}, "", ""},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidDimension, "width"},
		{"negative stroke", Options{StrokeWidth: -2}, errors.ErrCodeInvalidDimension, "strokeWidth"},
		{"NaN font size", Options{FontSize: math.NaN()}, errors.ErrCodeInvalidDimension, "fontSize"},
		{"infinite height", Options{Height: math.Inf(1)}, errors.ErrCodeInvalidDimension, "height"},
		{"unknown align", Options{TextAlign: "justify"}, errors.ErrCodeInvalidAlign, "textAlign"},
		{"unknown valign", Options{VerticalAlign: "baseline"}, errors.ErrCodeInvalidAlign, "verticalAlign"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.opts)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Equal(t, tt.field, errors.FieldOf(err))
		})
	}
}
