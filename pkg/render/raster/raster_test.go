package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// paintedColumns returns the leftmost and rightmost columns with any
// non-transparent pixel, or -1, -1 for a blank image.
func paintedColumns(img *image.RGBA) (int, int) {
	left, right := -1, -1
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if img.RGBAAt(x, y).A > 0 {
				if left < 0 {
					left = x
				}
				right = x
				break
			}
		}
	}
	return left, right
}

func TestRenderDefaults(t *testing.T) {
	data, err := Render("ZALA13", svgtext.Options{}, 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestDrawScale(t *testing.T) {
	img, err := Draw("A", svgtext.Options{Width: 100, Height: 50}, 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	img, err = Draw("A", svgtext.Options{Width: 100, Height: 50}, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())
}

func TestDrawAnchors(t *testing.T) {
	start, err := Draw("ZALA13", svgtext.Options{}, 1)
	require.NoError(t, err)
	left, _ := paintedColumns(start)
	assert.GreaterOrEqual(t, left, 145, "center is not an SVG anchor and starts at x=150")

	middle, err := Draw("ZALA13", svgtext.Options{TextAlign: "middle"}, 1)
	require.NoError(t, err)
	l, r := paintedColumns(middle)
	assert.Less(t, l, 150)
	assert.Greater(t, r, 150)

	end, err := Draw("ZALA13", svgtext.Options{TextAlign: "end"}, 1)
	require.NoError(t, err)
	_, r = paintedColumns(end)
	assert.LessOrEqual(t, r, 152)
}

func TestDrawFillColor(t *testing.T) {
	img, err := Draw("ZALA13", svgtext.Options{Fill: "#ff0000", TextAlign: "middle"}, 1)
	require.NoError(t, err)

	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{R: 0xff, A: 0xff}) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected fully covered red pixels")
}

func TestDrawStrokeWidens(t *testing.T) {
	plain, err := Draw("I", svgtext.Options{TextAlign: "middle"}, 1)
	require.NoError(t, err)
	stroked, err := Draw("I", svgtext.Options{TextAlign: "middle", Stroke: "#00f", StrokeWidth: 6}, 1)
	require.NoError(t, err)

	pl, pr := paintedColumns(plain)
	sl, sr := paintedColumns(stroked)
	assert.Greater(t, sr-sl, pr-pl)
}

func TestDrawNothingToPaint(t *testing.T) {
	img, err := Draw("ZALA13", svgtext.Options{Fill: "none"}, 1)
	require.NoError(t, err)
	l, r := paintedColumns(img)
	assert.Equal(t, -1, l)
	assert.Equal(t, -1, r)
}

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name string
		opts svgtext.Options
		code errors.Code
	}{
		{"negative width", svgtext.Options{Width: -10}, errors.ErrCodeInvalidDimension},
		{"huge canvas", svgtext.Options{Width: 1e6, Height: 1e6}, errors.ErrCodeInvalidDimension},
		{"negative font", svgtext.Options{FontSize: -4}, errors.ErrCodeInvalidDimension},
		{"font beyond limit", svgtext.Options{FontSize: 20000}, errors.ErrCodeInvalidDimension},
		{"font larger than canvas", svgtext.Options{Width: 100, Height: 50, FontSize: 500}, errors.ErrCodeInvalidDimension},
		{"bad fill", svgtext.Options{Fill: "rgb(1,2,3)"}, errors.ErrCodeInvalidColor},
		{"bad stroke", svgtext.Options{Stroke: "#12"}, errors.ErrCodeInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Draw("x", tt.opts, 1)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestRenderLargeFont(t *testing.T) {
	_, err := Render("A", svgtext.Options{FontSize: 20000}, 2)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidDimension, errors.GetCode(err))
	assert.Equal(t, "fontSize", errors.FieldOf(err))

	// Four times the longer side is still drawn.
	img, err := Draw("A", svgtext.Options{Width: 300, Height: 100, FontSize: 1200}, 1)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestAnchorStart(t *testing.T) {
	adv := fixed.I(100)
	assert.Equal(t, 150.0, AnchorStart(150, adv, "center"))
	assert.Equal(t, 150.0, AnchorStart(150, adv, "start"))
	assert.Equal(t, 150.0, AnchorStart(150, adv, svgtext.AlignLeft))
	assert.Equal(t, 100.0, AnchorStart(150, adv, "middle"))
	assert.Equal(t, 50.0, AnchorStart(150, adv, "end"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
		err  bool
	}{
		{"#000000", color.RGBA{0, 0, 0, 0xff}, true, false},
		{"#2c3e50", color.RGBA{0x2c, 0x3e, 0x50, 0xff}, true, false},
		{"#ECF0F1", color.RGBA{0xec, 0xf0, 0xf1, 0xff}, true, false},
		{"#f00", color.RGBA{0xff, 0, 0, 0xff}, true, false},
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}, true, false},
		{"none", color.RGBA{}, false, false},
		{"transparent", color.RGBA{}, false, false},
		{"#12", color.RGBA{}, false, true},
		{"#zzzzzz", color.RGBA{}, false, true},
		{"chartreuse", color.RGBA{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := ParseColor(tt.in)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidColor))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
