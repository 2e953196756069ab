package raster

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/textsvg/pkg/errors"
)

// named covers the color keywords commonly passed as fill or stroke.
var named = map[string]color.RGBA{
	"black":   {0, 0, 0, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0, 0, 0xff},
	"green":   {0, 0x80, 0, 0xff},
	"blue":    {0, 0, 0xff, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"yellow":  {0xff, 0xff, 0, 0xff},
	"orange":  {0xff, 0xa5, 0, 0xff},
	"purple":  {0x80, 0, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"navy":    {0, 0, 0x80, 0xff},
	"teal":    {0, 0x80, 0x80, 0xff},
	"maroon":  {0x80, 0, 0, 0xff},
	"olive":   {0x80, 0x80, 0, 0xff},
	"lime":    {0, 0xff, 0, 0xff},
	"aqua":    {0, 0xff, 0xff, 0xff},
	"fuchsia": {0xff, 0, 0xff, 0xff},
}

// ParseColor parses a paint value: "none", a named color, #rgb, or #rrggbb.
// It returns ok=false for "none" and "transparent".
func ParseColor(s string) (c color.RGBA, ok bool, err error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "transparent":
		return color.RGBA{}, false, nil
	}
	if c, found := named[v]; found {
		return c, true, nil
	}

	hex, found := strings.CutPrefix(v, "#")
	if !found {
		return color.RGBA{}, false, errors.New(errors.ErrCodeInvalidColor, "unsupported color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false, errors.New(errors.ErrCodeInvalidColor, "color %q must be #rgb or #rrggbb", s)
	}
	n, perr := strconv.ParseUint(hex, 16, 32)
	if perr != nil {
		return color.RGBA{}, false, errors.Wrap(errors.ErrCodeInvalidColor, perr, "invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, true, nil
}
