// Package fonts provides the font used for raster previews.
//
// SVG output names fonts by family and leaves resolution to the viewer.
// Raster output has to draw glyphs itself, so it uses Go Regular, which is
// compiled into the binary by golang.org/x/image/font/gofont.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the family name of the embedded font.
const FontFamily = "Go"

// TTF returns the raw TrueType data of Go Regular.
func TTF() []byte {
	return goregular.TTF
}

// Parsed font (computed once on first access).
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
// The result is cached after first computation.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
		if regularErr != nil {
			regularErr = fmt.Errorf("parse go regular: %w", regularErr)
		}
	})
	return regular, regularErr
}

// Face returns a face of Go Regular where size is measured in pixels.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	// Each cache entry holds a mask as large as the font's bounding box, so
	// keep one entry: a preview draws a single short run.
	return truetype.NewFace(f, &truetype.Options{
		Size:              size,
		DPI:               72,
		Hinting:           font.HintingFull,
		GlyphCacheEntries: 1,
	}), nil
}
