package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

func TestConvertMissingTool(t *testing.T) {
	old := rsvgConvert
	rsvgConvert = "textsvg-no-such-converter"
	defer func() { rsvgConvert = old }()

	assert.False(t, Available())

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingTooling, errors.GetCode(err))
	assert.Contains(t, errors.UserMessage(err), "pdf export requires librsvg")

	_, err = ToPNG(context.Background(), []byte("<svg/>"), 2)
	assert.True(t, errors.Is(err, errors.ErrCodeMissingTooling))
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}

	svg := svgtext.Render("ZALA13", svgtext.Options{})
	pdf, err := ToPDF(context.Background(), []byte(svg))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestToPNGRejectsGarbage(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}

	_, err := ToPNG(context.Background(), []byte("not svg"), 1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRender, errors.GetCode(err))
}
