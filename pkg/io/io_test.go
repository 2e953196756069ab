package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

func TestReadRequest(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(`{
		"text": "ZALA13",
		"options": {"width": 400, "fontSize": 60, "fill": "#2c3e50", "verticalAlign": "top"},
		"formats": ["svg", "png"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "ZALA13", req.Text)
	assert.Equal(t, svgtext.Options{Width: 400, FontSize: 60, Fill: "#2c3e50", VerticalAlign: svgtext.AlignTop}, req.Options)
	assert.Equal(t, []string{"svg", "png"}, req.Formats)
}

func TestReadRequestErrors(t *testing.T) {
	for _, body := range []string{
		`{"text": "A", "options": {"colour": "red"}}`,
		`{"text": }`,
		`{"text": "A", "options": {"width": "wide"}}`,
	} {
		_, err := ReadRequest(strings.NewReader(body))
		require.Error(t, err, body)
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	}
}

func TestImportRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"text": "B", "preset": "zala13"}`), 0644))

	req, err := ImportRequest(path)
	require.NoError(t, err)
	assert.Equal(t, "B", req.Text)
	assert.Equal(t, "zala13", req.Preset)

	_, err = ImportRequest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		text, format, want string
	}{
		{"ZALA13", "svg", "ZALA13.svg"},
		{"hello world", "png", "hello_world.png"},
		{"a/b", "svg", "ab.svg"},
		{"../etc", "pdf", "etc.pdf"},
		{"<>!", "svg", "image.svg"},
		{"", "svg", "image.svg"},
		{"日本", "svg", "日本.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadName(tt.text, tt.format))
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/svg+xml", ContentType("svg"))
	assert.Equal(t, "image/png", ContentType("png"))
	assert.Equal(t, "application/pdf", ContentType("pdf"))
	assert.Equal(t, "application/json", ContentType("json"))
	assert.Equal(t, "application/octet-stream", ContentType("gif"))
}

func TestExport(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out", "ZALA13")
	paths, err := Export(base, map[string][]byte{
		"svg": []byte("<svg/>"),
		"png": []byte("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{base + ".png", base + ".svg"}, paths)

	data, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}
