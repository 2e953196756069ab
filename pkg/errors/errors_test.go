package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidAlign, "unknown text align %q", "justify")
	assert.Equal(t, `INVALID_ALIGN: unknown text align "justify"`, err.Error())

	wrapped := Wrap(ErrCodeRender, errors.New("exit status 1"), "rsvg-convert")
	assert.Equal(t, "RENDER_FAILED: rsvg-convert: exit status 1", wrapped.Error())
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeRender, cause, "rasterize")

	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestCodeAccessors(t *testing.T) {
	dim := New(ErrCodeInvalidDimension, "width must not be negative").WithField("width")

	tests := []struct {
		name    string
		err     error
		code    Code
		field   string
		message string
	}{
		{"coded", dim, ErrCodeInvalidDimension, "width", "width must not be negative"},
		{"wrapped by fmt", fmt.Errorf("invalid options: %w", dim), ErrCodeInvalidDimension, "width", "width must not be negative"},
		{"outer code wins", Wrap(ErrCodeRender, dim, "png"), ErrCodeRender, "", "png"},
		{"plain", errors.New("disk full"), "", "", "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.Equal(t, tt.field, FieldOf(tt.err))
			assert.Equal(t, tt.message, UserMessage(tt.err))
			if tt.code != "" {
				assert.True(t, Is(tt.err, tt.code))
			}
			assert.False(t, Is(tt.err, ErrCodeInvalidColor))
		})
	}
}

func TestNilAndEmpty(t *testing.T) {
	assert.Equal(t, Code(""), GetCode(nil))
	assert.Equal(t, "", FieldOf(nil))
	assert.False(t, Is(nil, ErrCodeInvalidInput))
	assert.False(t, Is(errors.New("plain"), ""))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidDimension, http.StatusBadRequest},
		{ErrCodeInvalidAlign, http.StatusBadRequest},
		{ErrCodeInvalidColor, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeInvalidPreset, http.StatusBadRequest},
		{ErrCodeInvalidPath, http.StatusBadRequest},
		{ErrCodePresetNotFound, http.StatusNotFound},
		{ErrCodeMissingTooling, http.StatusServiceUnavailable},
		{ErrCodeRender, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), "code %q", tt.code)
	}
}
