package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// Request is a serialized render request.
type Request struct {
	Text    string          `json:"text"`
	Options svgtext.Options `json:"options"`
	Formats []string        `json:"formats,omitempty"`
	Preset  string          `json:"preset,omitempty"`
}

// ReadRequest decodes a JSON render request from r.
// Unknown fields are rejected so that typos in option names surface.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode render request")
	}
	return req, nil
}

// ImportRequest reads a JSON render request from a file.
func ImportRequest(path string) (Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return Request{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRequest(f)
}
