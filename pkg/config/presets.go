package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// DefaultPreset is the preset used by "textsvg example".
const DefaultPreset = "zala13"

// Presets maps preset names to render options.
type Presets map[string]svgtext.Options

// presetFile is the TOML document layout.
type presetFile struct {
	Presets map[string]svgtext.Options `toml:"presets"`
}

// Builtin returns the presets shipped with textsvg.
func Builtin() Presets {
	return Presets{
		DefaultPreset: {
			Width:       400,
			Height:      200,
			FontSize:    60,
			Fill:        "#2c3e50",
			Stroke:      "#ecf0f1",
			StrokeWidth: 2,
		},
		"badge": {
			Width:         120,
			Height:        24,
			FontSize:      14,
			Fill:          "#ffffff",
			VerticalAlign: svgtext.AlignBottom,
		},
		"heading": {
			Width:         800,
			Height:        120,
			FontSize:      64,
			FontFamily:    "Georgia, serif",
			VerticalAlign: svgtext.AlignTop,
		},
		"outline": {
			Fill:        "none",
			Stroke:      "#000000",
			StrokeWidth: 2,
		},
	}
}

// ReadPresets decodes a TOML preset document. Keys that do not map to an
// option are reported as INVALID_PRESET.
func ReadPresets(r io.Reader) (Presets, error) {
	var doc presetFile
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode presets")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidPreset, "unknown preset keys: %s", strings.Join(keys, ", "))
	}
	return Presets(doc.Presets), nil
}

// LoadPresets returns the built-in presets overlaid with those in path.
// An empty path returns only the built-ins.
func LoadPresets(path string) (Presets, error) {
	presets := Builtin()
	if path == "" {
		return presets, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()

	user, err := ReadPresets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for name, opts := range user {
		presets[name] = opts
	}
	return presets, nil
}

// Get returns the named preset.
func (p Presets) Get(name string) (svgtext.Options, error) {
	opts, ok := p[name]
	if !ok {
		return svgtext.Options{}, errors.New(errors.ErrCodePresetNotFound, "unknown preset %q (available: %s)", name, strings.Join(p.Names(), ", "))
	}
	return opts, nil
}

// Names returns preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode writes presets as a TOML document that ReadPresets accepts.
func (p Presets) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(presetFile{Presets: p})
}
