package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	textio "github.com/matzehuels/textsvg/pkg/io"
	"github.com/matzehuels/textsvg/pkg/pipeline"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	text      string
	output    string
	cacheHit  bool
	status    io.Writer // file reports; nil discards them
}

// writeArtifacts writes artifacts to w or to files and returns the
// written file paths.
//
//   - a single svg or json artifact with no output goes to w
//   - "-" sends a single artifact of any format to w
//   - a single artifact with an output path is written there verbatim
//   - multiple artifacts are written to <base>.<format>, where base is the
//     output path without extension or the text's download name
func writeArtifacts(w io.Writer, p artifactWriteParams) ([]string, error) {
	status := p.status
	if status == nil {
		status = io.Discard
	}
	if len(p.formats) == 1 {
		format := p.formats[0]
		data := p.artifacts[format]
		switch {
		case p.output == stdoutPath, p.output == "" && isTextFormat(format):
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if format == pipeline.FormatSVG {
				_, _ = fmt.Fprintln(w)
			}
			return nil, nil
		case p.output == "":
			p.output = textio.DownloadName(p.text, format)
		}
		if err := textio.WriteFile(p.output, data); err != nil {
			return nil, err
		}
		newPrinter(status).written([]string{p.output}, p.cacheHit)
		return []string{p.output}, nil
	}

	if p.output == stdoutPath {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(p.formats))
	}
	base := strings.TrimSuffix(p.output, filepath.Ext(p.output))
	if base == "" {
		base = textio.BaseName(p.text)
	}
	paths, err := textio.Export(base, p.artifacts)
	if err != nil {
		return paths, err
	}
	newPrinter(status).written(paths, p.cacheHit)
	return paths, nil
}

func isTextFormat(format string) bool {
	return format == pipeline.FormatSVG || format == pipeline.FormatJSON
}
