package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textsvg/pkg/errors"
	textio "github.com/matzehuels/textsvg/pkg/io"
	"github.com/matzehuels/textsvg/pkg/pipeline"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	style       svgtext.Options // option flags; zero means unset
	align       string          // text-anchor value
	valign      string          // top, middle or bottom
	preset      string          // preset applied beneath the flags
	presetsFile string          // extra presets file
	request     string          // JSON request file
	formats     string          // comma-separated output formats
	output      string          // output file (single format) or base path (multiple)
	scale       float64         // raster scale factor
	rasterizer  string          // native or rsvg
	escape      bool            // XML-escape the text first
	strict      bool            // reject invalid options
	noCache     bool            // disable caching
	refresh     bool            // re-render even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render text to SVG, PNG, PDF or JSON",
		Long: `Render a line of text as an SVG document.

Options left unset (or set to 0) fall back to their defaults. A preset
supplies base values that individual flags override. With --request the
text, options, formats and preset are read from a JSON file instead.

A single svg or json output is written to stdout unless --output is given.
Other outputs are written next to the working directory, named after the
text (e.g. ZALA13.png).

Text is inserted verbatim; pass --escape for text containing <, > or &.`,
		Example: `  textsvg render "Hello" --width 400 --fill "#2c3e50"
  textsvg render ZALA13 --preset zala13 -f svg,png -o zala13
  textsvg render --request request.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return c.runRender(cmd, text, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.style.Width, "width", 0, "canvas width (default 300)")
	f.Float64Var(&opts.style.Height, "height", 0, "canvas height (default 150)")
	f.Float64Var(&opts.style.FontSize, "font-size", 0, "font size (default 48)")
	f.StringVar(&opts.style.FontFamily, "font-family", "", `font family (default "Arial, Helvetica, sans-serif")`)
	f.StringVar(&opts.style.Fill, "fill", "", `text color (default "#000000")`)
	f.StringVar(&opts.style.Stroke, "stroke", "", `outline color (default "none")`)
	f.Float64Var(&opts.style.StrokeWidth, "stroke-width", 0, "outline width (default 1)")
	f.StringVar(&opts.align, "align", "", "text-anchor value: left, center (default), right")
	f.StringVar(&opts.valign, "valign", "", "vertical alignment: top, middle (default), bottom")
	f.StringVar(&opts.preset, "preset", "", "named preset to start from")
	f.StringVar(&opts.presetsFile, "presets-file", "", "TOML file with additional presets")
	f.StringVar(&opts.request, "request", "", "read the render request from a JSON file")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	f.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.StringVar(&opts.rasterizer, "rasterizer", pipeline.RasterNative, "PNG rasterizer: native, rsvg")
	f.BoolVar(&opts.escape, "escape", false, "XML-escape the text")
	f.BoolVar(&opts.strict, "strict", false, "reject negative sizes and unknown alignments")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)
	_ = cmd.RegisterFlagCompletionFunc("align", fixedCompletions("left", "center", "right"))
	_ = cmd.RegisterFlagCompletionFunc("valign", fixedCompletions("top", "middle", "bottom"))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletions("svg", "png", "pdf", "json"))

	return cmd
}

// runRender resolves the request and writes the artifacts.
func (c *CLI) runRender(cmd *cobra.Command, text string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, err := c.buildPipelineOptions(text, opts)
	if err != nil {
		return err
	}
	popts.Logger = logger

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := execute(ctx, cmd.ErrOrStderr(), runner, popts)
	if err != nil {
		return err
	}

	_, err = writeArtifacts(cmd.OutOrStdout(), artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   popts.Formats,
		text:      popts.Text,
		output:    opts.output,
		cacheHit:  result.CacheInfo.RenderHit,
		status:    cmd.ErrOrStderr(),
	})
	return err
}

// buildPipelineOptions layers preset, request file and flags into
// pipeline options. Later layers win field by field. The result has its
// defaults applied.
func (c *CLI) buildPipelineOptions(text string, opts *renderOpts) (pipeline.Options, error) {
	var req textio.Request
	if opts.request != "" {
		r, err := textio.ImportRequest(opts.request)
		if err != nil {
			return pipeline.Options{}, err
		}
		req = r
	}
	if text == "" {
		text = req.Text
	}
	if text == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "text is required (argument or --request)")
	}

	flags := opts.style
	flags.TextAlign = svgtext.Align(opts.align)
	flags.VerticalAlign = svgtext.VerticalAlign(opts.valign)

	style := svgtext.Merge(req.Options, flags)
	preset := opts.preset
	if preset == "" {
		preset = req.Preset
	}
	if preset != "" {
		presets, err := c.presets(opts.presetsFile)
		if err != nil {
			return pipeline.Options{}, err
		}
		base, err := presets.Get(preset)
		if err != nil {
			return pipeline.Options{}, err
		}
		style = svgtext.Merge(base, style)
	}

	if opts.strict {
		if err := svgtext.Validate(style); err != nil {
			return pipeline.Options{}, err
		}
	}
	if opts.escape {
		text = svgtext.EscapeText(text)
	}

	formats := pipeline.ParseFormats(opts.formats)
	if len(formats) == 0 {
		formats = req.Formats
	}

	popts := pipeline.Options{
		Text:       text,
		Style:      style,
		Formats:    formats,
		Scale:      opts.scale,
		Rasterizer: opts.rasterizer,
		Refresh:    opts.refresh,
	}
	// Output routing in writeArtifacts depends on the defaulted formats.
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return popts, nil
}

// execute runs the pipeline, showing a spinner on w when conversion is
// involved.
func execute(ctx context.Context, w io.Writer, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	if !needsConversion(opts.Formats) {
		return runner.Execute(ctx, opts)
	}
	s := startSpinner(ctx, w, "Rendering...")
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		s.Fail("Rendering failed")
		return nil, err
	}
	s.Stop()
	return result, nil
}

func needsConversion(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}
