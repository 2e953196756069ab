package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textsvg/pkg/config"
	textio "github.com/matzehuels/textsvg/pkg/io"
	"github.com/matzehuels/textsvg/pkg/pipeline"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// exampleText is the sample rendered by the example command.
const exampleText = "ZALA13"

// exampleCommand renders the sample text with the default preset.
func (c *CLI) exampleCommand() *cobra.Command {
	var (
		download bool
		dir      string
	)

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print a sample SVG (" + exampleText + ", preset " + config.DefaultPreset + ")",
		Long: `Render "` + exampleText + `" with the ` + config.DefaultPreset + ` preset (400x200 canvas, 60px text,
dark blue fill with a light outline) and print the SVG.

With --download the SVG is also saved as ` + exampleText + `.svg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := c.presets("")
			if err != nil {
				return err
			}
			opts, err := presets.Get(config.DefaultPreset)
			if err != nil {
				return err
			}

			svg := svgtext.Render(exampleText, opts)
			fmt.Fprintln(cmd.OutOrStdout(), svg)

			if !download {
				return nil
			}
			path := filepath.Join(dir, textio.DownloadName(exampleText, pipeline.FormatSVG))
			if err := textio.WriteFile(path, []byte(svg)); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("saved example", "path", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&download, "download", false, "also save the SVG as "+exampleText+".svg")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory for --download")

	return cmd
}
