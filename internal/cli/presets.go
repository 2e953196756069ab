package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textsvg/pkg/config"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// presetsCommand creates the presets command group.
func (c *CLI) presetsCommand() *cobra.Command {
	var presetsFile string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and pick named render presets",
		Long: `Presets are named option sets. Built-in presets are always available;
additional ones are read from a TOML file (--presets-file or presets.file
in the config):

  [presets.banner]
  width = 600
  height = 120
  font_size = 72
  fill = "#ffffff"`,
	}
	cmd.PersistentFlags().StringVar(&presetsFile, "presets-file", "", "TOML file with additional presets")

	cmd.AddCommand(c.presetsListCommand(&presetsFile))
	cmd.AddCommand(c.presetsPickCommand(&presetsFile))
	cmd.AddCommand(c.presetsExportCommand(&presetsFile))

	return cmd
}

func (c *CLI) presetsListCommand(presetsFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := c.presets(*presetsFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presetTable(presets, noCursor))
			return nil
		},
	}
}

func (c *CLI) presetsPickCommand(presetsFile *string) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively and print the rendered SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := c.presets(*presetsFile)
			if err != nil {
				return err
			}

			model := NewPresetListModel(presets)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.ErrOrStderr())).Run()
			if err != nil {
				return fmt.Errorf("preset picker: %w", err)
			}
			picked := final.(PresetListModel).Selected
			if picked == "" {
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), svgtext.Render(text, presets[picked]))
			newPrinter(cmd.ErrOrStderr()).nextStep("Render it again with", fmt.Sprintf("textsvg render %q --preset %s", text, picked))
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", exampleText, "text to render with the chosen preset")

	return cmd
}

func (c *CLI) presetsExportCommand(presetsFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print all presets as a TOML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := c.presets(*presetsFile)
			if err != nil {
				return err
			}
			return presets.Encode(cmd.OutOrStdout())
		},
	}
}

// noCursor disables row highlighting in presetTable.
const noCursor = -2

// completePresets completes --preset with built-in and configured names.
func (c *CLI) completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	presets, err := c.presets("")
	if err != nil {
		presets = config.Builtin()
	}
	var names []string
	for _, n := range presets.Names() {
		if strings.HasPrefix(n, toComplete) {
			names = append(names, n)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// presetTable renders presets as a bordered table. The row at cursor is
// highlighted; pass noCursor for none.
func presetTable(presets config.Presets, cursor int) string {
	names := presets.Names()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		cfg := svgtext.Resolve(presets[name])
		rows = append(rows, []string{
			name,
			svgtext.Number(cfg.Width) + "x" + svgtext.Number(cfg.Height),
			svgtext.Number(cfg.FontSize),
			cfg.FontFamily,
			cfg.Fill,
			strokeLabel(cfg),
			string(cfg.TextAlign) + "/" + string(cfg.VerticalAlign),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faintStyle).
		Headers("Preset", "Size", "Font", "Family", "Fill", "Stroke", "Align").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorAccent)
			}
			return lipgloss.NewStyle().Foreground(colorValue)
		})
	return t.Render()
}

func strokeLabel(cfg svgtext.Options) string {
	if cfg.Stroke == svgtext.DefaultStroke {
		return cfg.Stroke
	}
	return cfg.Stroke + " " + svgtext.Number(cfg.StrokeWidth)
}
