package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/textsvg/pkg/config"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

var anchorStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  config.Presets
	Names    []string
	Cursor   int
	Selected string
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(presets config.Presets) PresetListModel {
	return PresetListModel{
		Presets: presets,
		Names:   presets.Names(),
	}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Names)-1, 0)
		case "enter":
			if len(m.Names) > 0 {
				m.Selected = m.Names[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")
	b.WriteString(presetTable(m.Presets, m.Cursor))
	b.WriteString("\n\n")

	if len(m.Names) > 0 {
		p := svgtext.Place(m.Presets[m.Names[m.Cursor]])
		b.WriteString(anchorStyle.Render(fmt.Sprintf("  anchor (%s, %s) on a %sx%s canvas",
			svgtext.Number(p.X), svgtext.Number(p.Y), svgtext.Number(p.Width), svgtext.Number(p.Height))))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Names))))

	return b.String()
}
