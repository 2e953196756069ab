package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette (ANSI 256).
var (
	colorAccent  = lipgloss.Color("36")
	colorSuccess = lipgloss.Color("35")
	colorFailure = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorValue   = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

// Styles shared by the picker and the presets table, which render through
// bubbletea and the default renderer.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	faintStyle = lipgloss.NewStyle().Foreground(colorFaint)
)

// printer writes status lines to one stream. Its renderer inspects that
// stream, so a redirected stream gets plain text.
type printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, r: lipgloss.NewRenderer(w)}
}

func (p *printer) fg(c lipgloss.Color) lipgloss.Style {
	return p.r.NewStyle().Foreground(c)
}

func (p *printer) status(icon string, c lipgloss.Color, format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.fg(c).Render(icon), fmt.Sprintf(format, args...))
}

func (p *printer) success(format string, args ...any) {
	p.status("✓", colorSuccess, format, args...)
}

func (p *printer) failure(format string, args ...any) {
	p.status("✗", colorFailure, format, args...)
}

func (p *printer) info(format string, args ...any) {
	p.status("›", colorMuted, format, args...)
}

// detail prints an indented, muted line.
func (p *printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+p.fg(colorFaint).Render(fmt.Sprintf(format, args...)))
}

func (p *printer) file(path string) {
	fmt.Fprintln(p.w, "  "+p.fg(colorFaint).Render("→")+" "+p.fg(colorValue).Render(path))
}

func (p *printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, p.fg(colorMuted).Width(10).Render(key)+" "+p.fg(colorValue).Render(value))
}

func (p *printer) cacheStatus(cached bool) {
	if cached {
		fmt.Fprintln(p.w, "  "+p.fg(colorSuccess).Render("cached"))
		return
	}
	fmt.Fprintln(p.w, "  "+p.fg(colorMuted).Render("fresh"))
}

// nextStep suggests a follow-up command.
func (p *printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w, p.fg(colorFaint).Render(description+":")+" "+p.fg(colorCommand).Render(cmd))
}

// written reports files produced by a render.
func (p *printer) written(paths []string, cached bool) {
	p.success("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		p.file(path)
	}
	p.cacheStatus(cached)
}
