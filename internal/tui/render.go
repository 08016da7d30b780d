package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/clipper/internal/media"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	fileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// render lays out the screen. The first sliderRow lines are fixed so the
// mouse adapter can locate the slider.
func (a *App) render() string {
	header := []string{
		titleStyle.Render("Clipper"),
		a.renderFile(),
		"",
	}
	lines := append(header, strings.Split(a.slider.View(), "\n")...)
	lines = append(lines, "", a.renderOptions(), a.renderStatus())
	if a.prompting {
		lines = append(lines, a.prompt.View())
	}
	lines = append(lines, "", a.renderFooter())
	return strings.Join(lines, "\n")
}

func (a *App) renderFile() string {
	if a.file == "" {
		return mutedStyle.Render("No file selected!")
	}
	name := media.Elide(filepath.Base(a.file), a.cfg.UI.MaxNameLength)
	return fileStyle.Render(name) + mutedStyle.Render("  "+media.Timestamp(a.duration))
}

func (a *App) renderOptions() string {
	box := "[ ]"
	if a.avoidNegTS {
		box = "[x]"
	}
	line := box + " Avoid negative timestamps (video only)"
	if a.file != "" {
		in, out := a.slider.InAndOut()
		line += mutedStyle.Render("   selection " + media.Timestamp(in) + " - " + media.Timestamp(out))
	}
	return line
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	line := ansi.Truncate(strings.ReplaceAll(a.status, "\n", " "), max(1, a.width), "…")
	if a.statusErr {
		return statusErrStyle.Render(line)
	}
	return mutedStyle.Render(line)
}

func (a *App) renderFooter() string {
	if a.prompting {
		return a.help.ShortHelpView(a.keys.promptBindings())
	}
	return a.help.ShortHelpView(a.keys.mainBindings())
}
