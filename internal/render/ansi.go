package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Zachkp/portfolio/internal/terminal"
)

// Catppuccin Mocha, same palette as the site stylesheet
const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorYellow  lipgloss.Color = "#f9e2af"
	colorRed     lipgloss.Color = "#f38ba8"
	colorMauve   lipgloss.Color = "#cba6f7"
	colorBlue    lipgloss.Color = "#89b4fa"
	colorBorder  lipgloss.Color = "#585b70"
)

var (
	windowStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	caretStyle  = lipgloss.NewStyle().Foreground(colorText).Blink(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	imageStyle  = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	lineStyles = map[terminal.Style]lipgloss.Style{
		terminal.StylePlain:   lipgloss.NewStyle().Foreground(colorText),
		terminal.StyleMuted:   lipgloss.NewStyle().Foreground(colorSubtext),
		terminal.StyleSuccess: lipgloss.NewStyle().Foreground(colorGreen),
		terminal.StyleWarning: lipgloss.NewStyle().Foreground(colorYellow),
		terminal.StyleError:   lipgloss.NewStyle().Foreground(colorRed),
		terminal.StyleAccent:  lipgloss.NewStyle().Foreground(colorMauve),
	}
)

// ForceColor makes ANSI emit truecolor escapes even when stdout is not a
// terminal, for text served over HTTP.
func ForceColor() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// LineStyle returns the lipgloss style for an output line role
func LineStyle(s terminal.Style) lipgloss.Style {
	if st, ok := lineStyles[s]; ok {
		return st
	}
	return lineStyles[terminal.StylePlain]
}

// ANSI renders a frame as a bordered terminal window of the given outer width
func ANSI(f terminal.Frame, width int) string {
	style := windowStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(ANSILines(f), "\n"))
}

// ANSILines renders the body rows of a frame without the window border
func ANSILines(f terminal.Frame) []string {
	switch {
	case f.Err != "":
		return []string{errorStyle.Render(ErrorNotice)}
	case !f.Visible:
		return []string{""}
	case f.IsReward():
		rows := []string{imageStyle.Render("[image] " + f.ImageURL)}
		if f.Caption != "" {
			rows = append(rows, LineStyle(terminal.StyleAccent).Render(f.Caption))
		}
		return rows
	}

	head := promptStyle.Render(f.Prompt) + " " + f.Typed
	if !f.TypingComplete {
		head += caretStyle.Render("▍")
	}
	rows := []string{head}
	for _, l := range f.Lines {
		rows = append(rows, LineStyle(l.Style).Render(expandTabs(l.Text)))
	}
	return rows
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
