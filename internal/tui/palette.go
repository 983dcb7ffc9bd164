package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk     = lipgloss.Color("#E5E9F0")
	ColorDim     = lipgloss.Color("#7A8291")
	ColorAccent  = lipgloss.Color("#88C0D0")
	ColorSuccess = lipgloss.Color("#A3BE8C")
	ColorWarn    = lipgloss.Color("#EBCB8B")
	ColorError   = lipgloss.Color("#BF616A")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarn)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// StatusLine renders a status message, in the error style when isError.
func StatusLine(msg string, isError bool) string {
	if isError {
		return errorStyle.Render(msg)
	}
	return labelStyle.Render(msg)
}

// Note renders a support note.
func Note(msg string) string {
	return warnStyle.Render(msg)
}

// Mark renders a yes/no marker for capability listings.
func Mark(ok bool) string {
	if ok {
		return successStyle.Render("yes")
	}
	return dimStyle.Render("no")
}
