package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for interactive output.
type Styles struct {
	Header lipgloss.Style
	Value  lipgloss.Style
	Type   lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Prompt lipgloss.Style
}

// NewStyles returns the default styles.
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().Bold(true),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Type:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// DisableColor strips color and attributes from all lipgloss output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
