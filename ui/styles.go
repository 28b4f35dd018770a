package ui

import "github.com/charmbracelet/lipgloss"

// Styles is the lipgloss palette of the terminal keypad.
type Styles struct {
	Title        lipgloss.Style
	Display      lipgloss.Style
	DisplayError lipgloss.Style
	Key          lipgloss.Style
	KeyFocused   lipgloss.Style
	Hint         lipgloss.Style
}

type palette struct {
	background string
	display    string
	text       string
	border     string
	key        string
	focus      string
	error      string
	hint       string
}

var (
	darkPalette = palette{
		background: "#2E2E2E",
		display:    "#444444",
		text:       "#FFFFFF",
		border:     "#FFFFFF",
		key:        "#555555",
		focus:      "#666666",
		error:      "#FF6B6B",
		hint:       "8",
	}
	lightPalette = palette{
		background: "#FFFFFF",
		display:    "#F9F9F9",
		text:       "#000000",
		border:     "#000000",
		key:        "#E0E0E0",
		focus:      "#D0D0D0",
		error:      "#C62828",
		hint:       "8",
	}
)

// NewStyles returns the styles for "light" or, for anything else, "dark".
func NewStyles(theme string) Styles {
	p := darkPalette
	if theme == "light" {
		p = lightPalette
	}

	display := lipgloss.NewStyle().
		Width(keyWidth*keypadColumns).
		Align(lipgloss.Right).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.border)).
		Background(lipgloss.Color(p.display)).
		Foreground(lipgloss.Color(p.text))

	key := lipgloss.NewStyle().
		Width(keyWidth).
		Align(lipgloss.Center).
		Background(lipgloss.Color(p.key)).
		Foreground(lipgloss.Color(p.text))

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Display:      display,
		DisplayError: display.Foreground(lipgloss.Color(p.error)).Bold(true),
		Key:          key,
		KeyFocused:   key.Background(lipgloss.Color(p.focus)).Bold(true).Underline(true),
		Hint:         lipgloss.NewStyle().Foreground(lipgloss.Color(p.hint)),
	}
}
