package ui

import (
	"calc/service/calculator"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	keypadRows    = 4
	keypadColumns = 5
	keyWidth      = 9

	// displayRow is the cursor row of the display line above the keypad.
	displayRow = -1
)

type keypadKey struct {
	label string
	key   string
}

// The "=" key covers the last two cells of the bottom row.
var keypad = [keypadRows][keypadColumns]keypadKey{
	{{"1", "1"}, {"2", "2"}, {"3", "3"}, {"CLEAR", "clear"}, {"DELETE", "delete"}},
	{{"4", "4"}, {"5", "5"}, {"6", "6"}, {"+", "+"}, {"-", "-"}},
	{{"7", "7"}, {"8", "8"}, {"9", "9"}, {"*", "*"}, {"/", "/"}},
	{{"%", "%"}, {"0", "0"}, {".", "."}, {"=", "="}, {"=", "="}},
}

// KeypadModel is the bubbletea terminal keypad.
type KeypadModel struct {
	calc     *calculator.Calculator
	styles   Styles
	row, col int
	status   string
	quitting bool
}

func NewKeypadModel(calc *calculator.Calculator, theme string) KeypadModel {
	return KeypadModel{
		calc:   calc,
		styles: NewStyles(theme),
		row:    displayRow,
	}
}

// Focused returns the label under the cursor, or "" while the display has focus.
func (m KeypadModel) Focused() string {
	if m.row == displayRow {
		return ""
	}
	return keypad[m.row][m.col].label
}

func (m KeypadModel) Init() tea.Cmd {
	return nil
}

func (m KeypadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m KeypadModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyUp:
		m.moveVertical(-1)
	case tea.KeyDown:
		m.moveVertical(1)
	case tea.KeyLeft:
		m.moveHorizontal(-1)
	case tea.KeyRight:
		m.moveHorizontal(1)
	case tea.KeyEnter:
		if m.row == displayRow {
			m.press("=")
		} else {
			m.press(keypad[m.row][m.col].key)
		}
	case tea.KeyBackspace:
		m.press("delete")
	case tea.KeyEsc:
		m.press("clear")
	case tea.KeySpace:
		m.row = displayRow
		m.press(" ")
	case tea.KeyRunes:
		m.row = displayRow
		for _, r := range msg.Runes {
			m.press(string(r))
		}
	}
	return m, nil
}

func (m *KeypadModel) press(key string) {
	m.status = ""
	if _, err := m.calc.Press(key); err != nil {
		m.status = err.Error()
	}
}

func (m *KeypadModel) moveVertical(delta int) {
	row := m.row + delta
	if row < displayRow || row >= keypadRows {
		return
	}
	m.row = row
}

// moveHorizontal steps to the next distinct key so "=" takes one step.
func (m *KeypadModel) moveHorizontal(delta int) {
	if m.row == displayRow {
		return
	}
	current := keypad[m.row][m.col].key
	for col := m.col + delta; col >= 0 && col < keypadColumns; col += delta {
		if keypad[m.row][col].key != current {
			m.col = col
			return
		}
	}
}

func (m KeypadModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("CALCULATOR"))
	b.WriteString("\n\n")
	b.WriteString(m.viewDisplay())
	b.WriteString("\n")

	for row := 0; row < keypadRows; row++ {
		var cells []string
		for col := 0; col < keypadColumns; col++ {
			k := keypad[row][col]
			if col > 0 && keypad[row][col-1].key == k.key {
				continue
			}
			width := keyWidth
			for next := col + 1; next < keypadColumns && keypad[row][next].key == k.key; next++ {
				width += keyWidth
			}

			style := m.styles.Key
			if row == m.row && keypad[row][m.col].key == k.key {
				style = m.styles.KeyFocused
			}
			cells = append(cells, style.Width(width).Render(k.label))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Hint.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Hint.Render("type or use arrows + enter • backspace delete • esc clear • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (m KeypadModel) viewDisplay() string {
	text := m.calc.Display()
	if m.row == displayRow {
		text += "▏"
	}

	if result, ok := m.calc.ShowingResult(); ok && result.IsError() {
		return m.styles.DisplayError.Render(text)
	}
	return m.styles.Display.Render(text)
}

// RunKeypad starts the terminal keypad on the current terminal.
func RunKeypad(calc *calculator.Calculator, theme string) error {
	_, err := tea.NewProgram(NewKeypadModel(calc, theme)).Run()
	return err
}
