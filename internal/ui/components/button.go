package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/ui/theme"
)

// Pointer marks the focused entry of a list.
const Pointer = "▸ "

// Button is a labelled control bound to a single key.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a new button.
func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

// View renders the button. Inactive buttons are drawn dimmed.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders the active buttons side by side. Inactive ones are
// omitted so the row only offers what can be pressed.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if !b.Active {
			continue
		}
		parts = append(parts, b.View())
	}
	if len(parts) == 0 {
		return ""
	}
	row := parts[0]
	for _, p := range parts[1:] {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", p)
	}
	return row
}
