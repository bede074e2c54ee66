package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/ui/theme"
)

// QuestionCard renders one multiple-choice question with numbered options.
type QuestionCard struct {
	Number   int // 1-based
	Total    int
	Question string
	Options  []string
	// Cursor is the highlighted option, or -1 when the card is not focused.
	Cursor int
	// Chosen is the selected option, or -1 when unanswered.
	Chosen int
}

// OptionKey is the digit that selects option i.
func OptionKey(i int) string {
	return fmt.Sprintf("%d", i+1)
}

// View renders the card at the given width.
func (q QuestionCard) View(width int) string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Câu %d / %d", q.Number, q.Total))
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).
		Render(q.Question)

	var b strings.Builder
	b.WriteString(head + "\n" + title + "\n\n")

	for i, opt := range q.Options {
		prefix := "  "
		if i == q.Cursor {
			prefix = Pointer
		}
		mark := "( )"
		if i == q.Chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %s. %s", prefix, mark, OptionKey(i), opt)

		style := theme.Unselected
		switch {
		case i == q.Cursor:
			style = theme.Selected
		case i == q.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Width(width).Render(line) + "\n")
	}
	return b.String()
}
