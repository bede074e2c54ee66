package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/screen"
	"github.com/abhisek/nckh/internal/ui/theme"
)

// Reasons shown for features that need something the process lacks.
const (
	NeedsStore    = "History needs the attempt database,\nwhich could not be opened."
	NeedsProvider = "No AI provider is configured.\nSet ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY."
)

// PlaceholderScreen explains why a feature is unavailable.
type PlaceholderScreen struct {
	title  string
	reason string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and reason.
func New(title, reason string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, reason: reason}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ Unavailable ╌╌\n\n" + p.reason)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
