package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/screen"
	"github.com/abhisek/nckh/internal/store"
	"github.com/abhisek/nckh/internal/ui/layout"
	"github.com/abhisek/nckh/internal/ui/theme"
)

// RecentLimit is how many attempts the screen lists.
const RecentLimit = 50

// Repo reads the attempt history.
type Repo interface {
	RecentAttempts(ctx context.Context, chapterID string, limit int) ([]store.Attempt, error)
	BestByChapter(ctx context.Context) ([]store.ChapterBest, error)
}

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Best     []store.ChapterBest
	Err      error
}

// HistoryScreen displays past quiz attempts and the best score per chapter.
type HistoryScreen struct {
	repo     Repo
	attempts []store.Attempt
	best     []store.ChapterBest
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo Repo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.RecentAttempts(ctx, "", RecentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		best, err := repo.BestByChapter(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Best: best}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.best = msg.Best
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Pick a chapter and take the quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	heading := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	b.WriteString(center.Render(heading.Render("Best scores")) + "\n")
	for _, cb := range s.best {
		line := fmt.Sprintf("%-48s best %d/%d  (%d attempts)", course.Title(cb.ChapterID), cb.BestScore, cb.Total, cb.Attempts)
		b.WriteString(center.Render(theme.Body.Render(line)) + "\n")
	}

	b.WriteString("\n" + center.Render(heading.Render("Recent attempts")) + "\n")

	// Keep the selected row on screen.
	rows := height - len(s.best) - 6
	if rows < 3 {
		rows = 3
	}
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}

	for i := start; i < len(s.attempts) && i < start+rows; i++ {
		a := s.attempts[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s  %-10s %2d/%-2d", prefix, a.Timestamp.Local().Format("Jan 02 15:04"), "Ch. "+a.ChapterID, a.Score, a.Total)
		if a.Skipped > 0 {
			line += fmt.Sprintf("  %d skipped", a.Skipped)
		}
		b.WriteString(center.Render(style.Render(line)) + "\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s · via %s · session %s", course.Title(a.ChapterID), a.Source, shortID(a.SessionID))
			b.WriteString(center.Render(theme.Hint.Render(detail)) + "\n")
		}
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
