package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/quiz"
	"github.com/abhisek/nckh/internal/router"
	"github.com/abhisek/nckh/internal/screen"
	"github.com/abhisek/nckh/internal/screens/ask"
	"github.com/abhisek/nckh/internal/screens/history"
	"github.com/abhisek/nckh/internal/screens/placeholder"
	"github.com/abhisek/nckh/internal/screens/selftest"
	"github.com/abhisek/nckh/internal/store"
	"github.com/abhisek/nckh/internal/ui/components"
	"github.com/abhisek/nckh/internal/ui/layout"
)

// Labels of the entries below the chapter list.
const (
	toolsSection = "Tools"
	AskLabel     = "ASK THE ASSISTANT"
	HistoryLabel = "HISTORY"
	ExitLabel    = "EXIT"
)

// Deps are the services the home screen hands to the screens it opens.
// Nil fields turn the matching entry into an explanation screen.
type Deps struct {
	Source   quiz.Source
	Attempts store.AttemptRepo
	History  history.Repo
	Asker    ask.Asker
	// LLMReady is false when no provider could be configured.
	LLMReady bool
}

type statsLoadedMsg struct {
	line string
}

// HomeScreen lists the chapters of the course and the study tools.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	var items []components.MenuItem
	for _, m := range course.Modules() {
		for _, ch := range m.Chapters {
			id := ch.ID
			items = append(items, components.MenuItem{
				Label:   ch.Title,
				Section: m.Title,
				Action:  func() tea.Cmd { return push(selftest.New(id, deps.Source, deps.Attempts)) },
			})
		}
	}

	items = append(items,
		components.MenuItem{Label: AskLabel, Section: toolsSection, Action: func() tea.Cmd {
			if deps.Asker == nil || !deps.LLMReady {
				return push(placeholder.New("Assistant", placeholder.NeedsProvider))
			}
			return push(ask.New(deps.Asker))
		}},
		components.MenuItem{Label: HistoryLabel, Section: toolsSection, Action: func() tea.Cmd {
			if deps.History == nil {
				return push(placeholder.New("History", placeholder.NeedsStore))
			}
			return push(history.New(deps.History))
		}},
		components.MenuItem{Label: ExitLabel, Section: toolsSection, Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

// Init loads the attempt summary when history is available.
func (h *HomeScreen) Init() tea.Cmd {
	repo := h.deps.History
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		best, err := repo.BestByChapter(context.Background())
		if err != nil || len(best) == 0 {
			return statsLoadedMsg{}
		}
		attempts := 0
		for _, b := range best {
			attempts += b.Attempts
		}
		return statsLoadedMsg{line: fmt.Sprintf("%d ATTEMPTS · %d OF %d CHAPTERS TRIED", attempts, len(best), len(course.Chapters()))}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = m.line
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}

	if !h.deps.LLMReady {
		sections = append(sections, components.Banner("AI provider not configured: quizzes and tools will report errors", cw))
	}
	if h.stats != "" {
		sections = append(sections, renderStats(h.stats, cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
