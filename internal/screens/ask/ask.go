// Package ask is the free-text assistant screen. Questions go to the
// grounded research-methods assistant or to the ethics advisor.
package ask

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/assist"
	"github.com/abhisek/nckh/internal/screen"
	"github.com/abhisek/nckh/internal/ui/components"
	"github.com/abhisek/nckh/internal/ui/layout"
	"github.com/abhisek/nckh/internal/ui/theme"
)

// Asker answers free-text questions.
type Asker interface {
	Ask(ctx context.Context, query string) (*assist.Answer, error)
	Ethics(ctx context.Context, query string) (*assist.Answer, error)
}

// Mode selects which advisor answers.
type Mode int

const (
	ModeAssistant Mode = iota
	ModeEthics
)

func (m Mode) String() string {
	if m == ModeEthics {
		return "Ethics advisor"
	}
	return "Research assistant"
}

type answeredMsg struct {
	seq    int
	answer *assist.Answer
	err    error
}

// Screen sends one question at a time and shows the latest answer.
type Screen struct {
	asker   Asker
	mode    Mode
	input   components.TextInput
	spinner spinner.Model

	seq     int // id of the newest question
	cancel  context.CancelFunc
	pending bool

	query  string
	answer *assist.Answer
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Closer = (*Screen)(nil)

// New creates the ask screen.
func New(asker Asker) *Screen {
	return &Screen{
		asker:   asker,
		input:   components.NewTextInput("Ask about study design, sampling, statistics...", 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Selected)),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return s.mode.String()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Tab", Description: "Switch advisor"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close aborts the question in flight.
func (s *Screen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answeredMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.pending = false
		s.cancel = nil
		if msg.err != nil {
			s.errMsg = assist.Explain(msg.err)
			s.answer = nil
		} else {
			s.errMsg = ""
			s.answer = msg.answer
		}
		return s, nil

	case spinner.TickMsg:
		if !s.pending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			s.mode = 1 - s.mode
			return s, nil
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) submit() tea.Cmd {
	q := s.input.Value()
	if q == "" {
		s.errMsg = assist.ErrEmptyQuery.Error()
		return nil
	}

	// A newer question supersedes the one in flight.
	s.Close()
	s.seq++
	seq, mode, asker := s.seq, s.mode, s.asker
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.pending = true
	s.query = q
	s.errMsg = ""
	s.input.Reset()

	ask := func() tea.Msg {
		var (
			a   *assist.Answer
			err error
		)
		if mode == ModeEthics {
			a, err = asker.Ethics(ctx, q)
		} else {
			a, err = asker.Ask(ctx, q)
		}
		return answeredMsg{seq: seq, answer: a, err: err}
	}
	return tea.Batch(ask, s.spinner.Tick)
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 4)

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.mode.String()),
		s.input.View(),
	}

	if s.query != "" {
		sections = append(sections, "", theme.Hint.Render("You asked: "+s.query))
	}

	switch {
	case s.pending:
		sections = append(sections, s.spinner.View()+" "+theme.Body.Render("Thinking..."))
	case s.errMsg != "":
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	case s.answer != nil:
		sections = append(sections, components.Card(renderAnswer(s.answer, cw-6), cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func renderAnswer(a *assist.Answer, width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Width(width).Render(a.Text))
	if len(a.Sources) > 0 {
		b.WriteString("\n\n" + theme.Hint.Render("Sources:"))
		for _, src := range a.Sources {
			line := src.URI
			if src.Title != "" {
				line = src.Title + " (" + src.URI + ")"
			}
			b.WriteString("\n" + theme.Hint.Width(width).Render("• "+line))
		}
	}
	return b.String()
}
