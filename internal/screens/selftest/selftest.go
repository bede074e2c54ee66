// Package selftest hosts the chapter self-assessment quiz in the terminal.
package selftest

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/quiz"
	"github.com/abhisek/nckh/internal/screen"
	"github.com/abhisek/nckh/internal/store"
	"github.com/abhisek/nckh/internal/ui/layout"
	"github.com/abhisek/nckh/internal/ui/theme"
)

// AttemptSource tags attempts recorded from the terminal.
const AttemptSource = "tui"

// Screen runs one chapter quiz on a quiz.Controller.
type Screen struct {
	chapterID string
	source    quiz.Source
	attempts  store.AttemptRepo

	ctrl      *quiz.Controller
	sessionID string
	spinner   spinner.Model

	// cancel aborts the request in flight, if any.
	cancel context.CancelFunc

	current int // focused question while answering, first review row once graded
	cursor  int // highlighted option of the focused question
	notice  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Closer = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a quiz screen for chapterID. attempts may be nil, in which
// case graded quizzes are not recorded.
func New(chapterID string, source quiz.Source, attempts store.AttemptRepo) *Screen {
	return &Screen{
		chapterID: chapterID,
		source:    source,
		attempts:  attempts,
		ctrl:      quiz.NewController(),
		sessionID: uuid.NewString(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Selected)),
	}
}

// Init starts the quiz for the chapter the screen was opened with.
func (s *Screen) Init() tea.Cmd {
	ticket, err := s.ctrl.Start(s.chapterID)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	return s.request(ticket)
}

func (s *Screen) Title() string {
	return course.Title(s.chapterID)
}

// Snapshot exposes the controller state for rendering and tests.
func (s *Screen) Snapshot() quiz.Snapshot {
	return s.ctrl.Snapshot()
}

// Status shows the answered count while answering and the score once graded.
func (s *Screen) Status() string {
	snap := s.ctrl.Snapshot()
	switch snap.Session.State {
	case quiz.StateActive:
		return fmt.Sprintf("%d/%d answered  ", len(snap.Session.Answers), len(snap.Session.Questions))
	case quiz.StateGraded:
		return fmt.Sprintf("score %d/%d  ", snap.Result.Score, snap.Result.Total)
	}
	return ""
}

// Close hides the quiz and aborts any pending request.
func (s *Screen) Close() {
	s.stop()
	s.ctrl.Close()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	snap := s.ctrl.Snapshot()
	switch {
	case snap.Session.State == quiz.StateActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Question"},
			{Key: "←→", Description: "Option"},
			{Key: "1-9/Enter", Description: "Choose"},
			{Key: "s", Description: "Submit"},
			{Key: "Esc", Description: "Close"},
		}
	case snap.Session.State == quiz.StateGraded:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "r", Description: "Retake"},
			{Key: "Esc", Description: "Close"},
		}
	case snap.Surface.Error != "":
		return []layout.KeyHint{
			{Key: "r", Description: "Try again"},
			{Key: "Esc", Description: "Close"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Close"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if s.ctrl.Resolve(msg.ticket, msg.result) {
			s.cancel = nil
			s.current, s.cursor = 0, 0
		}
		return s, nil

	case recordedMsg:
		if msg.err != nil {
			s.notice = "Could not save this attempt: " + msg.err.Error()
		}
		return s, nil

	case spinner.TickMsg:
		if s.ctrl.State() != quiz.StateLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *Screen) handleKey(key string) tea.Cmd {
	snap := s.ctrl.Snapshot()
	switch snap.Session.State {
	case quiz.StateActive:
		return s.answerKey(key, snap.Session)
	case quiz.StateGraded:
		switch key {
		case "r":
			return s.retake()
		case "up", "k":
			if s.current > 0 {
				s.current--
			}
		case "down", "j":
			if snap.Result != nil && s.current < len(snap.Result.Review)-1 {
				s.current++
			}
		}
	default:
		if key == "r" && snap.Surface.Error != "" {
			return s.retake()
		}
	}
	return nil
}

func (s *Screen) answerKey(key string, sess quiz.Session) tea.Cmd {
	options := len(sess.Questions[s.current].Options)

	switch key {
	case "up", "k":
		if s.current > 0 {
			s.focus(s.current-1, sess)
		}
	case "down", "j":
		if s.current < len(sess.Questions)-1 {
			s.focus(s.current+1, sess)
		}
	case "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor < options-1 {
			s.cursor++
		}
	case "enter":
		s.choose(s.cursor)
	case "s":
		return s.submit()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < options {
				s.cursor = i
				s.choose(i)
			}
		}
	}
	return nil
}

// focus moves to question i, placing the cursor on its current answer.
func (s *Screen) focus(i int, sess quiz.Session) {
	s.current = i
	s.cursor = 0
	if chosen, ok := sess.Answers[i]; ok {
		s.cursor = chosen
	}
}

func (s *Screen) choose(option int) {
	if err := s.ctrl.Select(s.current, option); err != nil {
		s.notice = err.Error()
	}
}

func (s *Screen) submit() tea.Cmd {
	res, err := s.ctrl.Submit()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.current = 0
	s.notice = ""
	return s.record(res)
}

func (s *Screen) retake() tea.Cmd {
	ticket, err := s.ctrl.Retake()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	return s.request(ticket)
}

// request aborts the previous request and issues a new one for ticket.
func (s *Screen) request(ticket quiz.Ticket) tea.Cmd {
	s.stop()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	source := s.source
	fetch := func() tea.Msg {
		return loadedMsg{ticket: ticket, result: load(ctx, source, ticket.ChapterID)}
	}
	return tea.Batch(fetch, s.spinner.Tick)
}

func load(ctx context.Context, source quiz.Source, chapterID string) quiz.LoadResult {
	if source == nil {
		return quiz.Failed(quiz.FallbackMessage)
	}
	return source.Load(ctx, chapterID)
}

func (s *Screen) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Screen) record(res quiz.Result) tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	repo := s.attempts
	data := store.AttemptData{
		SessionID: s.sessionID,
		ChapterID: s.ctrl.ChapterID(),
		Score:     res.Score,
		Total:     res.Total,
		Skipped:   res.Skipped(),
		Source:    AttemptSource,
	}
	return func() tea.Msg {
		if err := repo.AppendAttempt(context.Background(), data); err != nil {
			return recordedMsg{err: fmt.Errorf("record attempt: %w", err)}
		}
		return recordedMsg{}
	}
}
