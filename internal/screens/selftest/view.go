package selftest

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nckh/internal/quiz"
	"github.com/abhisek/nckh/internal/ui/components"
	"github.com/abhisek/nckh/internal/ui/theme"
)

// LoadingMessage is shown next to the spinner while questions are generated.
const LoadingMessage = quiz.LoadingMessage

func (s *Screen) View(width, height int) string {
	snap := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var body string
	switch {
	case snap.Surface.Error != "":
		body = theme.Incorrect.Render(snap.Surface.LoadingText())
	case snap.Session.State == quiz.StateLoading:
		body = s.spinner.View() + " " + theme.Body.Render(LoadingMessage)
	case snap.Session.State == quiz.StateActive:
		body = s.viewActive(snap, cw)
	case snap.Session.State == quiz.StateGraded:
		body = s.viewResults(snap, cw, height)
	}

	if s.notice != "" {
		body += "\n\n" + theme.Hint.Render(s.notice)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Screen) viewActive(snap quiz.Snapshot, cw int) string {
	sess := snap.Session
	q := sess.Questions[s.current]

	chosen := -1
	if c, ok := sess.Answers[s.current]; ok {
		chosen = c
	}

	card := components.QuestionCard{
		Number:   s.current + 1,
		Total:    len(sess.Questions),
		Question: q.Text,
		Options:  q.Options,
		Cursor:   s.cursor,
		Chosen:   chosen,
	}

	bar := components.NewProgressBar("Đã trả lời", len(sess.Answers), len(sess.Questions), cw)
	buttons := components.ButtonRow(
		components.NewButton("Nộp bài", "s", snap.Surface.Submit),
		components.NewButton("Đóng", "Esc", true),
	)

	return strings.Join([]string{
		bar.View(),
		"",
		components.Card(card.View(cw-6), cw),
		"",
		buttons,
	}, "\n")
}

func (s *Screen) viewResults(snap quiz.Snapshot, cw, height int) string {
	res := snap.Result
	if res == nil {
		return ""
	}

	score := theme.Correct
	if !res.Perfect() {
		score = theme.Selected
	}

	lines := []string{
		score.Render(res.ScoreLine()),
		theme.Subtitle.Render(res.Summary()),
		"",
	}

	if len(res.Review) == 0 {
		lines = append(lines, theme.Correct.Render(quiz.EmptyReviewNotice))
	} else {
		// Leave room for the score block and buttons.
		fit := (height - 8) / 5
		if fit < 1 {
			fit = 1
		}
		end := s.current + fit
		if end > len(res.Review) {
			end = len(res.Review)
		}
		for _, item := range res.Review[s.current:end] {
			lines = append(lines, components.Card(reviewItem(item, cw-6), cw))
		}
		if len(res.Review) > fit {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("Câu cần xem lại %d-%d / %d", s.current+1, end, len(res.Review))))
		}
	}

	lines = append(lines, "", components.ButtonRow(
		components.NewButton("Làm lại", "r", snap.Surface.Retake),
		components.NewButton("Đóng", "Esc", true),
	))
	return strings.Join(lines, "\n")
}

func reviewItem(item quiz.ReviewItem, width int) string {
	choice := theme.Incorrect
	if item.Skipped {
		choice = theme.Hint
	}
	wrap := lipgloss.NewStyle().Width(width)
	return strings.Join([]string{
		wrap.Bold(true).Render(item.Heading()),
		choice.Width(width).Render(item.ChoiceLine()),
		theme.Correct.Width(width).Render(item.CorrectLine()),
		theme.Hint.Width(width).Render(item.ExplanationLine()),
	}, "\n")
}
