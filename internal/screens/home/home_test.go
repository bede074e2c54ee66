package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/quiz"
	"github.com/abhisek/nckh/internal/router"
	"github.com/abhisek/nckh/internal/screens/history"
	"github.com/abhisek/nckh/internal/screens/placeholder"
	"github.com/abhisek/nckh/internal/screens/selftest"
	"github.com/abhisek/nckh/internal/store"
)

type bestOnly struct{ best []store.ChapterBest }

func (b bestOnly) RecentAttempts(context.Context, string, int) ([]store.Attempt, error) {
	return nil, nil
}
func (b bestOnly) BestByChapter(context.Context) ([]store.ChapterBest, error) {
	return b.best, nil
}

var _ history.Repo = bestOnly{}

func selectLabel(t *testing.T, h *HomeScreen, label string) tea.Msg {
	t.Helper()
	for i, item := range h.menu.Items {
		if item.Label == label {
			h.menu.Selected = i
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatalf("%s produced no command", label)
			}
			return cmd()
		}
	}
	t.Fatalf("menu has no %q", label)
	return nil
}

func TestMenuListsEveryChapter(t *testing.T) {
	h := New(Deps{LLMReady: true})

	chapters := course.Chapters()
	if got := len(h.menu.Items); got != len(chapters)+3 {
		t.Fatalf("expected %d items, got %d", len(chapters)+3, got)
	}
	for i, ch := range chapters {
		if h.menu.Items[i].Label != ch.Title {
			t.Errorf("item %d = %q, want %q", i, h.menu.Items[i].Label, ch.Title)
		}
	}
	view := h.View(120, 60)
	if !strings.Contains(view, course.Modules()[0].Title) {
		t.Error("module headings should be shown")
	}
}

func TestChapterOpensQuiz(t *testing.T) {
	source := quiz.SourceFunc(func(context.Context, string) quiz.LoadResult { return quiz.Loaded{} })
	h := New(Deps{Source: source, LLMReady: true})

	msg, ok := selectLabel(t, h, course.Chapters()[1].Title).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	s, ok := msg.Screen.(*selftest.Screen)
	if !ok {
		t.Fatalf("expected quiz screen, got %T", msg.Screen)
	}
	if s.Title() != course.Chapters()[1].Title {
		t.Errorf("quiz opened for %q", s.Title())
	}
}

func TestMissingDepsShowPlaceholders(t *testing.T) {
	h := New(Deps{})

	for _, label := range []string{HistoryLabel, AskLabel} {
		msg := selectLabel(t, h, label).(router.PushScreenMsg)
		if _, ok := msg.Screen.(*placeholder.PlaceholderScreen); !ok {
			t.Errorf("%s without deps should explain, got %T", label, msg.Screen)
		}
	}
	if !strings.Contains(h.View(120, 60), "AI provider not configured") {
		t.Error("expected the provider banner")
	}
}

func TestHistoryOpensWithStore(t *testing.T) {
	h := New(Deps{History: bestOnly{}})
	msg := selectLabel(t, h, HistoryLabel).(router.PushScreenMsg)
	if _, ok := msg.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", msg.Screen)
	}
}

func TestStatsLine(t *testing.T) {
	h := New(Deps{History: bestOnly{best: []store.ChapterBest{{ChapterID: "1", Attempts: 3}, {ChapterID: "2", Attempts: 1}}}, LLMReady: true})
	h.Update(h.Init()())
	if !strings.Contains(h.View(120, 60), "4 ATTEMPTS · 2 OF") {
		t.Errorf("unexpected stats %q", h.stats)
	}
}
