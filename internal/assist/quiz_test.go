package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nckh/internal/llm"
	"github.com/abhisek/nckh/internal/quiz"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.QuestionCount = 2
	return cfg
}

func quizJSON(n int) json.RawMessage {
	var qs []map[string]any
	for i := range n {
		qs = append(qs, map[string]any{
			"question":             fmt.Sprintf("Q%d", i+1),
			"options":              []string{"A", "B", "C", "D"},
			"correct_answer_index": i % 4,
			"explanation":          "because",
		})
	}
	b, _ := json.Marshal(map[string]any{"questions": qs})
	return b
}

func TestQuizGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(2)})
	g := NewQuizGenerator(mock, smallConfig())

	qs, err := g.Generate(context.Background(), "3")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Q1", qs[0].Text)
	assert.Equal(t, []string{"A", "B", "C", "D"}, qs[0].Options)
	assert.Equal(t, 1, qs[1].CorrectOptionIndex)

	req, ok := mock.LastCall()
	require.True(t, ok)
	require.NotNil(t, req.Schema)
	assert.Equal(t, "chapter-quiz", req.Schema.Name)
	assert.False(t, req.Grounding)
	assert.Contains(t, req.Messages[0].Content, "Chương 3")
	assert.Contains(t, req.Messages[0].Content, "Create 2 ")
	assert.Contains(t, req.System, "exactly 4 options")
}

func TestQuizGenerator_DefaultsToFirstChapter(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(1)})
	g := NewQuizGenerator(mock, smallConfig())

	_, err := g.Generate(context.Background(), "")
	require.NoError(t, err)
	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "Chương 1")
}

func TestQuizGenerator_UnknownChapterUsesGeneralTitle(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(1)})
	g := NewQuizGenerator(mock, smallConfig())

	_, err := g.Generate(context.Background(), "42")
	require.NoError(t, err)
	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, `"chung"`)
}

func TestQuizGenerator_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty list", `{"questions": []}`},
		{"three options", `{"questions": [{"question": "q", "options": ["a","b","c"], "correct_answer_index": 0, "explanation": "e"}]}`},
		{"index out of range", `{"questions": [{"question": "q", "options": ["a","b","c","d"], "correct_answer_index": 4, "explanation": "e"}]}`},
		{"not json", `here are your questions`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			_, err := NewQuizGenerator(mock, smallConfig()).Generate(context.Background(), "1")

			var invalid *llm.ErrInvalidResponse
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestQuizGenerator_NotConfigured(t *testing.T) {
	_, err := NewQuizGenerator(nil, smallConfig()).Generate(context.Background(), "1")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	res := NewQuizGenerator(nil, smallConfig()).Load(context.Background(), "1")
	assert.Equal(t, quiz.LoadFailed{Message: NotConfiguredMessage}, res)
}

func TestQuizGenerator_Load(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: quizJSON(2)},
		llm.MockResponse{Err: &llm.ErrAPI{StatusCode: 403, Err: errors.New("key rejected")}},
		llm.MockResponse{Content: json.RawMessage(`{"questions": "nope"}`)},
	)
	g := NewQuizGenerator(mock, smallConfig())

	loaded, ok := g.Load(context.Background(), "2").(quiz.Loaded)
	require.True(t, ok)
	assert.Len(t, loaded.Questions, 2)

	failed, ok := g.Load(context.Background(), "2").(quiz.LoadFailed)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(failed.Message, "API Error: 403."), failed.Message)

	failed, ok = g.Load(context.Background(), "2").(quiz.LoadFailed)
	require.True(t, ok)
	assert.Equal(t, MalformedMessage, failed.Message)
}

func TestQuizSchema_Bounds(t *testing.T) {
	s := quizSchema(20, 4)
	questions := s.Definition["properties"].(map[string]any)["questions"].(map[string]any)
	assert.Equal(t, 20, questions["maxItems"])

	item := questions["items"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, 4, item["options"].(map[string]any)["minItems"])
	assert.Equal(t, 3, item["correct_answer_index"].(map[string]any)["maximum"])
}
