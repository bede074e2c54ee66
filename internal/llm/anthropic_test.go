package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-haiku-4-5-20251001",
	}
}

func anthropicMessage(stop string, texts ...string) map[string]any {
	content := make([]map[string]any, 0, len(texts))
	for _, text := range texts {
		content = append(content, map[string]any{"type": "text", "text": text})
	}
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 480},
	}
}

func anthropicError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": message},
	})
}

func TestAnthropicProvider_ChapterQuiz(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		body = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("end_turn", chapterQuizJSON))
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You write self-assessment quizzes for a research methods course.",
		Messages:  UserMessage("Chương 3: Biến số và giả thuyết"),
		Schema:    chapterQuizSchema(),
		MaxTokens: 4096,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var quiz struct {
		Questions []struct {
			CorrectAnswerIndex int `json:"correct_answer_index"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &quiz); err != nil {
		t.Fatalf("content is not quiz JSON: %v", err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].CorrectAnswerIndex != 1 {
		t.Fatalf("unexpected quiz %+v", quiz)
	}
	if resp.Text != chapterQuizJSON {
		t.Fatalf("expected raw text to be kept, got %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 600 {
		t.Fatalf("expected 600 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if got := body["max_tokens"]; got != float64(4096) {
		t.Fatalf("expected max_tokens 4096, got %v", got)
	}
	system, _ := body["system"].([]any)
	if len(system) != 1 {
		t.Fatalf("expected one system block, got %v", body["system"])
	}
}

func TestAnthropicProvider_DefaultsMaxTokens(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		body = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("end_turn", "Giả thuyết không là..."))
	}

	p := newTestAnthropicProvider(t, handler)
	if _, err := p.Generate(context.Background(), Request{
		Messages: UserMessage("Giả thuyết không là gì?"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := body["max_tokens"]; got != float64(defaultAnthropicMaxTokens) {
		t.Fatalf("expected max_tokens %d, got %v", defaultAnthropicMaxTokens, got)
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("end_turn", "Mẫu ngẫu nhiên ", "giảm sai lệch chọn mẫu."))
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages:  UserMessage("Vì sao chọn mẫu ngẫu nhiên?"),
		Grounding: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Mẫu ngẫu nhiên giảm sai lệch chọn mẫu." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if len(resp.Sources) != 0 {
		t.Fatalf("expected no sources without a search tool, got %+v", resp.Sources)
	}
}

func TestAnthropicProvider_NoTextIsInvalid(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("test")})
	wantInvalid(t, err)
}

func TestAnthropicProvider_QuizFailingSchema(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("end_turn", `{"questions":[{"question":"Q","options":["A","B"],"correct_answer_index":5,"explanation":"x"}]}`))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: UserMessage("Chương 4"),
		Schema:   chapterQuizSchema(),
	})
	wantInvalid(t, err)
}

func TestAnthropicProvider_ClientErrorIsAPIError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		anthropicError(w, http.StatusUnauthorized, "authentication_error", "invalid x-api-key")
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("test")})
	var apiErr *ErrAPI
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected ErrAPI, got: %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		anthropicError(w, http.StatusTooManyRequests, "rate_limit_error", "Rate limit exceeded")
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("test")})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestAnthropicProvider_Overloaded(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		anthropicError(w, http.StatusServiceUnavailable, "overloaded_error", "Overloaded")
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("test")})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestAnthropicStopReason(t *testing.T) {
	if got := mapAnthropicStopReason("max_tokens"); got != "max_tokens" {
		t.Errorf("max_tokens mapped to %q", got)
	}
	if got := mapAnthropicStopReason("end_turn"); got != "end" {
		t.Errorf("end_turn mapped to %q", got)
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
