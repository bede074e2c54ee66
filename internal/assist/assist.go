// Package assist implements the AI study tools of the course: the chapter
// quiz generator, the proposal builder, the statistics advisor, the writing
// grader, the scenario generator, the general assistant and the ethics chat.
package assist

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/nckh/internal/llm"
)

// Input errors. They are the caller's fault and never reach the provider.
var (
	ErrEmptyQuery  = errors.New("nội dung câu hỏi không được để trống")
	ErrInvalidStep = errors.New("bước không hợp lệ")
)

// Answer is the reply of a free-text tool.
type Answer struct {
	Text    string       `json:"text"`
	Sources []llm.Source `json:"sources"`
}

// Tools runs the free-text study tools against a provider.
// A nil provider makes every call fail with llm.ErrNotConfigured.
type Tools struct {
	provider llm.Provider
	config   Config
}

// NewTools creates the study tools.
func NewTools(provider llm.Provider, cfg Config) *Tools {
	return &Tools{provider: provider, config: cfg}
}

// ask sends one grounded or ungrounded text request.
func (t *Tools) ask(ctx context.Context, purpose, system, query string, grounding bool) (*Answer, error) {
	if t.provider == nil {
		return nil, llm.ErrNotConfigured
	}
	ctx = llm.WithPurpose(ctx, purpose)

	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    llm.UserMessage(query),
		Grounding:   grounding,
		MaxTokens:   t.config.MaxTokens,
		Temperature: t.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", purpose, err)
	}

	sources := resp.Sources
	if sources == nil {
		sources = []llm.Source{}
	}
	return &Answer{Text: resp.Text, Sources: sources}, nil
}

// Messages shown to learners when a tool fails.
const (
	NotConfiguredMessage = "Máy chủ chưa thiết lập nhà cung cấp AI."
	MalformedMessage     = "Lỗi xử lý dữ liệu JSON từ AI."
	UnavailableMessage   = "Không thể kết nối đến AI sau nhiều lần thử."
	UnexpectedPrefix     = "Lỗi không mong muốn: "
	RateLimitedMessage   = "AI đang quá tải, vui lòng thử lại sau giây lát."
)

// Explain turns a tool error into a message fit for a learner.
func Explain(err error) string {
	var (
		apiErr      *llm.ErrAPI
		invalid     *llm.ErrInvalidResponse
		unavailable *llm.ErrProviderUnavailable
		rateLimit   *llm.ErrRateLimit
		truncated   *llm.ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery), errors.Is(err, ErrInvalidStep):
		return err.Error()
	case errors.Is(err, llm.ErrNotConfigured):
		return NotConfiguredMessage
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.As(err, &invalid), errors.As(err, &truncated):
		return MalformedMessage
	case errors.As(err, &rateLimit):
		return RateLimitedMessage
	case errors.As(err, &unavailable):
		return UnavailableMessage
	default:
		return UnexpectedPrefix + err.Error()
	}
}
