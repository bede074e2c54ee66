package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Before  int       // id < Before (0 = no bound)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates calls sharing a purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls served by one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// AttemptData is one graded quiz.
type AttemptData struct {
	SessionID string
	ChapterID string
	Score     int
	Total     int
	Skipped   int
	// Source names the host that ran the quiz: "tui" or "web".
	Source string
}

// Attempt is a stored AttemptData.
type Attempt struct {
	ID        int
	Timestamp time.Time
	AttemptData
}

// ChapterBest is the best score reached on a chapter.
type ChapterBest struct {
	ChapterID string
	Attempts  int
	BestScore int
	Total     int
}

// AttemptRepo records graded quizzes.
type AttemptRepo interface {
	AppendAttempt(ctx context.Context, data AttemptData) error
}
