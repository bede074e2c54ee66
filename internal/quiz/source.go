package quiz

import "context"

// Messages used when a load produces no usable questions.
const (
	NoDataMessage   = "Không nhận được dữ liệu câu hỏi từ AI."
	FallbackMessage = "Lỗi khi tạo câu hỏi."

	// ErrorPrefix starts the loading area text of a failed load.
	ErrorPrefix = "Lỗi: "

	// InvalidDataPrefix starts the message of a payload that failed validation.
	InvalidDataPrefix = "Dữ liệu câu hỏi không hợp lệ: "
)

// LoadResult is the outcome of a question request: either Loaded or LoadFailed.
type LoadResult interface {
	loadResult()
}

// Loaded carries the questions of a successful request.
type Loaded struct {
	Questions []Question
}

// LoadFailed carries the user-visible message of a failed request.
type LoadFailed struct {
	Message string
}

func (Loaded) loadResult()     {}
func (LoadFailed) loadResult() {}

// Source produces questions for a chapter. Implementations never return
// errors directly; every failure is folded into a LoadFailed.
type Source interface {
	Load(ctx context.Context, chapterID string) LoadResult
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, chapterID string) LoadResult

func (f SourceFunc) Load(ctx context.Context, chapterID string) LoadResult {
	return f(ctx, chapterID)
}

// Failed builds a LoadFailed, substituting the fallback for an empty message.
func Failed(msg string) LoadFailed {
	if msg == "" {
		msg = FallbackMessage
	}
	return LoadFailed{Message: msg}
}

// Check folds a decoded question list into a LoadResult: an empty list or
// an invalid question is a failure.
func Check(qs []Question) LoadResult {
	if len(qs) == 0 {
		return LoadFailed{Message: NoDataMessage}
	}
	if err := ValidateAll(qs); err != nil {
		return LoadFailed{Message: InvalidDataPrefix + err.Error()}
	}
	return Loaded{Questions: qs}
}
