package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/llm"
	"github.com/abhisek/nckh/internal/quiz"
)

// ErrNoQuestions is returned when the model answered with an empty quiz.
var ErrNoQuestions = errors.New("no quiz questions generated")

// QuizGenerator asks a provider for chapter self-assessment questions.
type QuizGenerator struct {
	provider llm.Provider
	config   Config
}

// NewQuizGenerator creates a QuizGenerator. A nil provider makes every
// request fail with llm.ErrNotConfigured.
func NewQuizGenerator(provider llm.Provider, cfg Config) *QuizGenerator {
	return &QuizGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw model response before conversion.
type quizOutput struct {
	Questions []quiz.Question `json:"questions"`
}

// Generate produces the questions of one chapter. An empty chapterID asks
// about the first chapter; an unknown one about the course in general.
func (g *QuizGenerator) Generate(ctx context.Context, chapterID string) ([]quiz.Question, error) {
	if g.provider == nil {
		return nil, llm.ErrNotConfigured
	}
	if chapterID == "" {
		chapterID = course.DefaultChapterID
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	count, options := g.config.QuestionCount, g.config.OptionCount
	title := course.Title(chapterID)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      quizSystem(options),
		Messages:    llm.UserMessage(quizQuery(count, title)),
		Schema:      quizSchema(count, options),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	if len(out.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if err := quiz.ValidateAll(out.Questions); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return out.Questions, nil
}

// Load implements quiz.Source for hosts that generate questions in-process.
func (g *QuizGenerator) Load(ctx context.Context, chapterID string) quiz.LoadResult {
	qs, err := g.Generate(ctx, chapterID)
	if errors.Is(err, ErrNoQuestions) {
		return quiz.LoadFailed{Message: quiz.NoDataMessage}
	}
	if err != nil {
		return quiz.Failed(Explain(err))
	}
	return quiz.Check(qs)
}
