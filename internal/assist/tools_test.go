package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nckh/internal/llm"
)

func TestSuggest_AllStepsKnown(t *testing.T) {
	pc := ProposalContext{Problem: "tăng huyết áp", Title: "Tỷ lệ tăng huyết áp", General: "xác định tỷ lệ", Specific: "mô tả", Methods: "cắt ngang"}
	grounded := map[string]bool{StepLitReview: true, StepReferences: true}

	for _, step := range Steps {
		t.Run(step, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.TextResponse("gợi ý"))
			a, err := NewTools(mock, DefaultConfig()).Suggest(context.Background(), step, pc)
			require.NoError(t, err)
			assert.Equal(t, "gợi ý", a.Text)

			req, _ := mock.LastCall()
			assert.Equal(t, grounded[step], req.Grounding)
			assert.Nil(t, req.Schema)
			assert.NotEmpty(t, req.Messages[0].Content)
		})
	}
}

func TestSuggest_InvalidStep(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewTools(mock, DefaultConfig()).Suggest(context.Background(), "proposal-budget", ProposalContext{})
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.Zero(t, mock.CallCount())
}

func TestSuggest_MissingTitle(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("x"))
	_, err := NewTools(mock, DefaultConfig()).Suggest(context.Background(), StepReferences, ProposalContext{})
	require.NoError(t, err)
	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, `"none yet"`)
}

func TestAsk_ReturnsSources(t *testing.T) {
	src := llm.Source{URI: "https://www.wma.net", Title: "WMA"}
	mock := llm.NewMockProvider(llm.TextResponse("Tuyên ngôn Helsinki...", src))
	tools := NewTools(mock, DefaultConfig())

	a, err := tools.Ethics(context.Background(), "Helsinki là gì?")
	require.NoError(t, err)
	assert.Equal(t, []llm.Source{src}, a.Sources)

	req, _ := mock.LastCall()
	assert.True(t, req.Grounding)
	assert.Contains(t, req.System, "Declaration of Helsinki")
}

func TestAsk_SourcesNeverNil(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("ok"))
	a, err := NewTools(mock, DefaultConfig()).Scenario(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, a.Sources)
	assert.Empty(t, a.Sources)
}

func TestAsk_EmptyQuery(t *testing.T) {
	mock := llm.NewMockProvider()
	tools := NewTools(mock, DefaultConfig())

	_, err := tools.Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = tools.Ethics(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = tools.Review(context.Background(), "Methods", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, mock.CallCount())
}

func TestRecommend_Prompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Independent t-test"))
	_, err := NewTools(mock, DefaultConfig()).Recommend(context.Background(), AdvisorInput{
		Goal: "compare means", Groups: "2 independent groups", VarType: "continuous", Dist: "normal",
	})
	require.NoError(t, err)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "2 independent groups")
	assert.Contains(t, req.System, "SPSS")
}

func TestReview_QuotesPassage(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("ok"))
	_, err := NewTools(mock, DefaultConfig()).Review(context.Background(), "Kết quả", "Dòng 1\nDòng 2")
	require.NoError(t, err)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "\"Dòng 1\nDòng 2\"")
}

func TestTools_PurposeAndErrors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := NewTools(mock, DefaultConfig()).Ask(context.Background(), "p-value?")

	var rl *llm.ErrRateLimit
	require.True(t, errors.As(err, &rl))
	assert.Equal(t, RateLimitedMessage, Explain(err))

	_, err = NewTools(nil, DefaultConfig()).Scenario(context.Background())
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestExplain(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptyQuery, ErrEmptyQuery.Error()},
		{llm.ErrNotConfigured, NotConfiguredMessage},
		{&llm.ErrInvalidResponse{Err: errors.New("bad")}, MalformedMessage},
		{&llm.ErrMaxTokensExceeded{}, MalformedMessage},
		{&llm.ErrProviderUnavailable{}, UnavailableMessage},
		{&llm.ErrAPI{StatusCode: 401, Err: errors.New("bad key")}, "API Error: 401. bad key"},
		{errors.New("boom"), UnexpectedPrefix + "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Explain(tt.err))
	}
}
