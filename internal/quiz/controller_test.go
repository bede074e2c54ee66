package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeController(t *testing.T, qs []Question) (*Controller, Ticket) {
	t.Helper()
	c := NewController()
	ticket, err := c.Start("3")
	require.NoError(t, err)
	require.True(t, c.Resolve(ticket, Loaded{Questions: qs}))
	require.Equal(t, StateActive, c.State())
	return c, ticket
}

func TestController_StartShowsLoading(t *testing.T) {
	c := NewController()
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.Snapshot().Surface.Modal)

	ticket, err := c.Start("2")
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Token)
	assert.Equal(t, "2", ticket.ChapterID)

	snap := c.Snapshot()
	assert.Equal(t, StateLoading, snap.Session.State)
	assert.True(t, snap.Surface.Modal)
	assert.True(t, snap.Surface.Loading)
	assert.False(t, snap.Surface.Form)
	assert.False(t, snap.Surface.Submit)
}

func TestController_StartRequiresChapter(t *testing.T) {
	c := NewController()
	_, err := c.Start("")
	assert.ErrorIs(t, err, ErrNoChapter)
	assert.Equal(t, StateIdle, c.State())
}

func TestController_ResolveLoaded(t *testing.T) {
	c, _ := activeController(t, oneQuestion())

	snap := c.Snapshot()
	assert.Len(t, snap.Session.Questions, 1)
	assert.False(t, snap.Surface.Loading)
	assert.True(t, snap.Surface.Form)
	assert.True(t, snap.Surface.Submit)
	assert.False(t, snap.Surface.Results)
}

func TestController_ResolveEmptyData(t *testing.T) {
	c := NewController()
	ticket, _ := c.Start("1")

	assert.True(t, c.Resolve(ticket, Loaded{}))

	snap := c.Snapshot()
	assert.NotEqual(t, StateActive, snap.Session.State)
	assert.Equal(t, StateIdle, snap.Session.State)
	assert.False(t, snap.Surface.Form)
	assert.True(t, snap.Surface.Loading)
	assert.Equal(t, ErrorPrefix+NoDataMessage, snap.Surface.LoadingText())

	_, err := c.Submit()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestController_ResolveFailure(t *testing.T) {
	c := NewController()
	ticket, _ := c.Start("1")

	c.Resolve(ticket, LoadFailed{Message: "API Error: 403"})
	assert.Equal(t, ErrorPrefix+"API Error: 403", c.Snapshot().Surface.LoadingText())

	ticket, _ = c.Start("1")
	c.Resolve(ticket, LoadFailed{})
	assert.Equal(t, ErrorPrefix+FallbackMessage, c.Snapshot().Surface.LoadingText())
}

func TestController_ResolveMalformedLoaded(t *testing.T) {
	c := NewController()
	ticket, _ := c.Start("5")

	bad := []Question{{Text: "Q1", Options: []string{"A", "B"}, CorrectOptionIndex: 4, Explanation: "e"}}
	assert.True(t, c.Resolve(ticket, Loaded{Questions: bad}))

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.Session.State)
	assert.Empty(t, snap.Session.Questions)
	assert.False(t, snap.Surface.Form)
	assert.False(t, snap.Surface.Submit)
	assert.Contains(t, snap.Surface.LoadingText(), InvalidDataPrefix)

	_, err := c.Submit()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestController_StaleTicketIgnored(t *testing.T) {
	c := NewController()
	first, _ := c.Start("1")
	second, _ := c.Start("2")
	require.NotEqual(t, first.Token, second.Token)

	assert.False(t, c.Resolve(first, Loaded{Questions: sampleQuestions()}))
	assert.Equal(t, StateLoading, c.State())

	assert.True(t, c.Resolve(second, Loaded{Questions: oneQuestion()}))
	snap := c.Snapshot()
	assert.Equal(t, "2", snap.Session.ChapterID)
	assert.Len(t, snap.Session.Questions, 1)

	// A second resolve of the same ticket is ignored once the load completed.
	assert.False(t, c.Resolve(second, Loaded{Questions: sampleQuestions()}))
	assert.Len(t, c.Snapshot().Session.Questions, 1)
}

func TestController_SubmitScenario(t *testing.T) {
	c, _ := activeController(t, oneQuestion())
	require.NoError(t, c.Select(0, 1))

	res, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, PerfectSummary, res.Summary())
	assert.Empty(t, res.Review)

	snap := c.Snapshot()
	assert.Equal(t, StateGraded, snap.Session.State)
	assert.False(t, snap.Surface.Form)
	assert.False(t, snap.Surface.Submit)
	assert.True(t, snap.Surface.Results)
	assert.True(t, snap.Surface.Retake)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 1, snap.Result.Score)
}

func TestController_SubmitSkipped(t *testing.T) {
	c, _ := activeController(t, oneQuestion())

	res, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	require.Len(t, res.Review, 1)
	assert.True(t, res.Review[0].Skipped)
	assert.Equal(t, "B", res.Review[0].Correct)
}

func TestController_SelectValidation(t *testing.T) {
	c := NewController()
	assert.ErrorIs(t, c.Select(0, 0), ErrNotActive)

	c, _ = activeController(t, oneQuestion())
	assert.Error(t, c.Select(1, 0))
	assert.Error(t, c.Select(-1, 0))
	assert.NoError(t, c.Select(0, 0))

	c.Clear(0)
	assert.Empty(t, c.Snapshot().Session.Answers)
}

func TestController_SubmitTwiceFails(t *testing.T) {
	c, _ := activeController(t, oneQuestion())
	_, err := c.Submit()
	require.NoError(t, err)
	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestController_RetakeRemembersChapter(t *testing.T) {
	c, _ := activeController(t, sampleQuestions())
	require.NoError(t, c.Select(0, 0))
	_, err := c.Submit()
	require.NoError(t, err)

	ticket, err := c.Retake()
	require.NoError(t, err)
	assert.Equal(t, "3", ticket.ChapterID)

	snap := c.Snapshot()
	assert.Equal(t, StateLoading, snap.Session.State)
	assert.Empty(t, snap.Session.Questions)
	assert.Empty(t, snap.Session.Answers)
	assert.Nil(t, snap.Result)
	assert.False(t, snap.Surface.Results)
	assert.False(t, snap.Surface.Retake)
	assert.True(t, snap.Surface.Loading)
	assert.Equal(t, "3", c.ChapterID())
}

func TestController_RetakeWithoutStart(t *testing.T) {
	c := NewController()
	_, err := c.Retake()
	assert.ErrorIs(t, err, ErrNoChapter)
}

func TestController_CloseKeepsSession(t *testing.T) {
	c, _ := activeController(t, oneQuestion())
	require.NoError(t, c.Select(0, 1))

	c.Close()
	snap := c.Snapshot()
	assert.False(t, snap.Surface.Modal)
	assert.Equal(t, StateActive, snap.Session.State)
	assert.Equal(t, Answers{0: 1}, snap.Session.Answers)
}

func TestController_CloseThenStartIsClean(t *testing.T) {
	c, _ := activeController(t, sampleQuestions())
	require.NoError(t, c.Select(1, 1))
	_, err := c.Submit()
	require.NoError(t, err)

	c.Close()
	ticket, err := c.Start("3")
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.True(t, snap.Surface.Modal)
	assert.Empty(t, snap.Session.Answers)
	assert.Nil(t, snap.Result)
	assert.False(t, snap.Surface.Results)

	require.True(t, c.Resolve(ticket, Loaded{Questions: sampleQuestions()}))
	assert.Empty(t, c.Snapshot().Session.Answers)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c, _ := activeController(t, oneQuestion())
	require.NoError(t, c.Select(0, 0))

	snap := c.Snapshot()
	snap.Session.Answers[0] = 1
	snap.Session.Questions[0].Text = "changed"

	fresh := c.Snapshot()
	assert.Equal(t, 0, fresh.Session.Answers[0])
	assert.Equal(t, "Q1", fresh.Session.Questions[0].Text)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "graded", StateGraded.String())
	assert.Equal(t, "State(9)", State(9).String())
}
