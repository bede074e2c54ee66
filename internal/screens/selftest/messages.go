package selftest

import "github.com/abhisek/nckh/internal/quiz"

// loadedMsg carries the outcome of one question request.
type loadedMsg struct {
	ticket quiz.Ticket
	result quiz.LoadResult
}

// recordedMsg reports whether a graded attempt was saved.
type recordedMsg struct {
	err error
}
