package webquiz

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/nckh/internal/quiz"
)

// session is one browser's quiz. Its controller is only touched under mu.
type session struct {
	id string

	mu       sync.Mutex
	ctrl     *quiz.Controller
	cancel   context.CancelFunc
	lastSeen time.Time
}

// supersede cancels the in-flight question request, if any, and installs
// a new one derived from parent. Callers hold s.mu.
func (s *session) supersede(parent context.Context) context.Context {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx
}

// sessions maps cookie ids to sessions and forgets idle ones.
type sessions struct {
	mu   sync.Mutex
	byID map[string]*session
	ttl  time.Duration
	now  func() time.Time
}

func newSessions(ttl time.Duration) *sessions {
	return &sessions{
		byID: make(map[string]*session),
		ttl:  ttl,
		now:  time.Now,
	}
}

// get returns the live session with the given id.
func (ss *sessions) get(id string) (*session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, ok := ss.byID[id]
	if !ok {
		return nil, false
	}
	now := ss.now()
	if ss.expired(s, now) {
		ss.drop(id)
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

// create starts a new session with an idle controller.
func (ss *sessions) create() *session {
	s := &session{
		id:   uuid.NewString(),
		ctrl: quiz.NewController(),
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	s.lastSeen = ss.now()
	ss.byID[s.id] = s
	return s
}

// sweep removes every expired session and reports how many were dropped.
func (ss *sessions) sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := ss.now()
	n := 0
	for id, s := range ss.byID {
		if ss.expired(s, now) {
			ss.drop(id)
			n++
		}
	}
	return n
}

func (ss *sessions) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.byID)
}

func (ss *sessions) expired(s *session, now time.Time) bool {
	return ss.ttl > 0 && now.Sub(s.lastSeen) > ss.ttl
}

// drop forgets a session and cancels its pending request. Callers hold ss.mu.
func (ss *sessions) drop(id string) {
	s := ss.byID[id]
	delete(ss.byID, id)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
}
