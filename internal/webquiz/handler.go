// Package webquiz serves the quiz modal as HTML fragments, one quiz
// controller per browser session.
package webquiz

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/quiz"
	"github.com/abhisek/nckh/internal/store"
	"github.com/abhisek/nckh/internal/view"
)

// CookieName identifies the browser session.
const CookieName = "nckh_quiz"

// Route paths, relative to Config.Prefix.
const (
	pathModal  = ""
	pathStart  = "/start"
	pathSubmit = "/submit"
	pathRetake = "/retake"
	pathClose  = "/close"
)

// Config controls session handling.
type Config struct {
	// Prefix is where the routes are mounted, e.g. "/quiz".
	Prefix string

	// IdleTTL is how long an untouched session is kept.
	IdleTTL time.Duration

	// SweepEvery is the interval of the expired-session sweep.
	SweepEvery time.Duration
}

// DefaultConfig returns the settings used by `nckh serve`.
func DefaultConfig() Config {
	return Config{
		Prefix:     "/quiz",
		IdleTTL:    30 * time.Minute,
		SweepEvery: 5 * time.Minute,
	}
}

// Handler hosts quiz controllers for browsers.
type Handler struct {
	source   quiz.Source
	attempts store.AttemptRepo
	logger   *slog.Logger
	sessions *sessions
	config   Config
}

// New creates a Handler. attempts may be nil, in which case graded quizzes
// are not recorded.
func New(source quiz.Source, attempts store.AttemptRepo, logger *slog.Logger, cfg Config) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		source:   source,
		attempts: attempts,
		logger:   logger,
		sessions: newSessions(cfg.IdleTTL),
		config:   cfg,
	}
}

// Actions returns the endpoints the rendered modal posts to.
func (h *Handler) Actions() view.Actions {
	return view.Actions{
		Submit: h.config.Prefix + pathSubmit,
		Retake: h.config.Prefix + pathRetake,
		Close:  h.config.Prefix + pathClose,
	}
}

// StartAction is the endpoint chapter start buttons post to.
func (h *Handler) StartAction() string {
	return h.config.Prefix + pathStart
}

// Register mounts the quiz routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc(h.config.Prefix+pathModal, h.handleModal).Methods(http.MethodGet)

	sub := r.PathPrefix(h.config.Prefix).Subrouter()
	sub.HandleFunc(pathStart, h.handleStart).Methods(http.MethodPost)
	sub.HandleFunc(pathSubmit, h.handleSubmit).Methods(http.MethodPost)
	sub.HandleFunc(pathRetake, h.handleRetake).Methods(http.MethodPost)
	sub.HandleFunc(pathClose, h.handleClose).Methods(http.MethodPost)
}

// Index serves the chapter list page with the caller's quiz modal.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()

	page := view.ChapterPage(course.Modules(), h.StartAction(), view.Modal(snap, h.Actions()))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderDocument(w, page); err != nil {
		h.logger.Error("render chapter page", "error", err)
	}
}

// Sweep runs the expired-session sweep until ctx is done.
func (h *Handler) Sweep(ctx context.Context) {
	if h.config.SweepEvery <= 0 {
		return
	}
	ticker := time.NewTicker(h.config.SweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := h.sessions.sweep(); n > 0 {
				h.logger.Debug("expired quiz sessions", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// session returns the caller's session, creating one (and its cookie)
// when the request carries none.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session {
	if c, err := r.Cookie(CookieName); err == nil {
		if s, ok := h.sessions.get(c.Value); ok {
			return s
		}
	}
	s := h.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (h *Handler) handleModal(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()
	h.render(w, http.StatusOK, snap)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	chapterID := r.PostFormValue("chapterId")

	s.mu.Lock()
	ticket, err := s.ctrl.Start(chapterID)
	if err != nil {
		snap := s.ctrl.Snapshot()
		s.mu.Unlock()
		h.render(w, http.StatusBadRequest, snap)
		return
	}
	ctx := s.supersede(r.Context())
	s.mu.Unlock()

	h.load(w, s, ctx, ticket)
}

func (h *Handler) handleRetake(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	s.mu.Lock()
	ticket, err := s.ctrl.Retake()
	if err != nil {
		snap := s.ctrl.Snapshot()
		s.mu.Unlock()
		h.render(w, http.StatusConflict, snap)
		return
	}
	ctx := s.supersede(r.Context())
	s.mu.Unlock()

	h.load(w, s, ctx, ticket)
}

// load runs the question request outside the session lock, then hands the
// result to the controller. A superseded ticket is ignored by Resolve.
func (h *Handler) load(w http.ResponseWriter, s *session, ctx context.Context, ticket quiz.Ticket) {
	res := h.source.Load(ctx, ticket.ChapterID)

	s.mu.Lock()
	if s.ctrl.Resolve(ticket, res) {
		s.cancel = nil
	}
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()

	if failed, ok := res.(quiz.LoadFailed); ok && ctx.Err() == nil {
		h.logger.Warn("quiz load failed", "chapter", ticket.ChapterID, "message", failed.Message)
	}
	h.render(w, http.StatusOK, snap)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	res, err := submit(s.ctrl, r)
	snap := s.ctrl.Snapshot()
	chapterID := s.ctrl.ChapterID()
	s.mu.Unlock()

	switch {
	case errors.Is(err, quiz.ErrNotActive):
		h.render(w, http.StatusConflict, snap)
		return
	case err != nil:
		h.render(w, http.StatusBadRequest, snap)
		return
	}

	h.record(r.Context(), s.id, chapterID, res)
	h.render(w, http.StatusOK, snap)
}

// submit applies the posted answers and grades the quiz. Questions with no
// posted value stay unanswered. Callers hold the session lock.
func submit(ctrl *quiz.Controller, r *http.Request) (quiz.Result, error) {
	if ctrl.State() != quiz.StateActive {
		return quiz.Result{}, quiz.ErrNotActive
	}
	for i := range ctrl.Snapshot().Session.Questions {
		v := r.PostForm.Get(view.FieldName(i))
		if v == "" {
			ctrl.Clear(i)
			continue
		}
		choice, err := strconv.Atoi(v)
		if err != nil {
			return quiz.Result{}, err
		}
		if err := ctrl.Select(i, choice); err != nil {
			return quiz.Result{}, err
		}
	}
	return ctrl.Submit()
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	s.ctrl.Close()
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()
	h.render(w, http.StatusOK, snap)
}

func (h *Handler) record(ctx context.Context, sessionID, chapterID string, res quiz.Result) {
	if h.attempts == nil {
		return
	}
	err := h.attempts.AppendAttempt(context.WithoutCancel(ctx), store.AttemptData{
		SessionID: sessionID,
		ChapterID: chapterID,
		Score:     res.Score,
		Total:     res.Total,
		Skipped:   res.Skipped(),
		Source:    "web",
	})
	if err != nil {
		h.logger.Warn("failed to record quiz attempt", "error", err)
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, snap quiz.Snapshot) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Render(w, view.Modal(snap, h.Actions())); err != nil {
		h.logger.Error("render quiz modal", "error", err)
	}
}
