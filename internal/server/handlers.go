package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/nckh/internal/assist"
	"github.com/abhisek/nckh/internal/course"
	"github.com/abhisek/nckh/internal/quiz"
)

type quizRequest struct {
	ChapterID string `json:"chapterId"`
}

type quizResponse struct {
	Data []quiz.Question `json:"data"`
}

type proposalRequest struct {
	Step    string                 `json:"step"`
	Context assist.ProposalContext `json:"context"`
}

type graderRequest struct {
	Section string `json:"section"`
	Text    string `json:"text"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type chapterResponse struct {
	course.Chapter
	Module      string `json:"module"`
	ContentID   string `json:"content_id"`
	DownloadURL string `json:"download_url"`
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decode(w, r, &req) {
		return
	}
	qs, err := s.quiz.Generate(r.Context(), req.ChapterID)
	if errors.Is(err, assist.ErrNoQuestions) {
		// An empty quiz is not an error on the wire; the client reports it.
		writeJSON(w, http.StatusOK, quizResponse{Data: []quiz.Question{}})
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Data: qs})
}

func (s *Server) handleProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if !decode(w, r, &req) {
		return
	}
	s.answer(w, r)(s.tools.Suggest(r.Context(), req.Step, req.Context))
}

func (s *Server) handleAdvisor(w http.ResponseWriter, r *http.Request) {
	var req assist.AdvisorInput
	if !decode(w, r, &req) {
		return
	}
	s.answer(w, r)(s.tools.Recommend(r.Context(), req))
}

func (s *Server) handleGrader(w http.ResponseWriter, r *http.Request) {
	var req graderRequest
	if !decode(w, r, &req) {
		return
	}
	s.answer(w, r)(s.tools.Review(r.Context(), req.Section, req.Text))
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	s.answer(w, r)(s.tools.Scenario(r.Context()))
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !decode(w, r, &req) {
		return
	}
	s.answer(w, r)(s.tools.Ask(r.Context(), req.Query))
}

func (s *Server) handleEthics(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !decode(w, r, &req) {
		return
	}
	s.answer(w, r)(s.tools.Ethics(r.Context(), req.Query))
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"modules": course.Modules()})
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ch, err := course.Lookup(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	m, _ := course.ModuleOf(id)
	writeJSON(w, http.StatusOK, chapterResponse{
		Chapter:     ch,
		Module:      m.Key,
		ContentID:   course.ContentID(id),
		DownloadURL: course.DownloadURL(id),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// answer writes a text tool result or its error.
func (s *Server) answer(w http.ResponseWriter, r *http.Request) func(*assist.Answer, error) {
	return func(a *assist.Answer, err error) {
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("tool request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
		)
	}
	writeError(w, status, assist.Explain(err))
}

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid JSON body")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
