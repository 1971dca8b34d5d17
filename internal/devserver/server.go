// Package devserver is an in-memory stand-in for the assessment handlers,
// used for local development and tests.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/gravitrone/ora-response/cli/internal/api"
)

// DefaultPrompt is the question served when none is configured.
const DefaultPrompt = "Describe a sorting algorithm you know and explain when you would choose it."

var responseTemplate = template.Must(template.New("response").Parse(`<div class="step--response{{if .Submitted}} is--complete{{end}}">
<h3 class="step__title">Your Response</h3>
<div class="submission__answer__prompt">{{.Prompt}}</div>
{{- if .Submitted}}
<div class="submission__answer__display">{{.Text}}</div>
<span class="submission__status">Your response has been submitted.</span>
{{- else}}
<textarea class="submission__answer__value" name="submission">
{{.Text}}</textarea>
{{- if .Saved}}
<span class="submission__status">This response has been saved but not submitted.</span>
{{- end}}
{{- end}}
</div>`))

// Server serves render_response, save_submission, submit and workflow_info.
type Server struct {
	mu             sync.Mutex
	prompt         string
	draft          string
	saved          bool
	submitted      bool
	submissionUUID string
	attempts       int

	router     chi.Router
	httpServer *http.Server
	closed     bool
}

// New creates a server with an empty draft.
func New(prompt string) *Server {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}
	s := &Server{prompt: prompt}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/handler", func(r chi.Router) {
		r.Get("/render_{view}", s.handleRender)
		r.Post("/save_submission", s.handleSave)
		r.Post("/submit", s.handleSubmit)
		r.Get("/workflow_info", s.handleWorkflowInfo)
	})
	s.router = r
	return s
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and blocks until the server is stopped. A clean
// Shutdown returns nil.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.router}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ln.Close()
	}
	s.httpServer = srv
	s.mu.Unlock()

	slog.Info("dev submission service listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Draft returns the persisted draft.
func (s *Server) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Submitted reports whether a final submission exists.
func (s *Server) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if view != "response" {
		writeError(w, http.StatusNotFound, "ENOVIEW", fmt.Sprintf("unknown view %q", view))
		return
	}

	s.mu.Lock()
	data := struct {
		Prompt    string
		Text      string
		Saved     bool
		Submitted bool
	}{s.prompt, s.draft, s.saved, s.submitted}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := responseTemplate.Execute(w, data); err != nil {
		slog.Error("render response", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var in api.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "EBADFORM", "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		writeError(w, http.StatusConflict, "ESUBMITTED", "This response has already been submitted.")
		return
	}
	s.draft = in.Submission
	s.saved = true
	slog.Debug("draft saved", "chars", len(in.Submission), "request_id", middleware.GetReqID(r.Context()))
	writeData(w, api.SaveResult{Saved: true})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in api.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "EBADFORM", "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		writeError(w, http.StatusConflict, api.CodeDuplicateSubmission, "You've already submitted a response for this assignment.")
		return
	}
	if strings.TrimSpace(in.Submission) == "" {
		writeError(w, http.StatusBadRequest, "EBADFORM", "A response cannot be empty.")
		return
	}
	s.attempts++
	s.draft = in.Submission
	s.submitted = true
	s.submissionUUID = uuid.NewString()
	slog.Info("response submitted", "submission_uuid", s.submissionUUID, "request_id", middleware.GetReqID(r.Context()))
	writeData(w, api.SubmitResult{SubmissionUUID: s.submissionUUID, AttemptNumber: s.attempts})
}

func (s *Server) handleWorkflowInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := api.WorkflowInfo{
		Steps: []api.WorkflowStep{
			{Name: "peer"},
			{Name: "self"},
		},
	}
	if s.submitted {
		info.Status = api.WorkflowPeer
		info.SubmissionUUID = s.submissionUUID
	}
	writeData(w, info)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
