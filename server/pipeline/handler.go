// Package pipeline is an in-memory stub of the remote tagging pipeline API,
// used for UI development and end-to-end tests of the client layer.
package pipeline

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/tzuratlink/pagelink/pkg/tagging"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	mu sync.Mutex

	stages  []tagging.Stage
	fixture tagging.SessionDocument

	delay time.Duration

	sessions map[string]*tagging.SessionDocument
	pages    map[string]tagging.Page
}

type Option func(*Handler)

func WithStages(stages []tagging.Stage) Option {
	return func(h *Handler) {
		h.stages = stages
	}
}

// WithFixture sets the session document every run produces.
func WithFixture(doc tagging.SessionDocument) Option {
	return func(h *Handler) {
		h.fixture = doc
	}
}

// WithDelay sets the pause between streamed stage events.
func WithDelay(delay time.Duration) Option {
	return func(h *Handler) {
		h.delay = delay
	}
}

func New(options ...Option) *Handler {
	h := &Handler{
		stages:  tagging.Stages(),
		fixture: Fixture(),

		sessions: map[string]*tagging.SessionDocument{},
		pages:    map[string]tagging.Page{},
	}

	for _, option := range options {
		option(h)
	}

	return h
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/api/sessions/start", h.handleStart)
	r.Post("/api/sessions/start/stream", h.handleStartStream)

	r.Get("/api/sessions/{session}", h.handleSession)
	r.Post("/api/sessions/{session}/apply_fixes", h.handleApplyFixes)
	r.Post("/api/sessions/{session}/finalize", h.handleFinalize)

	r.Get("/api/pages/{page}", h.handlePage)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(map[string]string{"error": text})
}
