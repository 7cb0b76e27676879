package pipeline

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tzuratlink/pagelink/pkg/overlay"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, ok := h.sessions[chi.URLParam(r, "session")]

	if !ok {
		writeError(w, http.StatusNotFound, errors.New("not_found"))
		return
	}

	page := overlay.BuildPage(doc, time.Now().UTC())
	page.ID = strings.ReplaceAll(uuid.NewString(), "-", "")

	h.pages[page.ID] = page
	doc.PersistedPageID = page.ID

	writeJson(w, map[string]any{
		"ok": true,

		"persisted_page_id": page.ID,
	})
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	page, ok := h.pages[chi.URLParam(r, "page")]

	if !ok {
		writeError(w, http.StatusNotFound, errors.New("not_found"))
		return
	}

	writeJson(w, page)
}
