package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/tzuratlink/pagelink/pkg/tagging"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	input, err := parseStartRequest(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc := h.createSession(input)

	writeJson(w, tagging.RunResult{
		SessionID: doc.SessionID,

		NeedsHumanReview: doc.NeedsHumanReview,
		ValidationFlags:  doc.ValidationFlags,

		PersistedPageID: doc.PersistedPageID,
	})
}

func (h *Handler) handleStartStream(w http.ResponseWriter, r *http.Request) {
	input, err := parseStartRequest(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)

	for _, stage := range h.stages {
		if h.delay > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(h.delay):
			}
		}

		writeEvent(w, flusher, map[string]any{
			"stage":  stage,
			"status": "done",
		})
	}

	doc := h.createSession(input)

	writeEvent(w, flusher, map[string]any{
		"session_id": doc.SessionID,

		"needs_human_review": doc.NeedsHumanReview,
		"validation_flags":   doc.ValidationFlags,
		"persisted_page_id":  doc.PersistedPageID,

		"status": "complete",
	})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, ok := h.sessions[chi.URLParam(r, "session")]

	if !ok {
		writeError(w, http.StatusNotFound, errors.New("not_found"))
		return
	}

	writeJson(w, doc)
}

func (h *Handler) handleApplyFixes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, ok := h.sessions[chi.URLParam(r, "session")]

	if !ok {
		writeError(w, http.StatusNotFound, errors.New("not_found"))
		return
	}

	var fixes tagging.Fixes

	if err := json.NewDecoder(r.Body).Decode(&fixes); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	for blockID, streamID := range fixes.BlockAssignments {
		block, ok := doc.Blocks[blockID]

		if !ok {
			continue
		}

		block.AssignedStreamID = streamID
		doc.Blocks[blockID] = block
	}

	for _, override := range fixes.CutOverrides {
		for i, span := range doc.SegmentSpans {
			if span.StreamID != override.StreamID || span.SegRef != override.SegRef {
				continue
			}

			cut := override.EndCutX
			span.EndCutX = &cut

			if !slices.Contains(span.Flags, "cut_ok") {
				span.Flags = append(span.Flags, "cut_ok")
			}

			doc.SegmentSpans[i] = span
		}
	}

	doc.NeedsHumanReview = false
	doc.ValidationFlags = nil

	writeJson(w, map[string]any{"ok": true})
}

func parseStartRequest(r *http.Request) (*tagging.StartRequest, error) {
	var input tagging.StartRequest

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.PDFURL) == "" {
		return nil, errors.New("pdf_url is required and must be a non-empty string")
	}

	if len(input.PageRefs) > 0 && strings.TrimSpace(input.PageRefs[0]) == "" {
		return nil, errors.New("page_refs[0] must be a non-empty string")
	}

	return &input, nil
}

func (h *Handler) createSession(input *tagging.StartRequest) *tagging.SessionDocument {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc := h.fixture

	doc.SessionID = strings.ReplaceAll(uuid.NewString(), "-", "")
	doc.PDFURL = input.PDFURL

	if len(input.PageRefs) > 0 {
		doc.BaseRefRange = strings.TrimSpace(input.PageRefs[0])
	}

	doc.Blocks = maps.Clone(doc.Blocks)
	doc.Lines = maps.Clone(doc.Lines)
	doc.Streams = maps.Clone(doc.Streams)
	doc.SegmentSpans = slices.Clone(doc.SegmentSpans)
	doc.ValidationFlags = slices.Clone(doc.ValidationFlags)

	h.sessions[doc.SessionID] = &doc

	return &doc
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, v any) {
	data, err := json.Marshal(v)

	if err != nil {
		return
	}

	fmt.Fprintf(w, "data: %s\n\n", data)

	if flusher != nil {
		flusher.Flush()
	}
}
