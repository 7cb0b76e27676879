package tagging

import (
	"context"
	"errors"
	"iter"
)

// Service is the session surface of the remote tagging pipeline. A run is
// started once, observed as a stream of stage events, and its result is read
// back as a session document snapshot.
type Service interface {
	Start(ctx context.Context, input StartRequest) (*RunResult, error)
	StartStream(ctx context.Context, input StartRequest) iter.Seq2[*StageEvent, error]

	Get(ctx context.Context, sessionID string) (*SessionDocument, error)

	ApplyFixes(ctx context.Context, sessionID string, fixes Fixes) error
	Finalize(ctx context.Context, sessionID string) (string, error)
}

var (
	ErrNotFound = errors.New("session not found")
)

type StartRequest struct {
	PDFURL   string   `json:"pdf_url"`
	PageRefs []string `json:"page_refs,omitempty"`
}

type RunResult struct {
	SessionID string `json:"session_id"`

	NeedsHumanReview bool     `json:"needs_human_review"`
	ValidationFlags  []string `json:"validation_flags,omitempty"`

	PersistedPageID string `json:"persisted_page_id,omitempty"`
}

// StageEvent is one notification from a streamed run. Exactly one of Stage or
// Result is set: Stage for a completed pipeline stage, Result for the terminal
// success record. Pipeline and transport failures surface as the error side of
// the event sequence.
type StageEvent struct {
	Stage Stage `json:"stage,omitempty"`

	Result *RunResult `json:"result,omitempty"`
}

type Fixes struct {
	BlockAssignments map[string]string `json:"block_assignments,omitempty"`
	CutOverrides     []CutOverride     `json:"cut_overrides,omitempty"`
}

type CutOverride struct {
	StreamID string `json:"stream_id"`
	SegRef   string `json:"seg_ref"`

	EndCutX int `json:"end_cut_x"`
}
