// Package controller owns the client-side state of one tagging session: run
// progress, the current document snapshot, derived overlays and the selected
// reference.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/tzuratlink/pagelink/pkg/overlay"
	"github.com/tzuratlink/pagelink/pkg/progress"
	"github.com/tzuratlink/pagelink/pkg/tagging"
)

var (
	ErrNoSession = errors.New("no active session")
)

// Controller drives one run at a time; starting a new run discards the
// previous one. It is meant for a single consumer and is not safe for
// concurrent use.
type Controller struct {
	sessions tagging.Service
	tracker  *progress.Tracker

	sessionID string

	document *tagging.SessionDocument
	overlays map[string]overlay.Overlay

	selected string
}

func New(sessions tagging.Service, stages []tagging.Stage) *Controller {
	return &Controller{
		sessions: sessions,
		tracker:  progress.NewTracker(stages),
	}
}

// Run starts a streamed pipeline run and follows it to its terminal event,
// advancing the tracker per completed stage. On success the session document
// is fetched and overlays are rebuilt. On failure all progress is discarded;
// a previously loaded document stays in place.
func (c *Controller) Run(ctx context.Context, input tagging.StartRequest) error {
	c.tracker.Start()

	var result *tagging.RunResult

	for event, err := range c.sessions.StartStream(ctx, input) {
		if err != nil {
			c.tracker.Fail()
			return err
		}

		if event.Result != nil {
			result = event.Result
			break
		}

		c.tracker.Observe(event.Stage)
	}

	if result == nil {
		c.tracker.Fail()
		return errors.New("stream ended without a result")
	}

	c.tracker.Complete()
	c.sessionID = result.SessionID

	return c.Refresh(ctx)
}

// Refresh re-fetches the session document and rebuilds overlays. On error
// the previous snapshot stays in place.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.sessionID == "" {
		return ErrNoSession
	}

	doc, err := c.sessions.Get(ctx, c.sessionID)

	if err != nil {
		slog.Debug("session refresh failed, keeping previous document", "session", c.sessionID, "error", err)
		return err
	}

	c.document = doc
	c.overlays = overlay.Reconstruct(doc)

	if _, ok := c.overlays[c.selected]; !ok {
		c.selected = ""
	}

	return nil
}

func (c *Controller) ApplyFixes(ctx context.Context, fixes tagging.Fixes) error {
	if c.sessionID == "" {
		return ErrNoSession
	}

	if err := c.sessions.ApplyFixes(ctx, c.sessionID, fixes); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

func (c *Controller) Finalize(ctx context.Context) (string, error) {
	if c.sessionID == "" {
		return "", ErrNoSession
	}

	pageID, err := c.sessions.Finalize(ctx, c.sessionID)

	if err != nil {
		return "", err
	}

	if err := c.Refresh(ctx); err != nil {
		return pageID, err
	}

	return pageID, nil
}

func (c *Controller) SessionID() string {
	return c.sessionID
}

func (c *Controller) Document() *tagging.SessionDocument {
	return c.document
}

func (c *Controller) Progress() *progress.Tracker {
	return c.tracker
}

func (c *Controller) Overlay(ref string) (overlay.Overlay, bool) {
	entry, ok := c.overlays[ref]
	return entry, ok
}

// Refs returns the overlay reference keys in sorted order.
func (c *Controller) Refs() []string {
	return slices.Sorted(maps.Keys(c.overlays))
}

// Select marks a reference as highlighted. Selecting an unknown reference
// clears the selection.
func (c *Controller) Select(ref string) {
	if _, ok := c.overlays[ref]; !ok {
		ref = ""
	}

	c.selected = ref
}

func (c *Controller) Selected() string {
	return c.selected
}
