package progress

import (
	"testing"

	"github.com/tzuratlink/pagelink/pkg/tagging"
)

var testOrder = []tagging.Stage{"render_page", "extract_blocks_lines", "fetch_streams", "persist"}

func TestTrackerStart(t *testing.T) {
	tracker := NewTracker(testOrder)

	if tracker.State() != StateIdle {
		t.Fatalf("expected idle before start, got %s", tracker.State())
	}

	tracker.Start()

	if tracker.State() != StateRunning {
		t.Fatalf("expected running after start, got %s", tracker.State())
	}

	if tracker.Current() != "render_page" {
		t.Errorf("expected first stage current, got %q", tracker.Current())
	}

	if len(tracker.Completed()) != 0 {
		t.Errorf("expected no completed stages, got %v", tracker.Completed())
	}
}

func TestTrackerStartEmptyOrder(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Start()

	if tracker.Current() != "" {
		t.Errorf("expected no current stage for empty order, got %q", tracker.Current())
	}
}

func TestTrackerObserve(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()

	tracker.Observe("render_page")

	if !tracker.Done("render_page") {
		t.Error("expected render_page completed")
	}

	if tracker.Current() != "extract_blocks_lines" {
		t.Errorf("expected next stage current, got %q", tracker.Current())
	}
}

func TestTrackerObserveIdempotent(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()

	tracker.Observe("render_page")
	tracker.Observe("render_page")

	if len(tracker.Completed()) != 1 {
		t.Fatalf("expected one completed entry, got %v", tracker.Completed())
	}

	if tracker.Current() != "extract_blocks_lines" {
		t.Errorf("duplicate observe changed current: %q", tracker.Current())
	}
}

func TestTrackerObserveLastStage(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()

	tracker.Observe("persist")

	if tracker.Current() != "" {
		t.Errorf("expected no current stage after last, got %q", tracker.Current())
	}
}

func TestTrackerObserveUnknownStage(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()

	tracker.Observe("pause_for_hitl")

	if !tracker.Done("pause_for_hitl") {
		t.Error("expected unknown stage recorded")
	}

	if tracker.Current() != "" {
		t.Errorf("expected no current stage for unknown stage, got %q", tracker.Current())
	}
}

func TestTrackerComplete(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()
	tracker.Observe("render_page")
	tracker.Observe("extract_blocks_lines")

	tracker.Complete()

	if tracker.State() != StateSucceeded {
		t.Fatalf("expected succeeded, got %s", tracker.State())
	}

	if tracker.Current() != "" {
		t.Errorf("expected no current stage after completion, got %q", tracker.Current())
	}

	if len(tracker.Completed()) != 2 {
		t.Errorf("expected completed history retained, got %v", tracker.Completed())
	}
}

func TestTrackerFailResetsProgress(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()
	tracker.Observe("render_page")
	tracker.Observe("extract_blocks_lines")

	tracker.Fail()

	if tracker.State() != StateFailed {
		t.Fatalf("expected failed, got %s", tracker.State())
	}

	if len(tracker.Completed()) != 0 {
		t.Errorf("expected completed cleared on failure, got %v", tracker.Completed())
	}

	if tracker.Current() != "" {
		t.Errorf("expected no current stage after failure, got %q", tracker.Current())
	}
}

func TestTrackerRestartAfterFailure(t *testing.T) {
	tracker := NewTracker(testOrder)
	tracker.Start()
	tracker.Observe("render_page")
	tracker.Fail()

	tracker.Start()

	if tracker.State() != StateRunning {
		t.Fatalf("expected running after restart, got %s", tracker.State())
	}

	if tracker.Current() != "render_page" {
		t.Errorf("expected first stage current after restart, got %q", tracker.Current())
	}
}
