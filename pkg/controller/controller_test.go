package controller_test

import (
	"net/http/httptest"
	"testing"

	"github.com/tzuratlink/pagelink/pkg/client"
	"github.com/tzuratlink/pagelink/pkg/controller"
	"github.com/tzuratlink/pagelink/pkg/progress"
	"github.com/tzuratlink/pagelink/pkg/tagging"
	"github.com/tzuratlink/pagelink/server"
	"github.com/tzuratlink/pagelink/server/pipeline"

	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*controller.Controller, *client.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(server.Handler(pipeline.New()))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)

	return controller.New(&c.Sessions, tagging.Stages()), c, srv
}

func TestRun(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	err := ctrl.Run(t.Context(), tagging.StartRequest{
		PDFURL:   "https://example.org/berakhot.pdf",
		PageRefs: []string{"Berakhot 2a:1-3"},
	})
	require.NoError(t, err)

	require.Equal(t, progress.StateSucceeded, ctrl.Progress().State())
	require.Len(t, ctrl.Progress().Completed(), len(tagging.Stages()))
	require.Empty(t, ctrl.Progress().Current())

	require.NotEmpty(t, ctrl.SessionID())

	doc := ctrl.Document()
	require.NotNil(t, doc)
	require.Equal(t, "Berakhot 2a:1-3", doc.BaseRefRange)
	require.True(t, doc.NeedsHumanReview)

	require.Equal(t, []string{"Berakhot 2a:1", "Berakhot 2a:2", "Rashi on Berakhot 2a:1:1"}, ctrl.Refs())

	rashi, ok := ctrl.Overlay("Rashi on Berakhot 2a:1:1")
	require.True(t, ok)
	require.Len(t, rashi.Boxes, 2)
	require.NotEmpty(t, rashi.Text)

	main, ok := ctrl.Overlay("Berakhot 2a:1")
	require.True(t, ok)
	require.Len(t, main.Boxes, 2)
}

func TestRunFailureClearsProgress(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	err := ctrl.Run(t.Context(), tagging.StartRequest{})
	require.ErrorContains(t, err, "pdf_url")

	require.Equal(t, progress.StateFailed, ctrl.Progress().State())
	require.Empty(t, ctrl.Progress().Completed())
	require.Empty(t, ctrl.Progress().Current())
}

func TestRefreshKeepsDocumentOnFailure(t *testing.T) {
	ctrl, _, srv := newTestController(t)

	err := ctrl.Run(t.Context(), tagging.StartRequest{PDFURL: "x"})
	require.NoError(t, err)
	require.NotNil(t, ctrl.Document())

	doc := ctrl.Document()

	srv.Close()

	require.Error(t, ctrl.Refresh(t.Context()))
	require.Same(t, doc, ctrl.Document())
}

func TestSelect(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	require.NoError(t, ctrl.Run(t.Context(), tagging.StartRequest{PDFURL: "x"}))

	ctrl.Select("Berakhot 2a:1")
	require.Equal(t, "Berakhot 2a:1", ctrl.Selected())

	ctrl.Select("no such ref")
	require.Empty(t, ctrl.Selected())
}

func TestApplyFixesAndFinalize(t *testing.T) {
	ctrl, c, _ := newTestController(t)

	require.NoError(t, ctrl.Run(t.Context(), tagging.StartRequest{
		PDFURL:   "https://example.org/berakhot.pdf",
		PageRefs: []string{"Berakhot 2a:1-3"},
	}))

	err := ctrl.ApplyFixes(t.Context(), tagging.Fixes{
		BlockAssignments: map[string]string{"b002": "s1"},
		CutOverrides: []tagging.CutOverride{
			{StreamID: "s1", SegRef: "Rashi on Berakhot 2a:1:1", EndCutX: 400},
		},
	})
	require.NoError(t, err)

	doc := ctrl.Document()
	require.False(t, doc.NeedsHumanReview)
	require.Empty(t, doc.ValidationFlags)
	require.Equal(t, "s1", doc.Blocks["b002"].AssignedStreamID)

	pageID, err := ctrl.Finalize(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, pageID)
	require.Equal(t, pageID, ctrl.Document().PersistedPageID)

	page, err := c.Pages.Get(t.Context(), pageID)
	require.NoError(t, err)
	require.Equal(t, "Berakhot 2a", page.Ref)
	require.NotEmpty(t, page.BBoxes)
}

func TestRefreshWithoutSession(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	require.ErrorIs(t, ctrl.Refresh(t.Context()), controller.ErrNoSession)
}
