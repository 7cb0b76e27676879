package overlay

import (
	"testing"
	"time"

	"github.com/tzuratlink/pagelink/pkg/tagging"
)

func TestBuildPage(t *testing.T) {
	doc := testDocument()
	doc.PDFURL = "https://example.org/berakhot.pdf"
	doc.Base64Data = "aGVsbG8="

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	page := BuildPage(doc, now)

	if page.Ref != "Berakhot 2a" {
		t.Errorf("expected page ref derived from range, got %q", page.Ref)
	}

	if page.SourcePDF != doc.PDFURL {
		t.Errorf("unexpected source pdf: %q", page.SourcePDF)
	}

	if page.Base64Data != doc.Base64Data {
		t.Error("expected page raster carried over")
	}

	if len(page.BBoxes) != 3 {
		t.Fatalf("expected one flat box per spanned line, got %d", len(page.BBoxes))
	}

	for _, box := range page.BBoxes {
		if box.Ref != "Berakhot 2a:1" {
			t.Errorf("expected every box tagged with its segment ref, got %q", box.Ref)
		}
	}

	if !page.CreatedAt.Equal(now) || !page.UpdatedAt.Equal(now) {
		t.Error("unexpected timestamps")
	}
}

func TestBuildPageDegeneratePage(t *testing.T) {
	doc := testDocument()
	doc.PageImageH = 0

	page := BuildPage(doc, time.Now())

	if len(page.BBoxes) != 0 {
		t.Fatalf("expected no boxes for zero-height page, got %d", len(page.BBoxes))
	}

	if page.BBoxes == nil {
		t.Error("expected empty box list, not nil")
	}
}

func TestPageRef(t *testing.T) {
	cases := map[string]string{
		"Berakhot 2a:1-6": "Berakhot 2a",
		"Berakhot 2a":     "Berakhot 2a",
		"":                "Unknown",
	}

	for in, want := range cases {
		if got := tagging.PageRef(in); got != want {
			t.Errorf("PageRef(%q) = %q, want %q", in, got, want)
		}
	}
}
