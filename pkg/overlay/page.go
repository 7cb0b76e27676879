package overlay

import (
	"strings"
	"time"

	"github.com/tzuratlink/pagelink/pkg/tagging"
)

// BuildPage converts a session document to the persisted page schema: the
// page raster plus one flat, ref-tagged box per line per segment.
func BuildPage(doc *tagging.SessionDocument, now time.Time) tagging.Page {
	page := tagging.Page{
		Ref:       tagging.PageRef(doc.BaseRefRange),
		SourcePDF: strings.TrimSpace(doc.PDFURL),

		Base64Data: doc.Base64Data,

		BBoxes: []tagging.PageBox{},

		CreatedAt: now,
		UpdatedAt: now,
	}

	if doc.PageImageW <= 0 || doc.PageImageH <= 0 {
		return page
	}

	ids, index := lineOrder(doc.Lines)

	for _, span := range doc.SegmentSpans {
		boxes, ok := spanBoxes(doc, ids, index, span)

		if !ok {
			continue
		}

		for _, box := range boxes {
			page.BBoxes = append(page.BBoxes, tagging.PageBox{
				Ref: span.SegRef,

				Top:    box.Top,
				Left:   box.Left,
				Width:  box.Width,
				Height: box.Height,
			})
		}
	}

	return page
}
