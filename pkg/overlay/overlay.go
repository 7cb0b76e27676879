// Package overlay reconstructs screen-space bounding boxes for the text
// segments of a session document from its per-line geometry and segment
// span records.
package overlay

import (
	"cmp"
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/tzuratlink/pagelink/pkg/tagging"
)

// Box is a bounding box in fractions of the page image dimensions.
type Box struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Overlay holds the text and boxes of one segment ref.
type Overlay struct {
	Text  string `json:"text,omitempty"`
	Boxes []Box  `json:"boxes"`
}

// Reconstruct derives per-ref overlays from a session document. It is pure
// and total: inconsistent input (unresolvable spans, degenerate boxes) only
// reduces the completeness of the result, and a document without positive
// page dimensions yields an empty one.
func Reconstruct(doc *tagging.SessionDocument) map[string]Overlay {
	result := map[string]Overlay{}

	if doc == nil || doc.PageImageW <= 0 || doc.PageImageH <= 0 {
		return result
	}

	ids, index := lineOrder(doc.Lines)
	texts := segmentTexts(doc.Streams)

	for _, span := range doc.SegmentSpans {
		boxes, ok := spanBoxes(doc, ids, index, span)

		if !ok {
			continue
		}

		entry := result[span.SegRef]
		entry.Text = texts[span.SegRef]
		entry.Boxes = append(entry.Boxes, boxes...)

		result[span.SegRef] = entry
	}

	return result
}

// lineOrder sorts line ids by order hint ascending, line id breaking ties so
// the ordering is stable across fetches of the same document.
func lineOrder(lines map[string]tagging.Line) ([]string, map[string]int) {
	ids := slices.SortedStableFunc(maps.Keys(lines), func(a, b string) int {
		if c := cmp.Compare(lines[a].OrderHint, lines[b].OrderHint); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	index := make(map[string]int, len(ids))

	for i, id := range ids {
		index[id] = i
	}

	return ids, index
}

// segmentTexts merges all streams into one ref-to-text mapping. Streams are
// visited in ascending stream-id order; the last one defining a ref wins.
func segmentTexts(streams map[string]tagging.Stream) map[string]string {
	texts := map[string]string{}

	for _, id := range slices.Sorted(maps.Keys(streams)) {
		stream := streams[id]

		for i, ref := range stream.SegRefs {
			if i >= len(stream.SegTexts) {
				break
			}

			texts[ref] = stream.SegTexts[i]
		}
	}

	return texts
}

func spanBoxes(doc *tagging.SessionDocument, ids []string, index map[string]int, span tagging.SegmentSpan) ([]Box, bool) {
	start, ok := index[span.StartLineID]

	if !ok {
		slog.Debug("skipping span with unresolvable start line", "ref", span.SegRef, "line", span.StartLineID)
		return nil, false
	}

	end, ok := index[span.EndLineID]

	if !ok {
		slog.Debug("skipping span with unresolvable end line", "ref", span.SegRef, "line", span.EndLineID)
		return nil, false
	}

	if start > end {
		slog.Debug("skipping span with inverted line order", "ref", span.SegRef)
		return nil, false
	}

	var boxes []Box

	for _, id := range ids[start : end+1] {
		bbox := doc.Lines[id].BBox

		w := bbox.W
		h := bbox.H

		if id == span.EndLineID && span.EndCutX != nil {
			right := min(bbox.X+w, *span.EndCutX)
			w = max(0, right-bbox.X)
		}

		if w <= 0 || h <= 0 {
			continue
		}

		boxes = append(boxes, Box{
			Top:    round(float64(bbox.Y) / float64(doc.PageImageH)),
			Left:   round(float64(bbox.X) / float64(doc.PageImageW)),
			Width:  round(float64(w) / float64(doc.PageImageW)),
			Height: round(float64(h) / float64(doc.PageImageH)),
		})
	}

	return boxes, true
}

func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
