package tagging

import (
	"strings"
	"time"
)

// Page is the persisted page schema: the page raster plus one normalized
// bounding box per line per segment, each tagged with its segment ref.
type Page struct {
	ID string `json:"id,omitempty"`

	Ref       string `json:"ref"`
	SourcePDF string `json:"source_pdf,omitempty"`

	Base64Data string `json:"base64_data,omitempty"`

	BBoxes []PageBox `json:"bboxes"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// PageBox is a normalized box in [0, 1] fractions of the page image.
type PageBox struct {
	Ref string `json:"ref"`

	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageRef derives the page-level ref from a base ref range,
// e.g. "Berakhot 2a:1-6" -> "Berakhot 2a".
func PageRef(baseRefRange string) string {
	if baseRefRange == "" {
		return "Unknown"
	}

	if ref, _, ok := strings.Cut(baseRefRange, ":"); ok {
		return strings.TrimSpace(ref)
	}

	return strings.TrimSpace(baseRefRange)
}
