package tagging

type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Line struct {
	LineID  string `json:"line_id"`
	BlockID string `json:"block_id,omitempty"`

	BBox      BBox    `json:"bbox"`
	OrderHint float64 `json:"order_hint"`

	Text      string `json:"tess_text_weak,omitempty"`
	IsSpanEnd bool   `json:"is_span_end,omitempty"`
}

type Block struct {
	BlockID string `json:"block_id"`

	BBox    BBox     `json:"bbox"`
	LineIDs []string `json:"line_ids,omitempty"`

	Font             string `json:"font,omitempty"`
	AssignedStreamID string `json:"assigned_stream_id,omitempty"`
}

// Stream is one external commentary source. SegRefs and SegTexts are parallel
// sequences: index i of one corresponds to index i of the other.
type Stream struct {
	StreamID string `json:"stream_id"`
	Title    string `json:"title,omitempty"`
	Lang     string `json:"lang,omitempty"`

	SegRefs  []string `json:"seg_refs"`
	SegTexts []string `json:"seg_texts"`
}

// SegmentSpan maps one text segment onto a contiguous run of page lines.
// EndCutX, when set, truncates the span's visual extent on its last line.
type SegmentSpan struct {
	StreamID string `json:"stream_id,omitempty"`
	SegRef   string `json:"seg_ref"`

	StartLineID string `json:"start_line_id"`
	EndLineID   string `json:"end_line_id"`

	EndCutX *int `json:"end_cut_x,omitempty"`

	Score float64  `json:"score,omitempty"`
	Flags []string `json:"flags,omitempty"`
}

// SessionDocument is an immutable-per-fetch snapshot of a pipeline run. It is
// replaced wholesale on every re-fetch.
type SessionDocument struct {
	SessionID string `json:"_id,omitempty"`

	PDFURL       string `json:"pdf_url,omitempty"`
	PageIndex    int    `json:"page_index,omitempty"`
	BaseRefRange string `json:"base_ref_range,omitempty"`

	PageImageW int    `json:"page_image_w"`
	PageImageH int    `json:"page_image_h"`
	Base64Data string `json:"base64_data,omitempty"`

	Blocks map[string]Block `json:"blocks,omitempty"`
	Lines  map[string]Line  `json:"lines,omitempty"`

	Streams map[string]Stream `json:"streams,omitempty"`

	SegmentSpans []SegmentSpan `json:"segment_spans,omitempty"`

	NeedsHumanReview bool     `json:"needs_human_review"`
	ValidationFlags  []string `json:"validation_flags,omitempty"`

	PersistedPageID string `json:"persisted_page_id,omitempty"`
}
