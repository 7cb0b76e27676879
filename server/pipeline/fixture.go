package pipeline

import (
	"github.com/tzuratlink/pagelink/pkg/tagging"
)

// Fixture returns the default session document produced by stub runs: a
// small two-block page with a main text stream and a commentary stream, one
// span of which ends mid-line.
func Fixture() tagging.SessionDocument {
	cut := 430

	return tagging.SessionDocument{
		BaseRefRange: "Berakhot 2a:1-3",

		PageImageW: 2480,
		PageImageH: 3508,

		Blocks: map[string]tagging.Block{
			"b001": {
				BlockID: "b001",
				BBox:    tagging.BBox{X: 620, Y: 400, W: 1240, H: 660},
				LineIDs: []string{"l001", "l002", "l003"},

				Font:             "hebrew",
				AssignedStreamID: "s0",
			},
			"b002": {
				BlockID: "b002",
				BBox:    tagging.BBox{X: 180, Y: 420, W: 380, H: 440},
				LineIDs: []string{"l004", "l005"},

				Font: "rashi",
			},
		},

		Lines: map[string]tagging.Line{
			"l001": {LineID: "l001", BlockID: "b001", BBox: tagging.BBox{X: 620, Y: 400, W: 1240, H: 200}, OrderHint: 0},
			"l002": {LineID: "l002", BlockID: "b001", BBox: tagging.BBox{X: 620, Y: 630, W: 1240, H: 200}, OrderHint: 1},
			"l003": {LineID: "l003", BlockID: "b001", BBox: tagging.BBox{X: 620, Y: 860, W: 1100, H: 200}, OrderHint: 2},
			"l004": {LineID: "l004", BlockID: "b002", BBox: tagging.BBox{X: 180, Y: 420, W: 380, H: 190}, OrderHint: 3},
			"l005": {LineID: "l005", BlockID: "b002", BBox: tagging.BBox{X: 180, Y: 650, W: 380, H: 190}, OrderHint: 4, IsSpanEnd: true},
		},

		Streams: map[string]tagging.Stream{
			"s0": {
				StreamID: "s0",
				Title:    "Berakhot",
				Lang:     "he",

				SegRefs:  []string{"Berakhot 2a:1", "Berakhot 2a:2"},
				SegTexts: []string{"מאימתי קורין את שמע בערבית", "עד סוף האשמורה הראשונה"},
			},
			"s1": {
				StreamID: "s1",
				Title:    "Rashi on Berakhot",
				Lang:     "he",

				SegRefs:  []string{"Rashi on Berakhot 2a:1:1"},
				SegTexts: []string{"מאימתי קורין את שמע בערבין. משעה שהכהנים נכנסין לאכול בתרומתן"},
			},
		},

		SegmentSpans: []tagging.SegmentSpan{
			{StreamID: "s0", SegRef: "Berakhot 2a:1", StartLineID: "l001", EndLineID: "l002", Score: 0.94},
			{StreamID: "s0", SegRef: "Berakhot 2a:2", StartLineID: "l003", EndLineID: "l003", Score: 0.91},
			{StreamID: "s1", SegRef: "Rashi on Berakhot 2a:1:1", StartLineID: "l004", EndLineID: "l005", EndCutX: &cut, Score: 0.88},
		},

		NeedsHumanReview: true,
		ValidationFlags:  []string{"unknown_blocks"},
	}
}
