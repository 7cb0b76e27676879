package tagging

// Stage is one named step of the remote pipeline.
type Stage string

const (
	StageRenderPage           Stage = "render_page"
	StageExtractBlocksLines   Stage = "extract_blocks_lines"
	StageFilterMarginBlocks   Stage = "filter_margin_blocks"
	StageClassifyBlockFont    Stage = "classify_block_font"
	StageSplitRashiLines      Stage = "split_rashi_lines"
	StageRashiTesseract       Stage = "rashi_tesseract"
	StageFillLineText         Stage = "fill_line_text"
	StageFetchStreams         Stage = "fetch_streams"
	StageAssignBlocks         Stage = "assign_blocks"
	StageAlignSegments        Stage = "align_segments"
	StageMatchCommentarySpans Stage = "match_commentary_spans"
	StageBoundaryCuts         Stage = "boundary_cuts"
	StageValidate             Stage = "validate"
	StagePersist              Stage = "persist"
)

// Stages returns the pipeline stage names in execution order. The pipeline
// may end at pause_for_hitl instead of persist when a page needs review; that
// branch is not part of the linear order.
func Stages() []Stage {
	return []Stage{
		StageRenderPage,
		StageExtractBlocksLines,
		StageFilterMarginBlocks,
		StageClassifyBlockFont,
		StageSplitRashiLines,
		StageRashiTesseract,
		StageFillLineText,
		StageFetchStreams,
		StageAssignBlocks,
		StageAlignSegments,
		StageMatchCommentarySpans,
		StageBoundaryCuts,
		StageValidate,
		StagePersist,
	}
}
