package constants

// Stage is the canonical name of a pipeline stage for one upload/export pair.
type Stage string

// Stable values (these exact strings appear in logs).
const (
	StageIdle       Stage = "IDLE"
	StageUploading  Stage = "UPLOADING"  // boundary checks, before any work
	StageExtracting Stage = "EXTRACTING" // file bytes -> normalized text
	StageGenerating Stage = "GENERATING" // text -> test items (retryable)
	StageExporting  Stage = "EXPORTING"  // test items -> xlsx bytes
	StageDone       Stage = "DONE"       // terminal
	StageError      Stage = "ERROR"      // terminal failure from any stage
)
