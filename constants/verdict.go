package constants

// Platform verdict values. Free text is tolerated in the verdict columns, but
// these three drive the conditional fills in the exported sheet.
const (
	VerdictPass      = "Pass"
	VerdictFail      = "Fail"
	VerdictNotTested = "Not Tested"
)

// ParseErrorCategory marks the single-item fallback document produced when no
// structured payload could be recovered from the model response.
const ParseErrorCategory = "파싱 오류"

// DropdownGlyph is appended to verdict cells so they read like the dropdown
// column of the original QA sheet.
const DropdownGlyph = "▼"
