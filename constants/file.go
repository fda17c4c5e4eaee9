package constants

import "strings"

// AllowedExtensions holds the file extensions accepted at the upload boundary.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
}

// MaxUploadBytes caps uploaded planning documents at 10 MiB.
const MaxUploadBytes int64 = 10 * 1024 * 1024

// MinTextChars is the minimum normalized text length worth sending to the model.
const MinTextChars = 10

// XLSXContentType is the content type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedExt checks if a file extension is in the allowed set (pdf/docx/doc).
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
