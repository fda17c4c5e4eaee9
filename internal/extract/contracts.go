package extract

import (
	"context"
	"time"

	"github.com/jiwoo-han/testcase-gen/internal/entity"
)

// TextExtractor is Stage 1: file bytes -> normalized text.
type TextExtractor interface {
	Extract(ctx context.Context, up entity.Upload) (Result, error)
}

type Result struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "DOCX" | "DOC"
	Method     string // "pdf-text" | "docx-text" | "doc-as-docx"
	Duration   time.Duration
}
