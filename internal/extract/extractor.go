package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/common"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
)

// Extractor routes an upload to the parser for its declared extension and
// normalizes whatever text comes back. Routing is extension-based, not content
// sniffing: a .pdf that isn't a PDF fails extraction, it is not re-detected.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

func (e *Extractor) Extract(_ context.Context, up entity.Upload) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(up.Filename))

	var (
		text  string
		pages int
		err   error
		res   Result
	)

	switch ext {
	case "pdf":
		text, pages, err = extractPDF(up.Bytes)
		res = Result{Pages: pages, SourceType: "PDF", Method: "pdf-text"}
	case "docx":
		text, err = extractDOCX(up.Bytes)
		res = Result{SourceType: "DOCX", Method: "docx-text"}
	case "doc":
		// Legacy binary DOC has no parser in scope. Many .doc files are OOXML
		// in disguise, so the DOCX path gets a shot before we give up.
		text, err = extractDOCX(up.Bytes)
		res = Result{SourceType: "DOC", Method: "doc-as-docx"}
		if err == nil && text == "" {
			err = fmt.Errorf("no text recovered")
		}
		if err != nil {
			e.logger.Warn("extract.doc.failed", "filename", up.Filename, "error", err)
			return Result{}, common.NewAppError("EXTRACTION_FAILED",
				"failed to parse DOC file; convert it to DOCX and try again",
				fmt.Errorf("%w: %v", common.ErrExtractionFailed, err))
		}
	default:
		return Result{}, common.NewAppError("UNSUPPORTED_FORMAT",
			fmt.Sprintf("unsupported file format: %q (pdf, docx and doc are accepted)", ext),
			common.ErrUnsupportedFormat)
	}

	if err != nil {
		e.logger.Warn("extract.failed", "filename", up.Filename, "ext", ext, "error", err)
		return Result{}, common.NewAppError("EXTRACTION_FAILED",
			fmt.Sprintf("failed to extract text from %s file", res.SourceType),
			fmt.Errorf("%w: %v", common.ErrExtractionFailed, err))
	}

	res.Text = Normalize(text)
	res.Duration = time.Since(start)
	if res.Text == "" {
		return Result{}, common.NewAppError("EXTRACTION_FAILED",
			"document contained no extractable text",
			common.ErrExtractionFailed)
	}

	e.logger.Info("extract.ok",
		"filename", up.Filename,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
