package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/common"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
	"github.com/jiwoo-han/testcase-gen/internal/extract"
)

// CaseGenerator is Stage 2 as the processor sees it.
type CaseGenerator interface {
	Generate(ctx context.Context, documentText string) (entity.TestDocument, error)
}

// Exporter is Stage 3 as the processor sees it.
type Exporter interface {
	Export(ctx context.Context, doc entity.TestDocument) ([]byte, error)
}

// Processor sequences extract -> generate on an upload and export on a second
// request. The stages are strictly sequential; the only suspension point is
// the fixed delay before re-invoking a failed generation call.
type Processor struct {
	Extractor extract.TextExtractor
	Generator CaseGenerator
	Exporter  Exporter
	Logger    *slog.Logger

	// MaxRetries automatic retries after a failed generation call, with a
	// fixed RetryDelay before each. Transport failures only; a degraded
	// parse is a success as far as retrying is concerned.
	MaxRetries   int
	RetryDelay   time.Duration
	MaxBytes     int64
	MinTextChars int
}

// UploadResult is the terminal state of one upload request.
type UploadResult struct {
	Document  entity.TestDocument
	ItemCount int
	// RetryCount is the retry counter after the request settles. It is
	// carried through the retry loop as a value and resets to zero on
	// success, so a pending retry can never leak into the next request.
	RetryCount int
}

func NewProcessor(ex extract.TextExtractor, gen CaseGenerator, exp Exporter, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Extractor:    ex,
		Generator:    gen,
		Exporter:     exp,
		Logger:       logger,
		MaxRetries:   2,
		RetryDelay:   time.Second,
		MaxBytes:     constants.MaxUploadBytes,
		MinTextChars: constants.MinTextChars,
	}
}

// ProcessUpload runs the upload half of the flow: boundary checks, text
// extraction, then generation with the bounded retry policy.
func (p *Processor) ProcessUpload(ctx context.Context, up entity.Upload) (UploadResult, error) {
	// Boundary gates first: no expensive work on oversized or mistyped files.
	if int64(len(up.Bytes)) > p.MaxBytes {
		p.logStage(constants.StageUploading, constants.StageError, "filename", up.Filename, "bytes", len(up.Bytes))
		return UploadResult{}, common.NewAppError("SIZE_EXCEEDED",
			fmt.Sprintf("file is too large (max %d MiB)", p.MaxBytes/(1024*1024)),
			common.ErrSizeExceeded)
	}
	if !constants.AllowedExt(filepath.Ext(up.Filename)) {
		p.logStage(constants.StageUploading, constants.StageError, "filename", up.Filename)
		return UploadResult{}, common.NewAppError("UNSUPPORTED_FORMAT",
			"unsupported file format; only PDF, DOCX and DOC files are accepted",
			common.ErrUnsupportedFormat)
	}

	p.logStage(constants.StageUploading, constants.StageExtracting, "filename", up.Filename)
	res, err := p.Extractor.Extract(ctx, up)
	if err != nil {
		return UploadResult{}, err
	}
	if utf8.RuneCountInString(res.Text) < p.MinTextChars {
		p.logStage(constants.StageExtracting, constants.StageError, "chars", utf8.RuneCountInString(res.Text))
		return UploadResult{}, common.NewAppError("EXTRACTION_FAILED",
			"extracted text too short to generate test cases from",
			common.ErrExtractionFailed)
	}

	p.logStage(constants.StageExtracting, constants.StageGenerating, "chars", len(res.Text))
	doc, attempts, err := p.generateWithRetry(ctx, res.Text)
	if err != nil {
		return UploadResult{}, err
	}

	p.logStage(constants.StageGenerating, constants.StageDone, "items", len(doc.TestItems), "attempts", attempts)
	return UploadResult{Document: doc, ItemCount: len(doc.TestItems), RetryCount: 0}, nil
}

// generateWithRetry re-invokes the generation call on transport failure, up to
// MaxRetries times with a fixed delay before each retry. The attempt count is
// a loop value, never shared state, so concurrent requests cannot observe each
// other's counters.
func (p *Processor) generateWithRetry(ctx context.Context, text string) (entity.TestDocument, int, error) {
	for attempt := 0; ; attempt++ {
		doc, err := p.Generator.Generate(ctx, text)
		if err == nil {
			return doc, attempt + 1, nil
		}
		if !errors.Is(err, common.ErrServiceUnavailable) || attempt >= p.MaxRetries {
			p.logStage(constants.StageGenerating, constants.StageError, "attempts", attempt+1, "error", err)
			return entity.TestDocument{}, attempt + 1, err
		}

		p.Logger.Warn("pipeline.generate.retry",
			"retry", attempt+1,
			"max_retries", p.MaxRetries,
			"delay_ms", p.RetryDelay.Milliseconds(),
			"error", err,
		)
		timer := time.NewTimer(p.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return entity.TestDocument{}, attempt + 1, ctx.Err()
		case <-timer.C:
		}
	}
}

// ExportDocument runs the export half of the flow and rejects implausibly
// small artifacts instead of handing them to the caller.
func (p *Processor) ExportDocument(ctx context.Context, doc entity.TestDocument) ([]byte, error) {
	p.logStage(constants.StageIdle, constants.StageExporting, "items", len(doc.TestItems))
	artifact, err := p.Exporter.Export(ctx, doc)
	if err != nil {
		return nil, err
	}
	if len(artifact) < 100 {
		p.logStage(constants.StageExporting, constants.StageError, "bytes", len(artifact))
		return nil, common.NewAppError("EXPORT_ANOMALY",
			fmt.Sprintf("exported artifact is implausibly small (%d bytes)", len(artifact)),
			common.ErrExportAnomaly)
	}
	p.logStage(constants.StageExporting, constants.StageDone, "bytes", len(artifact))
	return artifact, nil
}

func (p *Processor) logStage(from, to constants.Stage, kv ...any) {
	args := append([]any{"from", string(from), "to", string(to)}, kv...)
	p.Logger.Info("pipeline.stage", args...)
}
