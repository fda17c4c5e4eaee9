package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/common"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
)

// Generator is Stage 2: normalized document text -> validated TestDocument.
// Backend transport failures surface as errors (retryable by the caller);
// unusable payloads degrade to a clearly-marked sentinel document instead,
// because a degraded sheet downstream beats an error page.
type Generator struct {
	backend TextGenerator
	schema  *jsonschema.Schema
	logger  *slog.Logger
}

func NewGenerator(backend TextGenerator, logger *slog.Logger) (*Generator, error) {
	if backend == nil {
		return nil, common.NewAppError("CONFIG_ERROR", "generation backend is not configured",
			common.ErrServiceUnavailable)
	}
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := CompileSchema(BuildTestDocumentJSONSchema())
	if err != nil {
		return nil, common.WrapError(err, "compile test document schema")
	}
	return &Generator{backend: backend, schema: schema, logger: logger}, nil
}

// Generate prompts the backend and recovers a TestDocument from its response.
func (g *Generator) Generate(ctx context.Context, documentText string) (entity.TestDocument, error) {
	rid := uuid.New().String()
	start := time.Now()

	g.logger.Info("llm.generate.start", "req_id", rid, "text_chars", len(documentText))

	raw, err := g.backend.GenerateText(ctx, BuildPrompt(documentText))
	if err != nil {
		g.logger.Error("llm.generate.backend_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.TestDocument{}, common.NewAppError("SERVICE_UNAVAILABLE",
			"generation backend call failed",
			fmt.Errorf("%w: %v", common.ErrServiceUnavailable, err))
	}

	if doc, method, ok := g.recover(raw); ok {
		g.logger.Info("llm.generate.ok",
			"req_id", rid,
			"method", method,
			"items", len(doc.TestItems),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return doc, nil
	}

	// Soft fallback: the response carried no recoverable structure. Logged
	// loudly so operators can tell "backend returned garbage" apart from
	// "backend is down" (the error return above).
	g.logger.Warn("llm.generate.fallback",
		"req_id", rid,
		"response_head", head(raw, 200),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fallbackDocument(), nil
}

// recover applies the parse attempts in order, first success wins:
// 1. the raw response as-is,
// 2. the first-{ .. last-} slice, sanitized,
// 3. the balanced-brace substring, sanitized.
func (g *Generator) recover(raw string) (entity.TestDocument, string, bool) {
	if doc, ok := g.parseDocument(raw); ok {
		return doc, "direct", true
	}
	if doc, ok := g.parseDocument(SanitizeJSON(raw)); ok {
		return doc, "sanitized", true
	}
	if obj, found := ExtractBalancedObject(raw); found {
		if doc, ok := g.parseDocument(SanitizeJSON(obj)); ok {
			return doc, "brace-scan", true
		}
	}
	return entity.TestDocument{}, "", false
}

// parseDocument accepts a candidate only when testItems is present, is a JSON
// array (a single object does not count), and the whole payload validates
// against the TestDocument schema.
func (g *Generator) parseDocument(s string) (entity.TestDocument, bool) {
	var probe struct {
		TestItems json.RawMessage `json:"testItems"`
	}
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return entity.TestDocument{}, false
	}
	items := strings.TrimSpace(string(probe.TestItems))
	if !strings.HasPrefix(items, "[") {
		return entity.TestDocument{}, false
	}
	if err := ValidateAgainstSchema(g.schema, []byte(s)); err != nil {
		return entity.TestDocument{}, false
	}
	var doc entity.TestDocument
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return entity.TestDocument{}, false
	}
	return doc, true
}

func fallbackDocument() entity.TestDocument {
	return entity.TestDocument{
		TestItems: []entity.TestItem{
			{
				Number:        "TC-01",
				Category:      constants.ParseErrorCategory,
				SubCategory:   "기본 테스트케이스",
				SmallCategory: "",
				Content:       "모델 응답에서 테스트케이스 JSON을 복구하지 못했습니다.",
				Result:        "파싱 오류로 인해 기본 테스트케이스가 생성되었습니다.",
				JiraResult:    constants.VerdictNotTested,
				AdResult:      constants.VerdictNotTested,
				IosResult:     constants.VerdictNotTested,
				PcResult:      constants.VerdictNotTested,
			},
		},
	}
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
