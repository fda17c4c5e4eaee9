package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
	"github.com/jiwoo-han/testcase-gen/internal/export"
	"github.com/jiwoo-han/testcase-gen/internal/extract"
	"github.com/jiwoo-han/testcase-gen/internal/pipeline"
)

type stubExtractor struct{ text string }

func (s *stubExtractor) Extract(_ context.Context, _ entity.Upload) (extract.Result, error) {
	return extract.Result{Text: s.text, SourceType: "PDF", Method: "pdf-text"}, nil
}

type stubGenerator struct{ doc entity.TestDocument }

func (s *stubGenerator) Generate(_ context.Context, _ string) (entity.TestDocument, error) {
	return s.doc, nil
}

func testDoc() entity.TestDocument {
	return entity.TestDocument{TestItems: []entity.TestItem{
		{Number: "TC-01", Category: "상점", SubCategory: "구매", Content: "구매 버튼 탭", Result: "아이템 지급"},
	}}
}

func newTestEcho(t *testing.T) (*echo.Echo, *pipeline.Processor) {
	t.Helper()
	proc := pipeline.NewProcessor(
		&stubExtractor{text: "a sufficiently long planning document text"},
		&stubGenerator{doc: testDoc()},
		export.NewService(nil),
		nil,
	)
	proc.RetryDelay = time.Millisecond

	e := echo.New()
	NewServer(proc, nil).Register(e)
	return e, proc
}

func multipartUpload(t *testing.T, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestUploadWithoutFileIsBadRequest(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	e, _ := newTestEcho(t)
	req, rec := multipartUpload(t, "plan.xlsx", []byte("data"))

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "unsupported")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	e, proc := newTestEcho(t)
	proc.MaxBytes = 8
	req, rec := multipartUpload(t, "plan.pdf", bytes.Repeat([]byte("x"), 64))

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "too large")
}

func TestUploadReturnsGeneratedItems(t *testing.T) {
	e, _ := newTestEcho(t)
	req, rec := multipartUpload(t, "기획서.pdf", []byte("%PDF pretend"))

	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.TestItems, 1)
	assert.Equal(t, "TC-01", resp.TestItems[0].Number)
	assert.Equal(t, "기획서.pdf", resp.FileName)
	assert.Equal(t, 1, resp.ItemCount)
}

func TestGenerateRequiresTestItemsArray(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"fileName": "plan.pdf"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "testItems")
}

func TestGenerateReturnsWorkbookWithSuggestedFilename(t *testing.T) {
	e, _ := newTestEcho(t)
	payload, err := json.Marshal(exportRequest{TestItems: testDoc().TestItems, FileName: "plan.pdf"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, constants.XLSXContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="plan_testcases.xlsx"`,
		rec.Header().Get(echo.HeaderContentDisposition))
	assert.Greater(t, rec.Body.Len(), 100)
}

func TestGenerateEmptyItemsStillProducesWorkbook(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"testItems": []}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Greater(t, rec.Body.Len(), 100, "empty input falls back to the sample sheet")
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "plan_testcases.xlsx", exportFilename("plan.pdf"))
	assert.Equal(t, "기획서_testcases.xlsx", exportFilename("기획서.docx"))
	assert.Equal(t, "testcases.xlsx", exportFilename(""))
}
