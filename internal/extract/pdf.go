package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractPDF pulls plain text out of a PDF. pdfcpu validates the bytes and
// reports the page count first, so junk renamed to .pdf fails with a clear
// cause instead of a reader panic deep in text extraction.
func extractPDF(b []byte) (string, int, error) {
	pages, err := pdfapi.PageCount(bytes.NewReader(b), nil)
	if err != nil {
		return "", 0, fmt.Errorf("pdf preflight: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", pages, fmt.Errorf("pdf open: %w", err)
	}
	txt, err := r.GetPlainText()
	if err != nil {
		return "", pages, fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(txt); err != nil {
		return "", pages, fmt.Errorf("pdf read: %w", err)
	}
	return buf.String(), pages, nil
}
