package extract

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// extractDOCX pulls the raw text out of an OOXML word document, one line per
// paragraph or table. Styling and embedded media are ignored.
func extractDOCX(b []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("docx open: %w", err)
	}

	var sb strings.Builder
	for _, it := range doc.Document.Body.Items {
		switch o := it.(type) {
		case *docx.Paragraph:
			sb.WriteString(o.String())
			sb.WriteString("\n")
		case *docx.Table:
			sb.WriteString(o.String())
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
