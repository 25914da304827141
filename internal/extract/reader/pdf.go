// File path: internal/extract/reader/pdf.go
package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadPDF extracts text from a PDF page by page, concatenating pages with a
// blank line between them. Pages yielding no text contribute nothing.
func ReadPDF(data []byte) (string, error) {
	document, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var pages []string
	for i := 1; i <= document.NumPage(); i++ {
		page := document.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
