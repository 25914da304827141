// File path: internal/extract/pdf_processor_test.go
package extract

import (
	"bytes"
	"context"
	"fmt"
	"testing"
)

// buildSinglePagePDF assembles a minimal uncompressed one-page document
// carrying the given text, with a valid cross-reference table.
func buildSinglePagePDF(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var offsets []int
	addObject := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	buf.WriteString("%PDF-1.4\n")
	addObject("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObject("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	addObject("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	addObject("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	addObject(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		len(stream), stream))

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)
	return buf.Bytes()
}

func TestProcessBytesPDFDocument(t *testing.T) {
	data := buildSinglePagePDF(t, "The gateway shall retry failed calls once.")
	bundle, err := ProcessBytes(context.Background(), "reqs.pdf", data)
	if err != nil {
		t.Fatalf("ProcessBytes returned error: %v", err)
	}
	if bundle.DocumentType != DocumentPDF {
		t.Errorf("document type = %q", bundle.DocumentType)
	}
	if bundle.RawText != "The gateway shall retry failed calls once." {
		t.Errorf("raw text = %q", bundle.RawText)
	}
	if len(bundle.Requirements) != 1 || bundle.Requirements[0].Text != bundle.RawText {
		t.Fatalf("requirements = %+v", bundle.Requirements)
	}
}

func TestProcessBytesPDFInvalid(t *testing.T) {
	if _, err := ProcessBytes(context.Background(), "broken.pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}
