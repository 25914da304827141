// File path: internal/extract/processor.go
package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/common/telemetry"
	"github.com/nexaqa/testforge/internal/extract/reader"
)

// A Word extraction shorter than this is treated as low confidence and the
// paragraph+table path is consulted as well. Kept at 100 characters for
// behavioral compatibility with the reporting layers downstream.
const wordFallbackThreshold = 100

// ProcessDocument reads the file at path and extracts a requirements
// bundle from it. The extension is inspected before any file content is
// read; an unsupported extension fails fast.
func ProcessDocument(ctx context.Context, path string) (*Bundle, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtension(ext) {
		return nil, &UnsupportedFormatError{Ext: ext}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ProcessBytes(ctx, filepath.Base(path), data)
}

// ProcessBytes extracts a requirements bundle from raw file bytes,
// dispatching on the filename's extension.
func ProcessBytes(ctx context.Context, filename string, data []byte) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, finish := telemetry.StartSpan(ctx, "extract.process")
	var (
		bundle *Bundle
		err    error
	)
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx", ".doc":
		bundle, err = processWord(data)
	case ".xlsx", ".xls":
		bundle, err = processExcel(data)
	case ".pdf":
		bundle, err = processPDF(data)
	case ".txt", ".md", ".json":
		bundle = ProcessRawInput(string(data))
	default:
		err = &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		telemetry.RecordExtractionFailure()
		finish("error", err)
		return nil, err
	}
	telemetry.RecordExtraction(string(bundle.DocumentType), telemetry.SpanDuration(ctx))
	finish("type", bundle.DocumentType)
	return bundle, nil
}

// ProcessRawInput runs the pattern extractor over plain text, skipping the
// format readers entirely. The same text always yields the same bundle.
func ProcessRawInput(text string) *Bundle {
	bundle := &Bundle{
		DocumentType: DocumentText,
		RawText:      text,
		Requirements: ExtractRequirements(text),
	}
	bundle.UserStories = ExtractUserStories(text)
	bundle.AcceptanceCriteria = ExtractAcceptanceCriteria(text)
	return bundle
}

func processWord(data []byte) (*Bundle, error) {
	logger := common.Logger()
	doc, err := reader.ReadWord(data)
	if err != nil {
		logger.Error("extract: word read failed", "error", err)
		return nil, err
	}
	text := doc.Text
	var tables [][][]string
	if len(text) < wordFallbackThreshold {
		logger.Warn("extract: short word extraction, using paragraph+table path", "chars", len(text))
		text = doc.ParagraphText()
		tables = doc.Tables
	}
	bundle := ProcessRawInput(text)
	bundle.DocumentType = DocumentWord
	for _, table := range tables {
		if !IsRequirementsTable(table) {
			continue
		}
		bundle.Requirements = append(bundle.Requirements, MapTableRows(table)...)
	}
	return bundle, nil
}

func processExcel(data []byte) (*Bundle, error) {
	sheets, err := reader.ReadExcel(data)
	if err != nil {
		common.Logger().Error("extract: excel read failed", "error", err)
		return nil, err
	}
	bundle := &Bundle{
		DocumentType: DocumentExcel,
		Requirements: []Requirement{},
		Sheets:       make(map[string]*Sheet, len(sheets)),
	}
	for _, sheet := range sheets {
		extracted := &Sheet{Name: sheet.Name}
		if len(sheet.Rows) > 0 {
			headers := sheet.Rows[0]
			rows := sheet.Rows[1:]
			if IsRequirementsSheet(headers, rows) {
				extracted.Requirements = MapSheetRows(headers, rows)
			} else {
				extracted.Rows = MapGenericRows(headers, rows)
			}
		}
		bundle.Sheets[sheet.Name] = extracted
	}
	return bundle, nil
}

func processPDF(data []byte) (*Bundle, error) {
	text, err := reader.ReadPDF(data)
	if err != nil {
		common.Logger().Error("extract: pdf read failed", "error", err)
		return nil, err
	}
	bundle := ProcessRawInput(text)
	bundle.DocumentType = DocumentPDF
	return bundle, nil
}

func supportedExtension(ext string) bool {
	switch ext {
	case ".docx", ".doc", ".xlsx", ".xls", ".pdf", ".txt", ".md", ".json":
		return true
	}
	return false
}
