// File path: internal/extract/processor_test.go
package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestProcessDocumentUnsupportedExtension(t *testing.T) {
	_, err := ProcessDocument(context.Background(), "notes.pptx")
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if unsupported.Ext != ".pptx" {
		t.Errorf("ext = %q", unsupported.Ext)
	}
}

func TestProcessDocumentTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reqs.txt")
	content := "1. The system shall authenticate users.\n\nAs a user I want to reset my password so that I regain access."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	bundle, err := ProcessDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessDocument returned error: %v", err)
	}
	if bundle.DocumentType != DocumentText {
		t.Errorf("document type = %q", bundle.DocumentType)
	}
	if bundle.RawText != content {
		t.Error("raw text not preserved")
	}
	if len(bundle.Requirements) == 0 || len(bundle.UserStories) != 1 {
		t.Errorf("extraction incomplete: %d reqs, %d stories", len(bundle.Requirements), len(bundle.UserStories))
	}
}

func TestProcessRawInputIdempotent(t *testing.T) {
	text := "1. The importer shall validate encodings.\n- Reject files over 50 MB\n\nAcceptance Criteria:\n1. Errors name the offending row"
	first := ProcessRawInput(text)
	second := ProcessRawInput(text)
	if !reflect.DeepEqual(first.Requirements, second.Requirements) {
		t.Error("requirements differ between runs")
	}
	if !reflect.DeepEqual(first.UserStories, second.UserStories) {
		t.Error("user stories differ between runs")
	}
	if !reflect.DeepEqual(first.AcceptanceCriteria, second.AcceptanceCriteria) {
		t.Error("acceptance criteria differ between runs")
	}
}

func TestProcessRawInputEmptyResultIsValid(t *testing.T) {
	bundle := ProcessRawInput("nothing of note in this prose")
	if bundle == nil {
		t.Fatal("expected a bundle")
	}
	if len(bundle.Requirements) != 0 || len(bundle.UserStories) != 0 || len(bundle.AcceptanceCriteria) != 0 {
		t.Errorf("expected empty bundle, got %+v", bundle)
	}
}

func TestProcessBytesExcelWorkbook(t *testing.T) {
	workbook := excelize.NewFile()
	defer workbook.Close()
	if _, err := workbook.NewSheet("Reqs"); err != nil {
		t.Fatalf("create sheet: %v", err)
	}
	rows := [][]interface{}{
		{"Requirement ID", "Description", "Priority"},
		{"REQ-201", "Exports can be scheduled weekly.", "High"},
		{"REQ-202", "Nightly backup shall finish before 6am.", "Low"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := workbook.SetSheetRow("Reqs", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := workbook.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Age"}); err != nil {
		t.Fatalf("set generic row: %v", err)
	}
	if err := workbook.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", "34"}); err != nil {
		t.Fatalf("set generic row: %v", err)
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	bundle, err := ProcessBytes(context.Background(), "plan.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ProcessBytes returned error: %v", err)
	}
	if bundle.DocumentType != DocumentExcel {
		t.Errorf("document type = %q", bundle.DocumentType)
	}
	if bundle.RawText != "" {
		t.Error("excel bundles carry no raw text")
	}
	sheet := bundle.Sheets["Reqs"]
	if sheet == nil || len(sheet.Requirements) != 2 {
		t.Fatalf("Reqs sheet extraction wrong: %+v", sheet)
	}
	if sheet.Requirements[0].ID != "REQ-201" || sheet.Requirements[0].Priority != "High" {
		t.Errorf("first sheet requirement wrong: %+v", sheet.Requirements[0])
	}
	if sheet.Requirements[0].Type != RequirementFunctional {
		t.Errorf("first type = %q", sheet.Requirements[0].Type)
	}
	if sheet.Requirements[1].Type != RequirementNonFunctional {
		t.Errorf("second type = %q", sheet.Requirements[1].Type)
	}
	generic := bundle.Sheets["Sheet1"]
	if generic == nil || len(generic.Requirements) != 0 || len(generic.Rows) != 1 {
		t.Fatalf("generic sheet extraction wrong: %+v", generic)
	}
}

func TestProcessBytesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ProcessBytes(ctx, "a.txt", []byte("text")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
