// File path: internal/extract/reader/word_test.go
package reader

import (
	"archive/zip"
	"bytes"
	"reflect"
	"testing"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:body>` +
	`<w:p><w:r><w:t>Functional Requirements</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>1. The system shall authenticate users.</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Part one </w:t></w:r><w:r><w:t>and part two.</w:t></w:r></w:p>` +
	`<w:tbl>` +
	`<w:tr><w:tc><w:p><w:r><w:t>Req ID</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>Description</w:t></w:r></w:p></w:tc></w:tr>` +
	`<w:tr><w:tc><w:p><w:r><w:t>R1</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>Imports are idempotent.</w:t></w:r></w:p></w:tc></w:tr>` +
	`</w:tbl>` +
	`<w:p><w:r><w:t>Closing remark.</w:t></w:r></w:p>` +
	`</w:body>` +
	`</w:document>`

func buildDocx(t *testing.T, partName, partXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(partName)
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(partXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestReadWord(t *testing.T) {
	data := buildDocx(t, "word/document.xml", documentXML)
	doc, err := ReadWord(data)
	if err != nil {
		t.Fatalf("ReadWord returned error: %v", err)
	}
	wantParagraphs := []string{
		"Functional Requirements",
		"1. The system shall authenticate users.",
		"Part one and part two.",
		"Closing remark.",
	}
	if !reflect.DeepEqual(doc.Paragraphs, wantParagraphs) {
		t.Errorf("paragraphs = %#v, want %#v", doc.Paragraphs, wantParagraphs)
	}
	wantTables := [][][]string{{
		{"Req ID", "Description"},
		{"R1", "Imports are idempotent."},
	}}
	if !reflect.DeepEqual(doc.Tables, wantTables) {
		t.Errorf("tables = %#v, want %#v", doc.Tables, wantTables)
	}
	if doc.Text == "" {
		t.Fatal("expected non-empty document text")
	}
}

func TestReadWordMissingDocumentPart(t *testing.T) {
	data := buildDocx(t, "word/styles.xml", "<w:styles/>")
	if _, err := ReadWord(data); err == nil {
		t.Fatal("expected error for package without document.xml")
	}
}

func TestReadWordNotAZip(t *testing.T) {
	if _, err := ReadWord([]byte("plain text, not a package")); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}
