// File path: internal/extract/reader/word.go
package reader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordDocument holds the content extracted from a .docx package.
type WordDocument struct {
	// Text is the full document text, one line per paragraph, with table
	// cell text inlined where it occurs.
	Text string
	// Paragraphs are the narrative paragraphs outside any table.
	Paragraphs []string
	// Tables are the document tables as ordered rows of cell strings.
	Tables [][][]string
}

// ParagraphText joins the narrative paragraphs into one block of text.
func (d *WordDocument) ParagraphText() string {
	return strings.Join(d.Paragraphs, "\n")
}

// ReadWord parses a Word document from raw bytes. OOXML packages are zip
// archives; the main part lives at word/document.xml.
func ReadWord(data []byte) (*WordDocument, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open word package: %w", err)
	}
	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document part: %w", err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return nil, fmt.Errorf("word package missing document.xml")
}

func parseDocumentXML(r io.Reader) (*WordDocument, error) {
	decoder := xml.NewDecoder(r)
	doc := &WordDocument{}

	var (
		allLines   []string
		paragraph  strings.Builder
		cell       strings.Builder
		row        []string
		table      [][]string
		tableDepth int
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document xml: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					row = nil
				}
			case "tc":
				if tableDepth > 0 {
					cell.Reset()
				}
			case "br", "cr":
				if tableDepth == 0 {
					paragraph.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
					if tableDepth == 0 {
						doc.Tables = append(doc.Tables, table)
						table = nil
					}
				}
			case "tr":
				if tableDepth > 0 {
					table = append(table, row)
					row = nil
				}
			case "tc":
				if tableDepth > 0 {
					row = append(row, strings.TrimSpace(cell.String()))
					allLines = append(allLines, strings.TrimSpace(cell.String()))
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					text := strings.TrimSpace(paragraph.String())
					paragraph.Reset()
					if text != "" {
						doc.Paragraphs = append(doc.Paragraphs, text)
						allLines = append(allLines, text)
					}
				}
			}
		case xml.CharData:
			if tableDepth > 0 {
				cell.Write(t)
			} else {
				paragraph.Write(t)
			}
		}
	}
	doc.Text = strings.Join(compactLines(allLines), "\n")
	return doc, nil
}

func compactLines(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
