// File path: internal/extract/tables.go
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sheetHeaderKeywords = []string{
		"requirement", "req", "user story", "feature", "id",
		"description", "priority", "acceptance", "criteria", "test", "case",
	}
	tableHeaderKeywords = []string{
		"requirement", "req", "id", "description", "user story", "feature",
	}
	sheetContentRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bshall\b`),
		regexp.MustCompile(`(?i)\bmust\b`),
		regexp.MustCompile(`(?i)as a .* i want`),
	}

	canonicalColumns = []struct {
		field    string
		keywords []string
	}{
		{"id", []string{"req id", "requirement id", "story id", "id", "key"}},
		{"description", []string{"description", "user story", "requirement", "story", "text", "detail"}},
		{"type", []string{"type", "category"}},
		{"priority", []string{"priority", "importance"}},
		{"status", []string{"status", "state"}},
	}

	tableColumnRoles = []struct {
		field    string
		keywords []string
	}{
		{"id", []string{"id", "key", "#"}},
		{"description", []string{"description", "requirement", "text"}},
		{"type", []string{"type", "category"}},
		{"priority", []string{"priority", "importance"}},
	}
)

// Rows sampled when a sheet has no recognizable headers. Spreadsheets carry
// enough row volume for content sampling; extracted document tables do not.
const contentSampleRows = 5

// IsRequirementsSheet reports whether a worksheet holds requirements. The
// header row is checked for requirement-ish keywords first; failing that,
// the first few data rows are sampled for requirement-sounding content.
func IsRequirementsSheet(headers []string, rows [][]string) bool {
	joined := strings.ToLower(strings.Join(headers, " "))
	for _, kw := range sheetHeaderKeywords {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	sample := rows
	if len(sample) > contentSampleRows {
		sample = sample[:contentSampleRows]
	}
	var cells []string
	for _, row := range sample {
		cells = append(cells, row...)
	}
	content := strings.Join(cells, " ")
	for _, re := range sheetContentRes {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// IsRequirementsTable reports whether an extracted Word/PDF table holds
// requirements. Only the first row's headers are consulted; no content
// sampling is applied to document tables.
func IsRequirementsTable(table [][]string) bool {
	if len(table) == 0 {
		return false
	}
	joined := strings.ToLower(strings.Join(table[0], " "))
	for _, kw := range tableHeaderKeywords {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// MapSheetRows binds a requirements sheet's columns onto the canonical
// requirement fields and converts each data row into a Requirement. Rows
// whose mapped description is empty are dropped; columns that bind no
// canonical field are preserved under their normalized header names.
func MapSheetRows(headers []string, rows [][]string) []Requirement {
	bound := bindColumns(headers, canonicalColumns)
	var reqs []Requirement
	for _, row := range rows {
		fields := make(map[string]string, len(headers))
		extra := make(map[string]string)
		for i, header := range headers {
			if i >= len(row) {
				break
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			if field, ok := bound[i]; ok {
				fields[field] = value
			} else {
				extra[normalizeHeader(header)] = value
			}
		}
		if fields["description"] == "" {
			continue
		}
		req := Requirement{
			ID:       fields["id"],
			Text:     fields["description"],
			Priority: fields["priority"],
			Status:   fields["status"],
		}
		if req.ID == "" {
			req.ID = fmt.Sprintf("REQ-%d", len(reqs)+1)
		}
		if typ := strings.ToLower(fields["type"]); typ != "" {
			req.Type = RequirementType(typ)
		} else {
			req.Type = ClassifyRequirement(req.Text)
		}
		if len(extra) > 0 {
			req.Extra = extra
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// MapGenericRows converts a non-requirements sheet into row maps keyed by
// normalized header names.
func MapGenericRows(headers []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		mapped := make(map[string]string, len(headers))
		for i, header := range headers {
			if i >= len(row) {
				break
			}
			if value := strings.TrimSpace(row[i]); value != "" {
				mapped[normalizeHeader(header)] = value
			}
		}
		if len(mapped) > 0 {
			out = append(out, mapped)
		}
	}
	return out
}

// MapTableRows converts a requirements table extracted from a Word or PDF
// document into Requirement records. A table with no identifiable
// description column yields no requirements.
func MapTableRows(table [][]string) []Requirement {
	if len(table) < 2 {
		return nil
	}
	bound := bindColumns(table[0], tableColumnRoles)
	descCol := -1
	for col, field := range bound {
		if field == "description" {
			descCol = col
		}
	}
	if descCol < 0 {
		return nil
	}
	var reqs []Requirement
	for _, row := range table[1:] {
		if descCol >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[descCol])
		if text == "" {
			continue
		}
		req := Requirement{Text: text}
		for col, field := range bound {
			if col >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[col])
			if value == "" {
				continue
			}
			switch field {
			case "id":
				req.ID = value
			case "type":
				req.Type = RequirementType(strings.ToLower(value))
			case "priority":
				req.Priority = value
			}
		}
		if req.ID == "" {
			req.ID = fmt.Sprintf("REQ-%d", len(reqs)+1)
		}
		if req.Type == "" {
			req.Type = ClassifyRequirement(text)
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// bindColumns assigns each canonical field the first header containing one
// of its candidate keywords. A header binds at most one field.
func bindColumns(headers []string, candidates []struct {
	field    string
	keywords []string
}) map[int]string {
	bound := make(map[int]string)
	taken := make(map[int]struct{})
	for _, candidate := range candidates {
	search:
		for _, kw := range candidate.keywords {
			for i, header := range headers {
				if _, used := taken[i]; used {
					continue
				}
				if strings.Contains(strings.ToLower(header), kw) {
					bound[i] = candidate.field
					taken[i] = struct{}{}
					break search
				}
			}
		}
	}
	return bound
}

func normalizeHeader(header string) string {
	normalized := strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(normalized, " ", "_")
}
