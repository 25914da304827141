// File path: internal/extract/types.go
package extract

import "fmt"

// DocumentType identifies the source format a bundle was extracted from.
type DocumentType string

const (
	DocumentWord  DocumentType = "word"
	DocumentExcel DocumentType = "excel"
	DocumentPDF   DocumentType = "pdf"
	DocumentText  DocumentType = "text"
	DocumentJira  DocumentType = "jira"
)

// RequirementType distinguishes functional from non-functional requirements.
type RequirementType string

const (
	RequirementFunctional    RequirementType = "functional"
	RequirementNonFunctional RequirementType = "non-functional"
)

// Requirement is a single testable statement extracted from source material.
type Requirement struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Type     RequirementType   `json:"type"`
	Priority string            `json:"priority,omitempty"`
	Status   string            `json:"status,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// UserStory is a role/goal/benefit triple extracted from an
// "As a ... I want ... so that ..." sentence.
type UserStory struct {
	Role     string `json:"role"`
	Goal     string `json:"goal"`
	Benefit  string `json:"benefit"`
	FullText string `json:"full_text"`
}

// IssueStory is a user-story-like record derived from one JIRA issue.
type IssueStory struct {
	Key                string                 `json:"key,omitempty"`
	Summary            string                 `json:"summary"`
	Description        string                 `json:"description,omitempty"`
	IssueType          string                 `json:"issue_type,omitempty"`
	Priority           string                 `json:"priority,omitempty"`
	Status             string                 `json:"status,omitempty"`
	AcceptanceCriteria []string               `json:"acceptance_criteria,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// Sheet holds the extraction result for a single Excel worksheet. Exactly
// one of Requirements or Rows is populated depending on whether the sheet
// classified as a requirements sheet.
type Sheet struct {
	Name         string              `json:"name"`
	Requirements []Requirement       `json:"requirements,omitempty"`
	Rows         []map[string]string `json:"rows,omitempty"`
}

// Bundle is the normalized output of processing one document or payload.
// A fresh bundle is built per call; persistence belongs to the caller.
type Bundle struct {
	DocumentType       DocumentType      `json:"document_type"`
	RawText            string            `json:"raw_text,omitempty"`
	Requirements       []Requirement     `json:"requirements"`
	UserStories        []UserStory       `json:"user_stories,omitempty"`
	AcceptanceCriteria []string          `json:"acceptance_criteria,omitempty"`
	Sheets             map[string]*Sheet `json:"sheets,omitempty"`
	Stories            []IssueStory      `json:"stories,omitempty"`
}

// UnsupportedFormatError reports a file extension the processor cannot
// dispatch. It fails before any file content is read.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %q", e.Ext)
}
