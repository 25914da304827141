// File path: internal/extract/jira.go
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// The acceptance-criteria variants are tried in order; the first pattern
// that matches and yields a non-empty item list wins.
var jiraCriteriaRes = []*regexp.Regexp{
	regexp.MustCompile(`(?is)acceptance\s+criteria\s*:\s*(.*?)(?:\n[ \t]*\n|\z)`),
	regexp.MustCompile(`(?is)\bac\s*:\s*(.*?)(?:\n[ \t]*\n|\z)`),
	regexp.MustCompile(`(?is)acceptance\s+criteria\s*\n(.*?)(?:\n[ \t]*\n|\z)`),
}

var jiraStandardFields = map[string]struct{}{
	"summary":     {},
	"description": {},
	"issuetype":   {},
	"priority":    {},
	"status":      {},
}

// ProcessJiraExport converts a JIRA export payload into a bundle. The
// payload is either a single issue object or an {"issues": [...]} wrapper;
// no text extraction is involved, each issue maps directly onto a story.
func ProcessJiraExport(payload []byte) (*Bundle, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("decode jira payload: %w", err)
	}
	bundle := &Bundle{DocumentType: DocumentJira, Requirements: []Requirement{}}

	var issues []json.RawMessage
	if wrapped, ok := root["issues"]; ok {
		if err := json.Unmarshal(wrapped, &issues); err != nil {
			return nil, fmt.Errorf("decode jira issues: %w", err)
		}
	} else {
		issues = []json.RawMessage{payload}
	}
	for _, raw := range issues {
		story, err := mapJiraIssue(raw)
		if err != nil {
			return nil, err
		}
		bundle.Stories = append(bundle.Stories, story)
	}
	return bundle, nil
}

func mapJiraIssue(raw json.RawMessage) (IssueStory, error) {
	var issue struct {
		Key    string                     `json:"key"`
		Fields map[string]json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(raw, &issue); err != nil {
		return IssueStory{}, fmt.Errorf("decode jira issue: %w", err)
	}
	story := IssueStory{
		Key:         issue.Key,
		Summary:     stringField(issue.Fields["summary"]),
		Description: stringField(issue.Fields["description"]),
		IssueType:   namedField(issue.Fields["issuetype"]),
		Priority:    namedField(issue.Fields["priority"]),
		Status:      namedField(issue.Fields["status"]),
	}
	story.AcceptanceCriteria = jiraAcceptanceCriteria(story.Description)

	for name, value := range issue.Fields {
		if _, standard := jiraStandardFields[name]; standard {
			continue
		}
		var decoded interface{}
		if err := json.Unmarshal(value, &decoded); err != nil {
			continue
		}
		switch decoded.(type) {
		case map[string]interface{}, []interface{}:
			// Structured field values are dropped; only primitives survive.
		default:
			if story.Metadata == nil {
				story.Metadata = make(map[string]interface{})
			}
			story.Metadata[name] = decoded
		}
	}
	return story, nil
}

func jiraAcceptanceCriteria(description string) []string {
	if description == "" {
		return nil
	}
	for _, re := range jiraCriteriaRes {
		m := re.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		if items := SplitListItems(m[1]); len(items) > 0 {
			return items
		}
	}
	return nil
}

func stringField(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func namedField(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &named); err != nil {
		return ""
	}
	return named.Name
}
