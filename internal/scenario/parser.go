// File path: internal/scenario/parser.go
package scenario

import (
	"errors"
	"strings"
)

// Record is one parsed test-scenario block from an LLM response.
type Record struct {
	ID                  string `json:"id"`
	Title               string `json:"title,omitempty"`
	Description         string `json:"description,omitempty"`
	Priority            string `json:"priority,omitempty"`
	RelatedRequirements string `json:"related_requirements,omitempty"`
}

// ErrNoScenarios is returned by the strict parser when a response yields no
// usable scenario records.
var ErrNoScenarios = errors.New("no scenarios found in response")

// Labels that open a new record. Checked in order; a line matching one of
// these is a record boundary and its remainder becomes the new record's ID.
var idLabels = []string{"Test Scenario ID:", "Scenario ID:", "ID:"}

// ParseResponse converts an LLM's labeled free-text response into an ordered
// list of scenario records. A record is only emitted once its ID has been
// set; content before the first ID line is discarded. An empty result is a
// valid outcome for this variant.
func ParseResponse(text string) []Record {
	var (
		records  []Record
		current  Record
		hasID    bool
		descOpen bool
	)
	flush := func() {
		if hasID {
			records = append(records, current)
		}
		current = Record{}
		hasID = false
		descOpen = false
	}
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if id, ok := matchLabel(line, idLabels...); ok {
			flush()
			current.ID = id
			hasID = true
			continue
		}
		if !hasID {
			continue
		}
		if value, ok := matchLabel(line, "Title:"); ok {
			current.Title = value
			continue
		}
		if value, ok := matchLabel(line, "Description:"); ok {
			current.Description = value
			descOpen = true
			continue
		}
		if value, ok := matchLabel(line, "Related Requirements:", "Requirements:", "Requirement ID:"); ok {
			current.RelatedRequirements = value
			continue
		}
		if value, ok := matchLabel(line, "Priority:"); ok {
			current.Priority = value
			continue
		}
		if strings.HasPrefix(line, "-") {
			continue
		}
		if line[0] >= '0' && line[0] <= '9' {
			continue
		}
		if descOpen {
			current.Description += " " + line
		}
	}
	flush()
	return records
}

// ParseManualResponse is the strict variant used for manually prompted
// generations: an empty input or a response with zero records is an error
// rather than an empty list.
func ParseManualResponse(text string) ([]Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty scenario response")
	}
	records := ParseResponse(text)
	if len(records) == 0 {
		return nil, ErrNoScenarios
	}
	return records, nil
}

func matchLabel(line string, labels ...string) (string, bool) {
	for _, label := range labels {
		if len(line) < len(label) {
			continue
		}
		if strings.EqualFold(line[:len(label)], label) {
			return strings.TrimSpace(line[len(label):]), true
		}
	}
	return "", false
}
