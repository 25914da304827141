// File path: internal/extract/patterns.go
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	userStoryRe = regexp.MustCompile(`(?is)\bas\s+an?\s+(.+?),?\s+i\s+want\s+(.+?)[,\s]+(?:so\s+that|to)\s+(.+?)(?:\n[ \t]*\n|\z)`)

	numberedMarkerRe = regexp.MustCompile(`(?m)^[ \t]*(\d+)\.[ \t]*`)
	bulletMarkerRe   = regexp.MustCompile(`(?m)^[ \t]*[•\-*][ \t]*`)
	shallLineRe      = regexp.MustCompile(`(?i)\bshall\b`)
	enumeratorRe     = regexp.MustCompile(`^[ \t]*(?:\d+[.)]|[•\-*])[ \t]*`)

	acceptanceBlockRe = regexp.MustCompile(`(?is)\b(?:acceptance\s+criteria|ac)\b[ \t]*:?[ \t]*\n?(.*?)(?:\n[ \t]*\n|\z)`)

	numberedItemRe = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]*(.+)$`)
	bulletItemRe   = regexp.MustCompile(`(?m)^[ \t]*[•\-*][ \t]*(.+)$`)

	nonFunctionalRe = regexp.MustCompile(`(?i)\b(performance|security|availability|reliability|maintainability|scalability|usability|portability|response\s+time|throughput|secure|load|stress|recovery|audit|log|backup|restore|compliance)\b`)
)

// Minimum lengths below which a candidate match is considered noise rather
// than a requirement. The "shall" pass is noisier and carries a stricter floor.
const (
	minRequirementLen = 5
	minShallLen       = 10
)

// ExtractUserStories returns every "As a <role> I want <goal> so that
// <benefit>" statement found in the text. A story spans until a blank line
// or the end of the text; the matched span is preserved verbatim.
func ExtractUserStories(text string) []UserStory {
	var stories []UserStory
	for _, m := range userStoryRe.FindAllStringSubmatch(text, -1) {
		stories = append(stories, UserStory{
			Role:     strings.TrimSpace(m[1]),
			Goal:     strings.TrimSpace(m[2]),
			Benefit:  strings.TrimSpace(m[3]),
			FullText: strings.TrimSpace(m[0]),
		})
	}
	return stories
}

// ExtractRequirements runs the three text passes in order (numbered,
// bulleted, "shall") and appends every hit to one accumulating list. The
// passes deliberately overlap; only the "shall" pass suppresses candidates
// whose text is byte-identical to an already-collected entry.
func ExtractRequirements(text string) []Requirement {
	reqs := numberedRequirements(text)
	reqs = append(reqs, bulletedRequirements(text)...)
	reqs = appendShallRequirements(reqs, text)
	return reqs
}

func numberedRequirements(text string) []Requirement {
	var reqs []Requirement
	markers := numberedMarkerRe.FindAllStringSubmatchIndex(text, -1)
	for i, marker := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := strings.TrimSpace(text[marker[1]:end])
		if len(body) <= minRequirementLen {
			continue
		}
		num := text[marker[2]:marker[3]]
		reqs = append(reqs, Requirement{
			ID:   fmt.Sprintf("REQ-%s", num),
			Text: body,
			Type: ClassifyRequirement(body),
		})
	}
	return reqs
}

func bulletedRequirements(text string) []Requirement {
	var reqs []Requirement
	markers := bulletMarkerRe.FindAllStringIndex(text, -1)
	for i, marker := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := strings.TrimSpace(text[marker[1]:end])
		if len(body) <= minRequirementLen {
			continue
		}
		reqs = append(reqs, Requirement{
			ID:   fmt.Sprintf("REQ-%d", len(reqs)+1),
			Text: body,
			Type: ClassifyRequirement(body),
		})
	}
	return reqs
}

func appendShallRequirements(reqs []Requirement, text string) []Requirement {
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		seen[r.Text] = struct{}{}
	}
	for _, line := range strings.Split(text, "\n") {
		if !shallLineRe.MatchString(line) {
			continue
		}
		body := strings.TrimSpace(enumeratorRe.ReplaceAllString(line, ""))
		if len(body) <= minShallLen {
			continue
		}
		if _, dup := seen[body]; dup {
			continue
		}
		seen[body] = struct{}{}
		reqs = append(reqs, Requirement{
			ID:   fmt.Sprintf("REQ-%d", len(reqs)+1),
			Text: body,
			Type: ClassifyRequirement(body),
		})
	}
	return reqs
}

// ClassifyRequirement labels a requirement statement non-functional when it
// contains any quality-attribute keyword as a whole word, functional
// otherwise. Pure keyword lookup, evaluated per requirement.
func ClassifyRequirement(text string) RequirementType {
	if nonFunctionalRe.MatchString(text) {
		return RequirementNonFunctional
	}
	return RequirementFunctional
}

// ExtractAcceptanceCriteria collects every block introduced by an
// "Acceptance Criteria" or "AC" label, splits each block into list items and
// returns the items flattened across all matches.
func ExtractAcceptanceCriteria(text string) []string {
	var criteria []string
	for _, m := range acceptanceBlockRe.FindAllStringSubmatch(text, -1) {
		criteria = append(criteria, SplitListItems(m[1])...)
	}
	return criteria
}

// SplitListItems breaks a block of text into list items. Numbered items are
// tried first, then bulleted items, then every non-blank line. The final
// tier guarantees at least one item for any non-empty block.
func SplitListItems(block string) []string {
	var items []string
	for _, m := range numberedItemRe.FindAllStringSubmatch(block, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		return items
	}
	for _, m := range bulletItemRe.FindAllStringSubmatch(block, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		return items
	}
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
