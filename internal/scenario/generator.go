// File path: internal/scenario/generator.go
package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/common/telemetry"
	"github.com/nexaqa/testforge/internal/extract"
	"github.com/nexaqa/testforge/internal/llm"
)

const (
	promptChunkSize    = 6000
	promptChunkOverlap = 200
)

// Generator turns a requirements bundle into test scenarios by prompting a
// completion provider and parsing its labeled response.
type Generator struct {
	provider llm.Provider
	splitter textsplitter.RecursiveCharacter
}

func NewGenerator(provider llm.Provider) *Generator {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(promptChunkSize),
		textsplitter.WithChunkOverlap(promptChunkOverlap),
	)
	return &Generator{provider: provider, splitter: splitter}
}

// Generate prompts the provider once per requirements chunk and returns the
// parsed scenario records in order. With strict set, a chunk yielding zero
// records fails instead of contributing an empty slice.
func (g *Generator) Generate(ctx context.Context, bundle *extract.Bundle, strict bool) ([]Record, error) {
	if g.provider == nil {
		return nil, fmt.Errorf("no completion provider configured")
	}
	body := requirementsPromptBody(bundle)
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("bundle has no requirements to generate scenarios from")
	}
	chunks, err := g.splitter.SplitText(body)
	if err != nil {
		return nil, fmt.Errorf("split requirements prompt: %w", err)
	}
	ctx, finish := telemetry.StartSpan(ctx, "scenario.generate")
	logger := common.Logger()
	var records []Record
	for i, chunk := range chunks {
		messages := []llm.Message{
			{Role: "system", Content: scenarioSystemPrompt},
			{Role: "user", Content: scenarioUserPrompt(chunk)},
		}
		response, err := g.provider.Chat(ctx, messages)
		if err != nil {
			logger.Error("scenario: completion failed", "chunk", i, "error", err)
			return nil, err
		}
		if strict {
			parsed, err := ParseManualResponse(response)
			if err != nil {
				return nil, err
			}
			records = append(records, parsed...)
			continue
		}
		records = append(records, ParseResponse(response)...)
	}
	telemetry.RecordGeneration(len(records), telemetry.SpanDuration(ctx))
	finish("chunks", len(chunks), "scenarios", len(records))
	logger.Info("scenario: generation complete", "chunks", len(chunks), "scenarios", len(records))
	return records, nil
}

const scenarioSystemPrompt = "You are a senior QA engineer. For each requirement you are given, " +
	"produce test scenarios. Format every scenario as labeled lines:\n" +
	"Test Scenario ID: TS-<requirement>-<nn>\nTitle: <short title>\n" +
	"Description: <what the scenario verifies>\nPriority: <High|Medium|Low>\n" +
	"Related Requirements: <requirement ids>\n" +
	"Separate scenarios with a blank line."

func scenarioUserPrompt(chunk string) string {
	return "Generate test scenarios for the following requirements:\n\n" + chunk
}

func requirementsPromptBody(bundle *extract.Bundle) string {
	if bundle == nil {
		return ""
	}
	var b strings.Builder
	for _, req := range bundle.Requirements {
		fmt.Fprintf(&b, "%s [%s]: %s\n", req.ID, req.Type, req.Text)
	}
	for _, sheet := range bundle.Sheets {
		for _, req := range sheet.Requirements {
			fmt.Fprintf(&b, "%s [%s]: %s\n", req.ID, req.Type, req.Text)
		}
	}
	for _, story := range bundle.Stories {
		fmt.Fprintf(&b, "%s: %s\n", story.Key, story.Summary)
		for _, ac := range story.AcceptanceCriteria {
			fmt.Fprintf(&b, "  AC: %s\n", ac)
		}
	}
	for _, story := range bundle.UserStories {
		fmt.Fprintf(&b, "Story: %s\n", story.FullText)
	}
	return b.String()
}
