// File path: internal/llm/providers/provider.go
package providers

import (
	"context"
	"fmt"
	"strings"
)

// Message is one turn of a chat exchange with a completion provider.
type Message struct {
	Role    string
	Content string
}

// Provider abstracts the completion backend used for scenario generation.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}

// LocalProvider is a deterministic fallback used when no API key is
// configured. It echoes the last prompt so the pipeline stays runnable.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := messages[len(messages)-1].Content
	return "[local-stub] " + strings.TrimSpace(last), nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
