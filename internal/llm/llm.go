// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"

	"github.com/openai/openai-go/v2/option"

	openai "github.com/openai/openai-go/v2"

	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects the completion backend from the environment: OpenAI
// when OPENAI_API_KEY is set, the local stub otherwise.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(client)
}
