// Package llm wraps the adjudication providers. The LLM reviews the
// deterministic classification, scores logical coherence, and produces
// the qualitative synthesis; everything it returns is re-validated
// before it touches a report.
package llm

import (
	"context"

	"github.com/quantfold/thesisgrade/internal/model"
)

// Provider defines the interface for adjudication backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Adjudicate runs the qualitative review and returns the parsed result
	Adjudicate(ctx context.Context, req AdjudicationRequest) (*AdjudicationResult, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AdjudicationRequest carries everything the LLM sees.
type AdjudicationRequest struct {
	// ThesisText is the raw thesis, truncated to the prompt budget.
	ThesisText string

	// Features are the aggregate counts from preprocessing.
	Features model.MLFeatures

	// Sentences are the deterministic classifications to validate.
	Sentences []model.SentenceAnalysis
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "" = disabled
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxTokens:  c.MaxTokens,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
	}
}
