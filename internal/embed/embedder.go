// Package embed wraps the external sentence-embedding model. Backends are
// interchangeable; vectors are deterministic for a fixed input and model
// version, which keeps classification reproducible.
package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
)

// Embedder converts texts into fixed-length vectors.
type Embedder interface {
	// Embed returns one vector per input, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model identifies the backing model (used for cache keying).
	Model() string
}

// NewEmbedder builds an embedder from configuration.
func NewEmbedder(cfg model.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIEmbedder(cfg)
	case "ollama":
		return NewOllamaEmbedder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
