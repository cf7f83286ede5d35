package embed

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/quantfold/thesisgrade/internal/cache"
)

// CachedEmbedder wraps an Embedder with a byte cache and a rate limiter.
// Cache hits never touch the backend; misses are batched into one call.
type CachedEmbedder struct {
	inner   Embedder
	store   cache.Cache
	limiter *rate.Limiter
}

// NewCachedEmbedder wraps inner. store and limiter may be nil, in which
// case caching and rate limiting are skipped respectively.
func NewCachedEmbedder(inner Embedder, store cache.Cache, requestsPerSecond float64) *CachedEmbedder {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &CachedEmbedder{
		inner:   inner,
		store:   store,
		limiter: limiter,
	}
}

// Model returns the backend model name.
func (e *CachedEmbedder) Model() string {
	return e.inner.Model()
}

// Embed returns vectors for all texts, serving cached entries and
// fetching only the misses.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		if e.store != nil {
			key := cache.EmbeddingKey(e.inner.Model(), text)
			if raw, found := e.store.Get(key); found {
				if vec, ok := cache.DecodeVector(raw); ok {
					vectors[i] = vec
					continue
				}
			}
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	fetched, err := e.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(fetched), len(missTexts))
	}

	for j, vec := range fetched {
		vectors[missIdx[j]] = vec
		if e.store != nil {
			key := cache.EmbeddingKey(e.inner.Model(), missTexts[j])
			_ = e.store.Set(key, cache.EncodeVector(vec), 0)
		}
	}

	return vectors, nil
}
