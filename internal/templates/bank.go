package templates

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/quantfold/thesisgrade/internal/embed"
	"github.com/quantfold/thesisgrade/internal/model"
)

// Margin-to-confidence scaling for ClassifyByEmbedding. A margin of 0.1
// between the top two types already counts as high confidence.
const (
	MarginScale    = 5.0
	BaseConfidence = 0.5
)

// Bank holds the template embeddings and answers similarity votes.
// Template vectors are computed on first use and immutable afterwards;
// a Bank is safe for concurrent use across analyses.
type Bank struct {
	embedder embed.Embedder

	mu      sync.Mutex
	vectors map[model.SentenceType][][]float32
}

// NewBank creates a template bank on top of the given embedder.
// No embedding calls happen until the first vote.
func NewBank(embedder embed.Embedder) *Bank {
	return &Bank{embedder: embedder}
}

// Warm computes the template embeddings eagerly. Optional; the first
// Vote triggers the same computation.
func (b *Bank) Warm(ctx context.Context) error {
	_, err := b.templateVectors(ctx)
	return err
}

// Vote embeds the sentence and returns, per semantic type, the maximum
// cosine similarity against that type's template set.
func (b *Bank) Vote(ctx context.Context, sentence string) (map[model.SentenceType]float64, error) {
	vectors, err := b.templateVectors(ctx)
	if err != nil {
		return nil, err
	}

	embedded, err := b.embedder.Embed(ctx, []string{sentence})
	if err != nil {
		return nil, fmt.Errorf("embed sentence: %w", err)
	}
	if len(embedded) != 1 {
		return nil, fmt.Errorf("embed sentence: got %d vectors", len(embedded))
	}
	sentVec := embedded[0]

	scores := make(map[model.SentenceType]float64, len(vectors))
	for stype, templateVecs := range vectors {
		best := 0.0
		for _, tv := range templateVecs {
			if sim := cosine(tv, sentVec); sim > best {
				best = sim
			}
		}
		scores[stype] = best
	}

	return scores, nil
}

// ClassifyByEmbedding picks the best-matching type with a margin-based
// confidence: min(1, margin*MarginScale + BaseConfidence).
func (b *Bank) ClassifyByEmbedding(ctx context.Context, sentence string) (model.SentenceType, float64, error) {
	scores, err := b.Vote(ctx, sentence)
	if err != nil {
		return "", 0, err
	}

	type scored struct {
		stype model.SentenceType
		score float64
	}
	ranked := make([]scored, 0, len(scores))
	for stype, score := range scores {
		ranked = append(ranked, scored{stype, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].stype < ranked[j].stype
	})

	best := ranked[0]
	second := 0.0
	if len(ranked) > 1 {
		second = ranked[1].score
	}

	confidence := math.Min(1.0, (best.score-second)*MarginScale+BaseConfidence)
	return best.stype, confidence, nil
}

// templateVectors returns the cached template embeddings, computing them
// on the first call. Recomputed on a later call only if the first attempt
// failed; the computation is pure, so a duplicate race is harmless.
func (b *Bank) templateVectors(ctx context.Context) (map[model.SentenceType][][]float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.vectors != nil {
		return b.vectors, nil
	}

	vectors := make(map[model.SentenceType][][]float32)
	for _, set := range byType() {
		embedded, err := b.embedder.Embed(ctx, set.Templates)
		if err != nil {
			return nil, fmt.Errorf("embed %s templates: %w", set.Type, err)
		}
		if len(embedded) != len(set.Templates) {
			return nil, fmt.Errorf("embed %s templates: got %d vectors for %d templates", set.Type, len(embedded), len(set.Templates))
		}
		vectors[set.Type] = embedded
	}

	b.vectors = vectors
	return vectors, nil
}

// cosine computes cosine similarity between two vectors.
// Returns 0 for mismatched or zero-length vectors.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
