// Package classify assigns a semantic type, support level, and rhetorical
// role to each sentence of a thesis. Pattern voting carries most of the
// weight; embedding similarity breaks ties on low-signal sentences.
package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/templates"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// Options are the classifier tuning constants. DefaultOptions gives the
// calibrated values; tests override individual fields.
type Options struct {
	// Blend weights for pattern vs embedding votes.
	PatternWeight   float64
	EmbeddingWeight float64

	// Embeddings fire only when pattern evidence is weak: total vote mass
	// below GateTotal, or the winner holding less than GateDominance of it.
	GateTotal     float64
	GateDominance float64

	// Sentences at or under MinEmbedChars non-whitespace-trimmed length
	// never go to the embedder.
	MinEmbedChars int

	// Embedding votes are rescaled so the best template match maps to
	// EmbedScale, putting them on the pattern-vote magnitude.
	EmbedScale float64

	// ConfidenceBoost stretches the winner's share toward 1.0.
	ConfidenceBoost float64

	// Sentences below AmbiguityThreshold are queued for LLM review.
	AmbiguityThreshold float64

	// Confidence assigned when no signal fires at all.
	ZeroSignalConfidence float64
}

// DefaultOptions returns the calibrated tuning constants.
func DefaultOptions() Options {
	return Options{
		PatternWeight:        0.6,
		EmbeddingWeight:      0.4,
		GateTotal:            5,
		GateDominance:        0.7,
		MinEmbedChars:        20,
		EmbedScale:           5,
		ConfidenceBoost:      1.2,
		AmbiguityThreshold:   0.55,
		ZeroSignalConfidence: 0.5,
	}
}

// Classifier scores sentences. The template bank is optional; with a nil
// bank classification is pattern-only.
type Classifier struct {
	bank *templates.Bank
	opts Options
	log  *zap.Logger
}

// New creates a classifier. Pass nil bank to disable embedding votes.
func New(bank *templates.Bank, opts Options, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{bank: bank, opts: opts, log: log}
}

// Result carries the per-sentence analyses plus the 0-based indices of
// sentences whose confidence fell below the ambiguity threshold.
type Result struct {
	Sentences []model.SentenceAnalysis
	Ambiguous []int
}

// Classify analyzes every sentence. Embedding failures degrade silently
// to pattern-only scoring for the affected sentence.
func (c *Classifier) Classify(ctx context.Context, sentences []string) Result {
	res := Result{Sentences: make([]model.SentenceAnalysis, 0, len(sentences))}

	for i, sentence := range sentences {
		analysis := c.classifyOne(ctx, i, len(sentences), sentence)
		res.Sentences = append(res.Sentences, analysis)
		if analysis.Confidence < c.opts.AmbiguityThreshold {
			res.Ambiguous = append(res.Ambiguous, i)
		}
	}

	return res
}

func (c *Classifier) classifyOne(ctx context.Context, i, total int, sentence string) model.SentenceAnalysis {
	lower := strings.ToLower(sentence)

	patternScores := c.patternVotes(sentence, lower)
	maxType, maxScore := topVote(patternScores)
	totalScore := sumVotes(patternScores)

	if c.useEmbeddings(maxScore, totalScore, sentence) {
		if combined, err := c.blendVotes(ctx, sentence, patternScores); err == nil {
			maxType, maxScore = topVote(combined)
			totalScore = sumVotes(combined)
		} else {
			c.log.Debug("embedding vote failed, using pattern vote",
				zap.Int("sentence", i+1), zap.Error(err))
		}
	}

	var confidence float64
	if totalScore == 0 {
		maxType = model.SentenceContext
		confidence = c.opts.ZeroSignalConfidence
	} else {
		confidence = maxScore / totalScore
		confidence = min(1.0, confidence*c.opts.ConfidenceBoost)
	}

	return model.SentenceAnalysis{
		Index:      i + 1,
		Text:       sentence,
		Type:       maxType,
		Support:    supportLevel(sentence, lower, maxType),
		Role:       sentenceRole(i, total, lower, maxType),
		Confidence: confidence,
		Issues:     certaintyIssues(lower),
	}
}

// patternVotes scores a sentence against the vocabulary banks.
func (c *Classifier) patternVotes(sentence, lower string) map[model.SentenceType]float64 {
	scores := map[model.SentenceType]float64{
		model.SentenceFact:       0,
		model.SentenceOpinion:    0,
		model.SentenceAssumption: 0,
		model.SentenceProjection: 0,
		model.SentenceContext:    0,
	}

	for _, ind := range vocab.FactIndicators {
		if strings.Contains(lower, ind) {
			scores[model.SentenceFact] += 2
		}
	}
	for _, ref := range vocab.FinancialStatementRefs {
		if strings.Contains(lower, ref) {
			scores[model.SentenceFact] += 3
		}
	}
	for _, src := range vocab.CredibleSources {
		if strings.Contains(lower, src) {
			scores[model.SentenceFact] += 2
		}
	}
	if vocab.PercentPattern.MatchString(sentence) {
		scores[model.SentenceFact] += 3
	}
	if vocab.CurrencyPattern.MatchString(sentence) {
		scores[model.SentenceFact] += 2
	}
	for _, p := range vocab.TimeBoundPatterns {
		if p.MatchString(sentence) {
			scores[model.SentenceFact] += 2
			break
		}
	}

	for _, ind := range vocab.OpinionIndicators {
		if strings.Contains(lower, ind) {
			scores[model.SentenceOpinion] += 3
		}
	}
	for _, ind := range vocab.AssumptionIndicators {
		if strings.Contains(lower, ind) {
			scores[model.SentenceAssumption] += 3
		}
	}
	for _, ind := range vocab.ProjectionIndicators {
		if strings.Contains(lower, ind) {
			scores[model.SentenceProjection] += 2
		}
	}
	if strings.Contains(lower, " will ") || strings.Contains(lower, " would ") {
		scores[model.SentenceProjection] += 1
	}

	for _, conn := range vocab.CausalConnectors["strong_causal"] {
		if strings.Contains(lower, conn) {
			scores[model.SentenceContext] += 1
			break
		}
	}

	return scores
}

func (c *Classifier) useEmbeddings(maxScore, totalScore float64, sentence string) bool {
	if c.bank == nil {
		return false
	}
	if len(strings.TrimSpace(sentence)) <= c.opts.MinEmbedChars {
		return false
	}
	return totalScore < c.opts.GateTotal || maxScore/max(totalScore, 1) < c.opts.GateDominance
}

// blendVotes mixes the pattern votes with max-normalized embedding votes.
func (c *Classifier) blendVotes(ctx context.Context, sentence string, patternScores map[model.SentenceType]float64) (map[model.SentenceType]float64, error) {
	embedScores, err := c.bank.Vote(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("template vote: %w", err)
	}

	embedMax := 0.0
	for _, v := range embedScores {
		if v > embedMax {
			embedMax = v
		}
	}
	if embedMax == 0 {
		return nil, fmt.Errorf("template vote: all similarities zero")
	}

	combined := make(map[model.SentenceType]float64, len(patternScores))
	for stype, pScore := range patternScores {
		eScore := embedScores[stype] / embedMax * c.opts.EmbedScale
		combined[stype] = pScore*c.opts.PatternWeight + eScore*c.opts.EmbeddingWeight
	}
	return combined, nil
}

// certaintyIssues flags overconfident or vague language.
func certaintyIssues(lower string) []string {
	var issues []string

	var certaintyLevel string
	for _, level := range vocab.CertaintyLevelOrder {
		if containsAny(lower, vocab.CertaintyLevels[level]) {
			certaintyLevel = level
			break
		}
	}

	if certaintyLevel == "high" {
		hasEvidence := false
		for _, markers := range vocab.EvidenceMarkers {
			if containsAny(lower, markers) {
				hasEvidence = true
				break
			}
		}
		if !hasEvidence {
			issues = append(issues, "High certainty language without supporting evidence")
		}
	}

	for _, ind := range vocab.OverconfidenceIndicators {
		if strings.Contains(lower, strings.ToLower(ind)) {
			issues = append(issues, fmt.Sprintf("Overconfident claim: '%s'", ind))
			break
		}
	}

	if containsAny(lower, vocab.VagueWords) {
		issues = append(issues, "Vague quantifier used")
	}

	return issues
}

// supportLevel grades in-text backing. Evidence markers win over bare
// numbers; weasel words only demote non-projections.
func supportLevel(sentence, lower string, stype model.SentenceType) model.SupportLevel {
	switch {
	case containsAny(lower, vocab.EvidenceMarkers["strong"]):
		return model.SupportSupported
	case containsAny(lower, vocab.FinancialStatementRefs):
		return model.SupportSupported
	case containsAny(lower, vocab.EvidenceMarkers["moderate"]):
		return model.SupportSupported
	case vocab.StatPattern.MatchString(sentence):
		return model.SupportPartial
	case containsAny(lower, vocab.WeaselWords) && stype != model.SentenceProjection:
		return model.SupportUnsupported
	}
	return model.SupportPartial
}

func sentenceRole(i, total int, lower string, stype model.SentenceType) model.SentenceRole {
	switch {
	case i == 0 || strings.Contains(lower, "thesis"):
		return model.RoleFoundation
	case stype == model.SentenceFact:
		return model.RoleEvidence
	case i == total-1 || containsAny(lower, vocab.ConcludingConnectors):
		return model.RoleConclusion
	}
	return model.RoleBridge
}

func topVote(scores map[model.SentenceType]float64) (model.SentenceType, float64) {
	// Fixed iteration order keeps ties deterministic.
	order := []model.SentenceType{
		model.SentenceFact,
		model.SentenceOpinion,
		model.SentenceAssumption,
		model.SentenceProjection,
		model.SentenceContext,
	}
	best := order[0]
	bestScore := scores[best]
	for _, t := range order[1:] {
		if scores[t] > bestScore {
			best = t
			bestScore = scores[t]
		}
	}
	return best, bestScore
}

func sumVotes(scores map[model.SentenceType]float64) float64 {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	return total
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
