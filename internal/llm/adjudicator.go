package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/quantfold/thesisgrade/internal/model"
)

// correctionConfidence is assigned to sentences the LLM reclassified.
const correctionConfidence = 0.95

// quoteMatchMinLen is the minimum reference length treated as a quote
// rather than a bare index.
const quoteMatchMinLen = 10

var indexPattern = regexp.MustCompile(`\d+`)

// Adjudicator runs the provider and guarantees a usable result: any
// failure, including a nil provider, degrades to the fallback payload.
type Adjudicator struct {
	provider Provider
	log      *zap.Logger
}

// NewAdjudicator wraps a provider. A nil provider disables LLM review.
func NewAdjudicator(provider Provider, log *zap.Logger) *Adjudicator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adjudicator{provider: provider, log: log}
}

// Adjudicate never returns an error; degraded reports true when the
// fallback payload was used.
func (a *Adjudicator) Adjudicate(ctx context.Context, req AdjudicationRequest) (result *AdjudicationResult, degraded bool) {
	if a.provider == nil {
		a.log.Debug("no LLM provider configured, using fallback adjudication")
		return FallbackResult(), true
	}

	result, err := a.provider.Adjudicate(ctx, req)
	if err != nil {
		a.log.Warn("LLM adjudication failed, using fallback",
			zap.String("provider", a.provider.Name()), zap.Error(err))
		return FallbackResult(), true
	}

	a.log.Debug("LLM adjudication complete",
		zap.String("provider", a.provider.Name()),
		zap.Int("corrections", len(result.Corrections)),
		zap.Int("fallacies", len(result.Fallacies)))
	return result, false
}

// ApplyAdjudication patches the classifications with the LLM result and
// returns a fresh slice; the input is left untouched.
func ApplyAdjudication(sentences []model.SentenceAnalysis, result *AdjudicationResult) []model.SentenceAnalysis {
	patched := make([]model.SentenceAnalysis, len(sentences))
	for i, s := range sentences {
		patched[i] = s.Clone()
	}
	if result == nil {
		return patched
	}

	for _, corr := range result.Corrections {
		idx := corr.SentenceIndex - 1
		if idx < 0 || idx >= len(patched) {
			continue
		}
		// Types outside the closed set leave the original classification.
		if stype, ok := model.ParseSentenceType(corr.CorrectType); ok {
			patched[idx].Type = stype
			patched[idx].Confidence = correctionConfidence
		}
	}

	for _, fallacy := range result.Fallacies {
		applyFallacy(patched, fallacy)
	}

	return patched
}

// applyFallacy attaches a fallacy to sentences by index, and by quote
// when the reference looks like one.
func applyFallacy(sentences []model.SentenceAnalysis, fallacy Fallacy) {
	explanation := fallacy.Explanation
	if explanation == "" {
		explanation = fallacy.Type
	}
	if explanation == "" {
		explanation = "Logical issue"
	}
	issue := "Fallacy: " + explanation

	ref := strings.TrimSpace(fallacy.SentenceReference)

	if m := indexPattern.FindString(ref); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			idx := n - 1
			if idx >= 0 && idx < len(sentences) {
				addIssue(&sentences[idx], issue)
			}
		}
	}

	if len(ref) > quoteMatchMinLen {
		refLower := strings.ToLower(ref)
		for i := range sentences {
			textLower := strings.ToLower(sentences[i].Text)
			if strings.Contains(textLower, refLower) || strings.Contains(refLower, textLower) {
				addIssue(&sentences[i], issue)
			}
		}
	}
}

func addIssue(s *model.SentenceAnalysis, issue string) {
	for _, existing := range s.Issues {
		if existing == issue {
			return
		}
	}
	s.Issues = append(s.Issues, issue)
}
