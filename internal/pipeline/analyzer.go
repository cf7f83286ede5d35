package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/thesisgrade/internal/analysis"
	"github.com/quantfold/thesisgrade/internal/classify"
	"github.com/quantfold/thesisgrade/internal/llm"
	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/nlp"
	"github.com/quantfold/thesisgrade/internal/score"
)

// ErrTextTooShort rejects input below the configured minimum length.
type ErrTextTooShort struct {
	Got, Min int
}

func (e *ErrTextTooShort) Error() string {
	return fmt.Sprintf("thesis text too short: %d chars, minimum %d", e.Got, e.Min)
}

// Analyzer runs the full thesis analysis. All collaborators are
// injected; a fresh Analyzer per configuration, reused across requests.
type Analyzer struct {
	segmenter   nlp.SegmenterTagger
	classifier  *classify.Classifier
	scorer      *score.Scorer
	adjudicator *llm.Adjudicator
	minChars    int
	currentYear int
	log         *zap.Logger
}

// NewAnalyzer wires the pipeline from its stages.
func NewAnalyzer(
	segmenter nlp.SegmenterTagger,
	classifier *classify.Classifier,
	scorer *score.Scorer,
	adjudicator *llm.Adjudicator,
	cfg model.AnalysisConfig,
	log *zap.Logger,
) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		segmenter:   segmenter,
		classifier:  classifier,
		scorer:      scorer,
		adjudicator: adjudicator,
		minChars:    cfg.MinTextChars,
		currentYear: cfg.CurrentYear,
		log:         log,
	}
}

// Analyze produces the complete strength report for a thesis text.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*model.StrengthReport, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < a.minChars {
		return nil, &ErrTextTooShort{Got: len(trimmed), Min: a.minChars}
	}

	// Preprocessing: segmentation, entities, aggregate features.
	sentences, entities, err := a.segmenter.Segment(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("no sentences extracted from text")
	}
	features := BuildFeatures(trimmed, sentences, entities)
	a.log.Debug("preprocessing complete",
		zap.Int("sentences", len(sentences)),
		zap.Int("entities", features.EntityCount))

	// Classification.
	classified := a.classifier.Classify(ctx, sentences)
	a.log.Debug("classification complete",
		zap.Int("ambiguous", len(classified.Ambiguous)))

	// Deterministic components.
	evidence := a.scorer.EvidenceQuality(features)
	clarity := a.scorer.Clarity(features, trimmed)
	risk := a.scorer.RiskAwareness(trimmed)
	action := a.scorer.Actionability(trimmed)

	// LLM adjudication; the fallback payload keeps the report complete.
	adjudication, degraded := a.adjudicator.Adjudicate(ctx, llm.AdjudicationRequest{
		ThesisText: trimmed,
		Features:   features,
		Sentences:  classified.Sentences,
	})
	coherence := adjudication.CoherenceComponent()

	patched := llm.ApplyAdjudication(classified.Sentences, adjudication)

	// Derived sections run on the patched classifications.
	audit := analysis.BuildAuditTable(patched, adjudication.Corrections)
	chain := analysis.BuildLogicChain(patched)
	weaknesses := analysis.BuildWeaknessReport(patched, trimmed, a.currentYear)
	consistency := analysis.CheckConsistency(patched)
	bias := analysis.DetectBias(trimmed)

	overall := evidence.Score + coherence.Score + clarity.Score + risk.Score + action.Score

	report := &model.StrengthReport{
		OverallScore:      overall,
		Grade:             model.CalculateGrade(overall),
		AnalyzedAt:        time.Now().UTC(),
		EvidenceQuality:   evidence,
		LogicalCoherence:  coherence,
		Clarity:           clarity,
		RiskAwareness:     risk,
		Actionability:     action,
		Stats:             buildStats(patched),
		Features:          features,
		Sentences:         patched,
		Synthesis:         adjudication.Synthesis,
		AuditTable:        audit,
		LogicChain:        chain,
		Weaknesses:        weaknesses,
		ConsistencyIssues: consistency,
		Bias:              bias,
		Degraded:          degraded,
	}

	a.log.Info("analysis complete",
		zap.Float64("overall", overall),
		zap.String("grade", report.Grade),
		zap.Bool("degraded", degraded))

	return report, nil
}

func buildStats(sentences []model.SentenceAnalysis) model.QuickStats {
	stats := model.QuickStats{TotalSentences: len(sentences)}

	supported := 0
	for _, s := range sentences {
		switch s.Type {
		case model.SentenceFact:
			stats.FactCount++
		case model.SentenceAssumption:
			stats.AssumptionCount++
		case model.SentenceOpinion:
			stats.OpinionCount++
		case model.SentenceProjection:
			stats.ProjectionCount++
		}
		if s.Support == model.SupportSupported {
			supported++
		}
	}

	if len(sentences) > 0 {
		stats.SupportedPercentage = float64(supported) / float64(len(sentences)) * 100
	}
	return stats
}
