package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/quantfold/thesisgrade/internal/model"
)

type stubProvider struct {
	result *AdjudicationResult
	err    error
}

func (s *stubProvider) Name() string                       { return "stub" }
func (s *stubProvider) IsAvailable(_ context.Context) bool { return true }

func (s *stubProvider) Adjudicate(_ context.Context, _ AdjudicationRequest) (*AdjudicationResult, error) {
	return s.result, s.err
}

func sampleSentences() []model.SentenceAnalysis {
	return []model.SentenceAnalysis{
		{Index: 1, Text: "The thesis is that revenue will double.", Type: model.SentenceFact, Confidence: 0.8},
		{Index: 2, Text: "Margins expanded 300bps last year.", Type: model.SentenceFact, Confidence: 0.9},
		{Index: 3, Text: "The company will dominate the market.", Type: model.SentenceFact, Confidence: 0.5},
	}
}

func TestAdjudicatorNilProviderFallsBack(t *testing.T) {
	a := NewAdjudicator(nil, nil)
	result, degraded := a.Adjudicate(context.Background(), AdjudicationRequest{})

	if !degraded {
		t.Error("expected degraded result with nil provider")
	}
	if result.Coherence.Total != 12 {
		t.Errorf("total = %v, want fallback 12", result.Coherence.Total)
	}
}

func TestAdjudicatorProviderErrorFallsBack(t *testing.T) {
	a := NewAdjudicator(&stubProvider{err: errors.New("timeout")}, nil)
	result, degraded := a.Adjudicate(context.Background(), AdjudicationRequest{})

	if !degraded {
		t.Error("expected degraded result on provider error")
	}
	if result.Coherence.Notes[0] != "LLM analysis failed" {
		t.Errorf("notes = %v", result.Coherence.Notes)
	}
}

func TestAdjudicatorSuccessPassesThrough(t *testing.T) {
	want := &AdjudicationResult{Coherence: CoherenceScore{Total: 18}}
	a := NewAdjudicator(&stubProvider{result: want}, nil)
	result, degraded := a.Adjudicate(context.Background(), AdjudicationRequest{})

	if degraded {
		t.Error("unexpected degraded flag")
	}
	if result.Coherence.Total != 18 {
		t.Errorf("total = %v, want 18", result.Coherence.Total)
	}
}

func TestApplyAdjudicationCorrection(t *testing.T) {
	sentences := sampleSentences()
	result := &AdjudicationResult{
		Corrections: []Correction{
			{SentenceIndex: 3, MLType: "FACT", CorrectType: "PROJECTION", Reason: "future claim"},
		},
	}

	patched := ApplyAdjudication(sentences, result)

	if patched[2].Type != model.SentenceProjection {
		t.Errorf("type = %s, want PROJECTION", patched[2].Type)
	}
	if patched[2].Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", patched[2].Confidence)
	}
	// Original slice stays untouched.
	if sentences[2].Type != model.SentenceFact {
		t.Errorf("input mutated: type = %s", sentences[2].Type)
	}
}

func TestApplyAdjudicationInvalidTypeIgnored(t *testing.T) {
	sentences := sampleSentences()
	result := &AdjudicationResult{
		Corrections: []Correction{
			{SentenceIndex: 2, CorrectType: "SPECULATION"},
			{SentenceIndex: 99, CorrectType: "OPINION"},
		},
	}

	patched := ApplyAdjudication(sentences, result)

	if patched[1].Type != model.SentenceFact {
		t.Errorf("type = %s, want unchanged FACT", patched[1].Type)
	}
	if patched[1].Confidence != 0.9 {
		t.Errorf("confidence = %v, want unchanged 0.9", patched[1].Confidence)
	}
}

func TestApplyAdjudicationFallacyByIndex(t *testing.T) {
	sentences := sampleSentences()
	result := &AdjudicationResult{
		Fallacies: []Fallacy{
			{Type: "overgeneralization", SentenceReference: "sentence 3", Explanation: "unsupported dominance claim"},
		},
	}

	patched := ApplyAdjudication(sentences, result)

	want := "Fallacy: unsupported dominance claim"
	if len(patched[2].Issues) != 1 || patched[2].Issues[0] != want {
		t.Errorf("issues = %v, want [%q]", patched[2].Issues, want)
	}
}

func TestApplyAdjudicationFallacyByQuoteDeduped(t *testing.T) {
	sentences := sampleSentences()
	result := &AdjudicationResult{
		Fallacies: []Fallacy{
			// "300" resolves to an out-of-range index; the quote match
			// must still attach exactly one issue.
			{SentenceReference: "Margins expanded 300bps last year.", Explanation: "cherry-picked period"},
		},
	}

	patched := ApplyAdjudication(sentences, result)

	if len(patched[1].Issues) != 1 {
		t.Errorf("issues = %v, want exactly one entry", patched[1].Issues)
	}
}

func TestApplyAdjudicationIdempotent(t *testing.T) {
	sentences := sampleSentences()
	result := &AdjudicationResult{
		Corrections: []Correction{{SentenceIndex: 3, CorrectType: "PROJECTION"}},
		Fallacies:   []Fallacy{{SentenceReference: "3", Explanation: "unsupported"}},
	}

	once := ApplyAdjudication(sentences, result)
	twice := ApplyAdjudication(once, result)

	if twice[2].Type != once[2].Type || twice[2].Confidence != once[2].Confidence {
		t.Error("second application changed classification")
	}
	if len(twice[2].Issues) != len(once[2].Issues) {
		t.Errorf("issues grew on reapply: %v vs %v", once[2].Issues, twice[2].Issues)
	}
}
