package llm

import (
	"testing"
)

func TestParseAdjudicationComplete(t *testing.T) {
	raw := []byte(`{
		"logical_coherence": {
			"argument_flow": 8,
			"cause_effect_validity": 4,
			"absence_of_fallacies": 5,
			"total": 17,
			"notes": ["clear causal chain"]
		},
		"classification_corrections": [
			{"sentence_index": 3, "ml_type": "FACT", "correct_type": "PROJECTION", "reason": "future claim"}
		],
		"fallacies_detected": [
			{"type": "circular_reasoning", "sentence_reference": "5", "explanation": "restates the premise"}
		],
		"synthesis": {
			"top_strengths": ["specific targets"],
			"top_weaknesses": ["no risk section"],
			"missing_elements": ["exit criteria"],
			"improvement_priorities": ["add stop loss"]
		}
	}`)

	result, err := ParseAdjudication(raw)
	if err != nil {
		t.Fatalf("ParseAdjudication failed: %v", err)
	}

	if result.Coherence.Total != 17 {
		t.Errorf("total = %v, want 17", result.Coherence.Total)
	}
	if len(result.Corrections) != 1 || result.Corrections[0].CorrectType != "PROJECTION" {
		t.Errorf("corrections = %+v", result.Corrections)
	}
	if len(result.Fallacies) != 1 || result.Fallacies[0].SentenceReference != "5" {
		t.Errorf("fallacies = %+v", result.Fallacies)
	}
	if len(result.Synthesis.TopStrengths) != 1 {
		t.Errorf("synthesis = %+v", result.Synthesis)
	}
}

func TestParseAdjudicationMissingFieldsUseDefaults(t *testing.T) {
	result, err := ParseAdjudication([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseAdjudication failed: %v", err)
	}

	if result.Coherence.ArgumentFlow != 6 {
		t.Errorf("argument_flow = %v, want default 6", result.Coherence.ArgumentFlow)
	}
	if result.Coherence.CauseEffectValidity != 3 {
		t.Errorf("cause_effect = %v, want default 3", result.Coherence.CauseEffectValidity)
	}
	if result.Coherence.Total != 12 {
		t.Errorf("total = %v, want default 12", result.Coherence.Total)
	}
	if len(result.Corrections) != 0 || len(result.Fallacies) != 0 {
		t.Error("expected empty corrections and fallacies")
	}
}

func TestParseAdjudicationWrongTypesUseDefaults(t *testing.T) {
	raw := []byte(`{
		"logical_coherence": {"argument_flow": "high", "total": "good"},
		"classification_corrections": "none",
		"fallacies_detected": [{"sentence_reference": 4}]
	}`)

	result, err := ParseAdjudication(raw)
	if err != nil {
		t.Fatalf("ParseAdjudication failed: %v", err)
	}

	if result.Coherence.ArgumentFlow != 6 {
		t.Errorf("argument_flow = %v, want default 6", result.Coherence.ArgumentFlow)
	}
	if result.Coherence.Total != 12 {
		t.Errorf("total = %v, want default 12", result.Coherence.Total)
	}
	if len(result.Corrections) != 0 {
		t.Errorf("corrections = %+v, want none", result.Corrections)
	}
	// Numeric references are stringified.
	if len(result.Fallacies) != 1 || result.Fallacies[0].SentenceReference != "4" {
		t.Errorf("fallacies = %+v", result.Fallacies)
	}
}

func TestParseAdjudicationClampsOutOfRangeScores(t *testing.T) {
	// Some models score on a 0-100 scale regardless of the prompt.
	raw := []byte(`{
		"logical_coherence": {
			"argument_flow": 40,
			"cause_effect_validity": 30,
			"absence_of_fallacies": 30,
			"total": 100
		}
	}`)

	result, err := ParseAdjudication(raw)
	if err != nil {
		t.Fatalf("ParseAdjudication failed: %v", err)
	}

	if result.Coherence.Total != 20 {
		t.Errorf("total = %v, want clamped 20", result.Coherence.Total)
	}
	if result.Coherence.ArgumentFlow != 20 || result.Coherence.CauseEffectValidity != 20 || result.Coherence.AbsenceOfFallacies != 20 {
		t.Errorf("sub-scores = %v/%v/%v, want all clamped to 20",
			result.Coherence.ArgumentFlow, result.Coherence.CauseEffectValidity, result.Coherence.AbsenceOfFallacies)
	}
	if comp := result.CoherenceComponent(); comp.Score > comp.MaxScore {
		t.Errorf("component score %v exceeds max %v", comp.Score, comp.MaxScore)
	}
}

func TestParseAdjudicationClampsNegativeScores(t *testing.T) {
	raw := []byte(`{"logical_coherence": {"argument_flow": -5, "total": -3}}`)

	result, err := ParseAdjudication(raw)
	if err != nil {
		t.Fatalf("ParseAdjudication failed: %v", err)
	}

	if result.Coherence.Total != 0 {
		t.Errorf("total = %v, want clamped 0", result.Coherence.Total)
	}
	if result.Coherence.ArgumentFlow != 0 {
		t.Errorf("argument_flow = %v, want clamped 0", result.Coherence.ArgumentFlow)
	}
}

func TestParseAdjudicationInvalidJSON(t *testing.T) {
	if _, err := ParseAdjudication([]byte("not json at all")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestFallbackResult(t *testing.T) {
	result := FallbackResult()

	if result.Coherence.Total != 12 {
		t.Errorf("total = %v, want 12", result.Coherence.Total)
	}
	if len(result.Coherence.Notes) != 1 || result.Coherence.Notes[0] != "LLM analysis failed" {
		t.Errorf("notes = %v", result.Coherence.Notes)
	}
	if len(result.Synthesis.TopStrengths) != 1 || result.Synthesis.TopStrengths[0] != "Unable to analyze - LLM error" {
		t.Errorf("strengths = %v", result.Synthesis.TopStrengths)
	}
	if len(result.Synthesis.MissingElements) != 0 {
		t.Errorf("missing elements = %v, want empty", result.Synthesis.MissingElements)
	}
}

func TestCoherenceComponent(t *testing.T) {
	result := FallbackResult()
	comp := result.CoherenceComponent()

	if comp.Name != "Logical Coherence" {
		t.Errorf("name = %q", comp.Name)
	}
	if comp.Score != 12 || comp.MaxScore != 20 {
		t.Errorf("score = %v/%v", comp.Score, comp.MaxScore)
	}
	if comp.Breakdown["argument_flow"] != 6 {
		t.Errorf("breakdown = %v", comp.Breakdown)
	}
}

func TestExtractJSONObject(t *testing.T) {
	got := extractJSONObject("Here is the analysis:\n```json\n{\"a\": 1}\n```")
	if got != `{"a": 1}` {
		t.Errorf("extracted %q", got)
	}

	// No braces: pass through unchanged.
	if got := extractJSONObject("no json here"); got != "no json here" {
		t.Errorf("extracted %q", got)
	}
}
