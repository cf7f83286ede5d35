package llm

import (
	"encoding/json"
	"fmt"

	"github.com/quantfold/thesisgrade/internal/model"
)

// Default coherence sub-scores, used when the response omits a field and
// for the full fallback payload when the call fails outright.
const (
	defaultArgumentFlow   = 6.0
	defaultCauseEffect    = 3.0
	defaultNoFallacies    = 3.0
	defaultCoherenceTotal = 12.0
)

// CoherenceScore is the LLM-evaluated logical coherence component.
type CoherenceScore struct {
	ArgumentFlow        float64  `json:"argument_flow"`
	CauseEffectValidity float64  `json:"cause_effect_validity"`
	AbsenceOfFallacies  float64  `json:"absence_of_fallacies"`
	Total               float64  `json:"total"`
	Notes               []string `json:"notes"`
}

// Correction overrides one sentence classification.
type Correction struct {
	SentenceIndex int    `json:"sentence_index"`
	MLType        string `json:"ml_type"`
	CorrectType   string `json:"correct_type"`
	Reason        string `json:"reason"`
}

// Fallacy is a detected logical fallacy. SentenceReference may be an
// index or a quote from the text.
type Fallacy struct {
	Type              string `json:"type"`
	SentenceReference string `json:"sentence_reference"`
	Explanation       string `json:"explanation"`
}

// AdjudicationResult is the validated LLM output.
type AdjudicationResult struct {
	Coherence   CoherenceScore  `json:"logical_coherence"`
	Corrections []Correction    `json:"classification_corrections"`
	Fallacies   []Fallacy       `json:"fallacies_detected"`
	Synthesis   model.Synthesis `json:"synthesis"`
}

// CoherenceComponent converts the coherence block into a report component.
func (r *AdjudicationResult) CoherenceComponent() model.ComponentScore {
	return model.ComponentScore{
		Name:     "Logical Coherence",
		Score:    r.Coherence.Total,
		MaxScore: 20,
		Breakdown: map[string]float64{
			"argument_flow":         r.Coherence.ArgumentFlow,
			"cause_effect_validity": r.Coherence.CauseEffectValidity,
			"absence_of_fallacies":  r.Coherence.AbsenceOfFallacies,
		},
		Notes: r.Coherence.Notes,
	}
}

// ParseAdjudication decodes the raw JSON body defensively. Every field
// is optional; missing or wrong-typed values fall back to safe defaults
// rather than failing the whole response.
func ParseAdjudication(raw []byte) (*AdjudicationResult, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode adjudication JSON: %w", err)
	}

	result := &AdjudicationResult{}

	coherence, _ := doc["logical_coherence"].(map[string]any)
	result.Coherence = CoherenceScore{
		ArgumentFlow:        clampScore(floatOr(coherence, "argument_flow", defaultArgumentFlow)),
		CauseEffectValidity: clampScore(floatOr(coherence, "cause_effect_validity", defaultCauseEffect)),
		AbsenceOfFallacies:  clampScore(floatOr(coherence, "absence_of_fallacies", defaultNoFallacies)),
		Total:               clampScore(floatOr(coherence, "total", defaultCoherenceTotal)),
		Notes:               stringsOr(coherence, "notes"),
	}

	if items, ok := doc["classification_corrections"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			result.Corrections = append(result.Corrections, Correction{
				SentenceIndex: int(floatOr(obj, "sentence_index", 0)),
				MLType:        stringOr(obj, "ml_type"),
				CorrectType:   stringOr(obj, "correct_type"),
				Reason:        stringOr(obj, "reason"),
			})
		}
	}

	if items, ok := doc["fallacies_detected"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			result.Fallacies = append(result.Fallacies, Fallacy{
				Type:              stringOr(obj, "type"),
				SentenceReference: anyToString(obj["sentence_reference"]),
				Explanation:       stringOr(obj, "explanation"),
			})
		}
	}

	synthesis, _ := doc["synthesis"].(map[string]any)
	result.Synthesis = model.Synthesis{
		TopStrengths:          stringsOr(synthesis, "top_strengths"),
		TopWeaknesses:         stringsOr(synthesis, "top_weaknesses"),
		MissingElements:       stringsOr(synthesis, "missing_elements"),
		ImprovementPriorities: stringsOr(synthesis, "improvement_priorities"),
	}

	return result, nil
}

// FallbackResult is the deterministic payload used when adjudication
// fails. Neutral middle scores; the report carries on degraded.
func FallbackResult() *AdjudicationResult {
	return &AdjudicationResult{
		Coherence: CoherenceScore{
			ArgumentFlow:        defaultArgumentFlow,
			CauseEffectValidity: defaultCauseEffect,
			AbsenceOfFallacies:  defaultNoFallacies,
			Total:               defaultCoherenceTotal,
			Notes:               []string{"LLM analysis failed"},
		},
		Synthesis: model.Synthesis{
			TopStrengths:  []string{"Unable to analyze - LLM error"},
			TopWeaknesses: []string{"Unable to analyze - LLM error"},
		},
	}
}

// clampScore bounds an LLM-supplied coherence value to the component
// score range. Models occasionally return scores on a 0-100 scale
// despite the prompt stating the 0-20 maximum.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 20 {
		return 20
	}
	return v
}

func floatOr(obj map[string]any, key string, def float64) float64 {
	if obj == nil {
		return def
	}
	if v, ok := obj[key].(float64); ok {
		return v
	}
	return def
}

func stringOr(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func stringsOr(obj map[string]any, key string) []string {
	if obj == nil {
		return nil
	}
	items, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// anyToString stringifies reference values that may arrive as either a
// quote or a bare index.
func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%d", int(t))
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
