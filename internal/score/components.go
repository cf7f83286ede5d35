// Package score computes the four deterministic scoring components.
// Each is 0-20 with a transparent breakdown; the fifth component
// (logical coherence) comes from the LLM adjudicator.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

const componentMax = 20

// Scorer computes component scores. CurrentYear anchors the recency
// window so results stay reproducible across runs.
type Scorer struct {
	CurrentYear int
}

// NewScorer creates a scorer anchored at the given year.
func NewScorer(currentYear int) *Scorer {
	return &Scorer{CurrentYear: currentYear}
}

// EvidenceQuality scores verifiable data, source attribution, and recency.
func (s *Scorer) EvidenceQuality(features model.MLFeatures) model.ComponentScore {
	dataScore := math.Min(10, float64(features.NumericalDataCount)*1.5+float64(features.EntityCount)*0.5)
	sourceScore := math.Min(5, float64(features.SourceCitationCount)*1.5)

	// A date is recent if it names any year in the trailing three-year window.
	recentDates := 0
	for _, d := range features.DateReferences {
		for y := s.CurrentYear - 2; y <= s.CurrentYear; y++ {
			if strings.Contains(d, fmt.Sprintf("%d", y)) {
				recentDates++
				break
			}
		}
	}
	recencyScore := math.Min(5, float64(recentDates)*1.5)

	total := dataScore + sourceScore + recencyScore

	return model.ComponentScore{
		Name:     "Evidence Quality",
		Score:    math.Min(componentMax, total),
		MaxScore: componentMax,
		Breakdown: map[string]float64{
			"verifiable_data_points": round1(dataScore),
			"source_attribution":     round1(sourceScore),
			"recency":                round1(recencyScore),
		},
		Notes: []string{
			fmt.Sprintf("Found %d numerical data points", features.NumericalDataCount),
			fmt.Sprintf("Found %d source citations", features.SourceCitationCount),
			fmt.Sprintf("Date references: %d", len(features.DateReferences)),
		},
	}
}

// Clarity scores stance, specific targets, and absence of vague language.
func (s *Scorer) Clarity(features model.MLFeatures, text string) model.ComponentScore {
	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	stanceCount := 0
	for _, w := range vocab.StanceWords {
		if strings.Contains(lower, w) {
			stanceCount++
		}
	}
	positionScore := math.Min(5, float64(stanceCount)*2)

	targetCount := 0
	for _, p := range vocab.TargetPatterns {
		targetCount += len(p.FindAllString(text, -1))
	}
	specificityScore := math.Min(10, float64(targetCount)*1.5)

	// Vague words per hundred words of text.
	vagueRatio := float64(features.VagueWordCount) / math.Max(float64(wordCount)/100, 1)
	ambiguityScore := math.Max(0, 5-vagueRatio*2)

	total := positionScore + specificityScore + ambiguityScore

	return model.ComponentScore{
		Name:     "Clarity & Specificity",
		Score:    math.Min(componentMax, total),
		MaxScore: componentMax,
		Breakdown: map[string]float64{
			"clear_position":       round1(positionScore),
			"specific_targets":     round1(specificityScore),
			"unambiguous_language": round1(ambiguityScore),
		},
		Notes: []string{
			fmt.Sprintf("Stance indicators: %d", stanceCount),
			fmt.Sprintf("Specific targets/dates: %d", targetCount),
			fmt.Sprintf("Vague words: %d", features.VagueWordCount),
		},
	}
}

// RiskAwareness scores downside scenarios, exit criteria, and sizing.
func (s *Scorer) RiskAwareness(text string) model.ComponentScore {
	lower := strings.ToLower(text)

	riskCount := countPresent(lower, vocab.RiskVocabulary["risk_terms"])
	downsideScore := math.Min(10, float64(riskCount)*2)

	exitCount := countPresent(lower, vocab.RiskVocabulary["mitigation_terms"])
	exitScore := math.Min(5, float64(exitCount)*2)

	sizingCount := countPresent(lower, vocab.SizingTerms)
	sizingScore := math.Min(5, float64(sizingCount)*2)

	total := downsideScore + exitScore + sizingScore

	return model.ComponentScore{
		Name:     "Risk Awareness",
		Score:    math.Min(componentMax, total),
		MaxScore: componentMax,
		Breakdown: map[string]float64{
			"downside_scenarios": round1(downsideScore),
			"exit_criteria":      round1(exitScore),
			"position_sizing":    round1(sizingScore),
		},
		Notes: []string{
			fmt.Sprintf("Risk terms found: %d", riskCount),
			fmt.Sprintf("Exit/mitigation terms: %d", exitCount),
			fmt.Sprintf("Sizing guidance: %t", sizingCount > 0),
		},
	}
}

// Actionability scores executable ideas, entry/exit signals, and monitoring.
func (s *Scorer) Actionability(text string) model.ComponentScore {
	lower := strings.ToLower(text)

	actionCount := countPresent(lower, vocab.ActionabilitySignals["strong"])
	tradeScore := math.Min(10, float64(actionCount)*2)

	entryCount := countPresent(lower, vocab.ActionabilitySignals["entry_exit"])
	signalScore := math.Min(5, float64(entryCount)*2)

	monitorCount := countPresent(lower, vocab.ActionabilitySignals["monitoring"])
	monitorScore := math.Min(5, float64(monitorCount)*2)

	total := tradeScore + signalScore + monitorScore

	return model.ComponentScore{
		Name:     "Actionability",
		Score:    math.Min(componentMax, total),
		MaxScore: componentMax,
		Breakdown: map[string]float64{
			"executable_trades":  round1(tradeScore),
			"entry_exit_signals": round1(signalScore),
			"monitoring_plan":    round1(monitorScore),
		},
		Notes: []string{
			fmt.Sprintf("Action terms: %d", actionCount),
			fmt.Sprintf("Entry/exit signals: %d", entryCount),
			fmt.Sprintf("Monitoring triggers: %d", monitorCount),
		},
	}
}

// countPresent counts how many terms appear at least once.
func countPresent(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			n++
		}
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
