// Package pipeline orchestrates the complete analysis: preprocessing,
// classification, deterministic scoring, LLM adjudication, and the
// derived report sections.
package pipeline

import (
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/nlp"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// BuildFeatures computes the aggregate counts over the whole thesis.
// Citation, risk and actionability counts tally every occurrence;
// vague/weasel/certainty counts tally distinct terms present.
func BuildFeatures(text string, sentences []string, entities []nlp.Entity) model.MLFeatures {
	lower := strings.ToLower(text)

	var companies []string
	seenCompany := make(map[string]bool)
	var dates []string
	seenDate := make(map[string]bool)

	for _, ent := range entities {
		switch ent.Label {
		case nlp.LabelOrg:
			if !seenCompany[ent.Text] {
				seenCompany[ent.Text] = true
				companies = append(companies, ent.Text)
			}
		case nlp.LabelDate:
			if !seenDate[ent.Text] {
				seenDate[ent.Text] = true
				dates = append(dates, ent.Text)
			}
		}
	}
	for _, year := range vocab.AnyYearPattern.FindAllString(text, -1) {
		if !seenDate[year] {
			seenDate[year] = true
			dates = append(dates, year)
		}
	}

	return model.MLFeatures{
		SentenceCount:        len(sentences),
		EntityCount:          len(entities),
		CompaniesMentioned:   companies,
		SourceCitationCount:  countOccurrences(lower, allEvidenceMarkers()),
		NumericalDataCount:   countNumericalData(text),
		DateReferences:       dates,
		VagueWordCount:       countDistinct(lower, vocab.VagueWords),
		WeaselWordCount:      countDistinct(lower, vocab.WeaselWords),
		CertaintyWordCount:   countDistinct(lower, vocab.CertaintyWords),
		RiskVocabularyCount:  countOccurrences(lower, flatten(vocab.RiskVocabulary)),
		ActionabilitySignals: countOccurrences(lower, flatten(vocab.ActionabilitySignals)),
	}
}

func countNumericalData(text string) int {
	n := 0
	for _, p := range vocab.FinancialPatterns {
		n += len(p.FindAllString(text, -1))
	}
	return n
}

func countOccurrences(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		n += strings.Count(lower, strings.ToLower(term))
	}
	return n
}

func countDistinct(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			n++
		}
	}
	return n
}

func allEvidenceMarkers() []string {
	var all []string
	for _, tier := range []string{"strong", "moderate", "weak"} {
		all = append(all, vocab.EvidenceMarkers[tier]...)
	}
	return all
}

func flatten(groups map[string][]string) []string {
	// Stable order is irrelevant for counting, but keep it cheap.
	var all []string
	for _, terms := range groups {
		all = append(all, terms...)
	}
	return all
}
