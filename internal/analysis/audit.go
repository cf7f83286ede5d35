// Package analysis derives the secondary report sections from the
// classified sentences: the fact-vs-assumption audit, the logic chain,
// the categorized weakness report, consistency and bias checks.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quantfold/thesisgrade/internal/llm"
	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// auditTableCap keeps only the most significant entries.
const auditTableCap = 15

// auditMinWords skips headers and fragments.
const auditMinWords = 5

// BuildAuditTable flags statements whose presentation does not match
// their classification. Patterns fire in priority order; the first hit
// claims the sentence. LLM corrections are appended for sentences no
// pattern claimed.
func BuildAuditTable(sentences []model.SentenceAnalysis, corrections []llm.Correction) []model.AuditEntry {
	var entries []model.AuditEntry
	processed := make(map[int]bool)

	for _, s := range sentences {
		lower := strings.ToLower(s.Text)

		if len(strings.Fields(strings.TrimSpace(s.Text))) < auditMinWords {
			continue
		}
		if s.Type == model.SentenceContext {
			continue
		}

		hasSource := containsAny(lower, vocab.AuditSourceMarkers)
		hasNumbers := numericClaim(s.Text, lower)
		hasCertainty := containsAny(lower, vocab.AuditCertaintyWords)
		hasPrediction := containsAny(lower, vocab.AuditPredictionPhrases)
		hasOpinion := containsAny(lower, vocab.AuditOpinionWords)

		var entry *model.AuditEntry

		switch {
		// Numeric fact with no attribution.
		case s.Type == model.SentenceFact && hasNumbers && !hasSource:
			entry = &model.AuditEntry{
				ClassifiedAs: "FACT",
				ShouldBe:     "FACT",
				Issue:        "Contains numerical claim without source citation",
			}

		// Certainty stated as fact without evidence.
		case s.Type == model.SentenceFact && hasCertainty && !hasSource:
			word := firstPresent(lower, vocab.AuditCertaintyWords, "certainty language")
			entry = &model.AuditEntry{
				ClassifiedAs: "FACT",
				ShouldBe:     "ASSUMPTION",
				Issue:        fmt.Sprintf("Stated as certainty using '%s' without evidence", word),
			}

		// Future prediction presented as fact.
		case s.Type == model.SentenceFact && hasPrediction:
			entry = &model.AuditEntry{
				ClassifiedAs: "FACT",
				ShouldBe:     "PROJECTION",
				Issue:        "Future prediction presented as established fact",
			}

		// Subjective claim presented as fact.
		case s.Type == model.SentenceFact && hasOpinion && !hasSource && !hasNumbers:
			word := firstPresent(lower, vocab.AuditOpinionWords, "subjective term")
			entry = &model.AuditEntry{
				ClassifiedAs: "FACT",
				ShouldBe:     "OPINION",
				Issue:        fmt.Sprintf("Uses subjective term '%s' without objective evidence", word),
			}

		// Assumption asserted too definitively.
		case s.Type == model.SentenceAssumption && hasCertainty:
			entry = &model.AuditEntry{
				ClassifiedAs: "ASSUMPTION",
				ShouldBe:     "ASSUMPTION",
				Issue:        "Assumption stated with high certainty - should include qualifier",
			}

		// Unsupported fact needing verification.
		case s.Type == model.SentenceFact && s.Support == model.SupportUnsupported:
			entry = &model.AuditEntry{
				ClassifiedAs: "FACT",
				ShouldBe:     "FACT",
				Issue:        "Factual claim marked unsupported - needs verification or source",
			}
		}

		if entry != nil {
			entry.SentenceIndex = s.Index
			entry.Statement = s.Text
			entries = append(entries, *entry)
			processed[s.Index] = true
		}
	}

	for _, corr := range corrections {
		idx := corr.SentenceIndex
		if processed[idx] || idx <= 0 || idx > len(sentences) {
			continue
		}
		original := strings.ToUpper(corr.MLType)
		corrected := strings.ToUpper(corr.CorrectType)
		if original == "" || corrected == "" {
			continue
		}
		reason := corr.Reason
		if reason == "" {
			reason = "Classification reviewed by LLM"
		}
		entries = append(entries, model.AuditEntry{
			SentenceIndex: idx,
			Statement:     sentences[idx-1].Text,
			ClassifiedAs:  original,
			ShouldBe:      corrected,
			Issue:         reason,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SentenceIndex < entries[j].SentenceIndex
	})
	if len(entries) > auditTableCap {
		entries = entries[:auditTableCap]
	}
	return entries
}

// numericClaim reports a number paired with a financial unit.
func numericClaim(text, lower string) bool {
	hasDigit := strings.ContainsAny(text, "0123456789")
	if !hasDigit {
		return false
	}
	return strings.Contains(text, "%") || strings.Contains(text, "$") ||
		strings.Contains(lower, "million") || strings.Contains(lower, "billion")
}

func firstPresent(haystack string, needles []string, fallback string) string {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return n
		}
	}
	return fallback
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
