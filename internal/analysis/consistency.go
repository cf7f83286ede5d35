package analysis

import (
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// CheckConsistency flags a bullish/bearish mix presented without any
// contrast connector to reconcile it. Both stances appearing is fine in
// a balanced thesis; unexplained, it reads as a contradiction.
func CheckConsistency(sentences []model.SentenceAnalysis) []model.ConsistencyIssue {
	var issues []model.ConsistencyIssue

	var bullish, bearish []int
	for _, s := range sentences {
		lower := strings.ToLower(s.Text)
		if containsAny(lower, vocab.BullishWords) {
			bullish = append(bullish, s.Index)
		}
		if containsAny(lower, vocab.BearishWords) {
			bearish = append(bearish, s.Index)
		}
	}

	if len(bullish) == 0 || len(bearish) == 0 {
		return issues
	}

	hasContrast := false
	for _, s := range sentences {
		lower := strings.ToLower(s.Text)
		if strings.Contains(lower, "however") || strings.Contains(lower, "but") {
			hasContrast = true
			break
		}
	}
	if hasContrast {
		return issues
	}

	issues = append(issues, model.ConsistencyIssue{
		SentenceAIndex: bullish[0],
		SentenceBIndex: bearish[0],
		SentenceAText:  sentenceText(sentences, bullish[0]),
		SentenceBText:  sentenceText(sentences, bearish[0]),
		IssueType:      "conflicting_stance",
		Explanation:    "Thesis contains both bullish and bearish sentiments without clear contrast/explanation",
	})
	return issues
}

func sentenceText(sentences []model.SentenceAnalysis, index int) string {
	if index >= 1 && index <= len(sentences) {
		return sentences[index-1].Text
	}
	return ""
}
