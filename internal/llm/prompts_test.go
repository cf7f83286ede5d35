package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quantfold/thesisgrade/internal/model"
)

func TestBuildAnalysisPromptTruncatesOnRuneBoundaries(t *testing.T) {
	// Both the thesis budget and the per-sentence excerpt land inside
	// a 3-byte rune; the prompt must stay valid UTF-8.
	req := AdjudicationRequest{
		ThesisText: "x" + strings.Repeat("市", promptTextBudget),
		Sentences: []model.SentenceAnalysis{
			{Index: 1, Text: strings.Repeat("値", 40), Type: model.SentenceFact, Confidence: 0.9},
		},
	}

	prompt := BuildAnalysisPrompt(req)
	if !utf8.ValidString(prompt) {
		t.Fatal("prompt contains a split multi-byte rune")
	}
}

func TestBuildAnalysisPromptCapsSentences(t *testing.T) {
	var sentences []model.SentenceAnalysis
	for i := 0; i < promptSentenceBudget+5; i++ {
		sentences = append(sentences, model.SentenceAnalysis{
			Index: i + 1, Text: "Revenue grew.", Type: model.SentenceFact, Confidence: 0.8,
		})
	}

	prompt := BuildAnalysisPrompt(AdjudicationRequest{ThesisText: "thesis", Sentences: sentences})

	if strings.Contains(prompt, "[21]") {
		t.Errorf("prompt includes sentence beyond the budget of %d", promptSentenceBudget)
	}
	if !strings.Contains(prompt, "[20]") {
		t.Error("prompt missing the last in-budget sentence")
	}
}
