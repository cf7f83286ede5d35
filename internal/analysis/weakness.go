package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/util"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// excerptLen bounds the text excerpts carried in weakness entries.
const (
	excerptLen         = 60
	outdatedExcerptLen = 50
)

// outdatedYearWindow is how many years back a reference stays current.
const outdatedYearWindow = 2

// circularSimilarityThreshold flags a conclusion as restating the thesis.
const circularSimilarityThreshold = 0.6

var circularPatterns = []struct {
	re    *regexp.Regexp
	issue string
}{
	{regexp.MustCompile(`because .*(it is|they are|this is) (good|strong|solid|promising)`), "Uses conclusion as premise"},
	{regexp.MustCompile(`(proves|shows|demonstrates) that .*(because|since)`), "Circular logic: proof references itself"},
	{regexp.MustCompile(`(obviously|clearly|evidently) .*(therefore|thus|hence)`), "Assumes conclusion in premise"},
}

// similarityStopWords are excluded from the word-overlap comparison.
var similarityStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true,
	"in": true, "that": true, "it": true,
}

// BuildWeaknessReport categorizes weaknesses into language, logical,
// and data groups. currentYear anchors the outdated-info cutoff.
func BuildWeaknessReport(sentences []model.SentenceAnalysis, text string, currentYear int) model.WeaknessReport {
	var w model.WeaknessReport
	textLower := strings.ToLower(text)

	// Language weaknesses.
	for _, word := range vocab.VagueWords {
		if strings.Contains(textLower, word) {
			w.VagueTerms = append(w.VagueTerms, word)
		}
	}
	for _, word := range vocab.WeaselWords {
		if strings.Contains(textLower, word) {
			w.WeaselWords = append(w.WeaselWords, word)
		}
	}

	for _, s := range sentences {
		if s.Type != model.SentenceFact && s.Type != model.SentenceProjection {
			continue
		}
		hasDigits := vocab.DigitPattern.MatchString(s.Text)

		if !hasDigits && s.Support == model.SupportUnsupported {
			w.UnquantifiedClaims = append(w.UnquantifiedClaims, model.FlaggedSentence{
				Index: s.Index,
				Text:  excerpt(s.Text, excerptLen),
			})
		}

		// Numbers without comparison context say nothing on their own.
		if s.Type == model.SentenceFact && hasDigits {
			if !containsAny(strings.ToLower(s.Text), vocab.NumericContextWords) {
				w.MissingContext = append(w.MissingContext,
					fmt.Sprintf("Sentence %d: Numerical claim without context/comparison", s.Index))
			}
		}
	}

	// Logical weaknesses.
	if !containsAny(textLower, vocab.CausalConnectors["strong_causal"]) {
		w.MissingConnections = append(w.MissingConnections,
			"No explicit causal connectors found between claims")
	}

	for _, s := range sentences {
		if s.Type == model.SentenceProjection && !strings.Contains(strings.ToLower(s.Text), "if") {
			w.UnstatedAssumptions = append(w.UnstatedAssumptions,
				fmt.Sprintf("Sentence %d: Projection without stated conditions", s.Index))
		}
	}

	for _, s := range sentences {
		lower := strings.ToLower(s.Text)
		for _, p := range circularPatterns {
			if p.re.MatchString(lower) {
				w.CircularReasoningFlags = append(w.CircularReasoningFlags,
					fmt.Sprintf("Sentence %d: %s", s.Index, p.issue))
				break
			}
		}
	}

	// A conclusion that restates the foundation adds no new evidence.
	for _, conclusion := range byRole(sentences, model.RoleConclusion) {
		for _, foundation := range byRole(sentences, model.RoleFoundation) {
			if textSimilarity(conclusion.Text, foundation.Text) > circularSimilarityThreshold {
				w.CircularReasoningFlags = append(w.CircularReasoningFlags,
					fmt.Sprintf("Sentences %d and %d: Conclusion restates thesis without new evidence",
						foundation.Index, conclusion.Index))
			}
		}
	}

	// Data weaknesses.
	for _, s := range sentences {
		if vocab.StatPattern.MatchString(s.Text) {
			if !containsAny(strings.ToLower(s.Text), vocab.EvidenceMarkers["strong"]) {
				w.UnsourcedStatistics = append(w.UnsourcedStatistics, model.FlaggedSentence{
					Index: s.Index,
					Text:  excerpt(s.Text, excerptLen),
				})
			}
		}
	}

	for _, s := range sentences {
		for _, match := range vocab.YearPattern.FindAllString(s.Text, -1) {
			year, err := strconv.Atoi(match)
			if err != nil {
				continue
			}
			if year < currentYear-outdatedYearWindow {
				w.OutdatedInfo = append(w.OutdatedInfo, model.OutdatedReference{
					Index: s.Index,
					Year:  match,
					Text:  excerpt(s.Text, outdatedExcerptLen),
				})
			}
		}
	}

	return w
}

// textSimilarity is Jaccard word overlap after stop-word removal.
func textSimilarity(a, b string) float64 {
	wordsA := contentWords(a)
	wordsB := contentWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if !similarityStopWords[w] {
			words[w] = true
		}
	}
	return words
}

func byRole(sentences []model.SentenceAnalysis, role model.SentenceRole) []model.SentenceAnalysis {
	var out []model.SentenceAnalysis
	for _, s := range sentences {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out
}

func excerpt(text string, n int) string {
	return util.TruncateRunes(text, n)
}
