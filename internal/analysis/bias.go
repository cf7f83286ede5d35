package analysis

import (
	"math"
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// Bias tuning constants. Counter-arguments halve the imbalance; a score
// above the threshold with no counter-arguments marks the thesis biased.
const (
	counterArgumentDamping = 0.5
	biasThreshold          = 0.6
	lopsidedRatioFlag      = 80.0
)

// DetectBias measures sentiment balance across the whole text.
func DetectBias(text string) model.BiasAnalysis {
	lower := strings.ToLower(text)

	posCount := countPresent(lower, vocab.PositiveWords)
	negCount := countPresent(lower, vocab.NegativeWords)
	total := posCount + negCount
	if total == 0 {
		total = 1
	}

	positiveRatio := float64(posCount) / float64(total) * 100
	negativeRatio := float64(negCount) / float64(total) * 100

	counterPresent := containsAny(lower, vocab.BiasCounterPatterns)

	imbalance := math.Abs(positiveRatio-negativeRatio) / 100
	damping := 1.0
	if counterPresent {
		damping = counterArgumentDamping
	}
	biasScore := imbalance * damping

	isBiased := biasScore > biasThreshold && !counterPresent

	var flags []string
	if positiveRatio > lopsidedRatioFlag {
		flags = append(flags, "Overly positive sentiment (>80% positive)")
	}
	if negativeRatio > lopsidedRatioFlag {
		flags = append(flags, "Overly negative sentiment (>80% negative)")
	}
	if !counterPresent {
		flags = append(flags, "No counter-arguments or alternative scenarios presented")
	}

	return model.BiasAnalysis{
		IsBiased:                isBiased,
		BiasScore:               biasScore,
		PositiveRatio:           positiveRatio,
		NegativeRatio:           negativeRatio,
		CounterArgumentsPresent: counterPresent,
		Flags:                   flags,
	}
}

func countPresent(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			n++
		}
	}
	return n
}
