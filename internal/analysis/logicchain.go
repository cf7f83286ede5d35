package analysis

import (
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/vocab"
)

// mainClaimMinChars excludes headers from main-claim selection.
const mainClaimMinChars = 20

// mainClaimEvidenceCap limits the evidence references on the main claim.
const mainClaimEvidenceCap = 5

// BuildLogicChain maps the argument: main claim, supporting evidence,
// and whether counter-arguments are addressed at all.
func BuildLogicChain(sentences []model.SentenceAnalysis) []model.LogicChainNode {
	var chain []model.LogicChainNode
	if len(sentences) == 0 {
		return chain
	}

	// The main claim is the highest-scoring candidate: a "thesis" mention
	// dominates, then a Foundation role, then an early fact. Strictly
	// greater keeps the earliest sentence on ties.
	mainIdx := 0
	bestScore := -1
	for i, s := range sentences {
		if len(s.Text) < mainClaimMinChars {
			continue
		}
		lower := strings.ToLower(s.Text)

		score := 0
		if strings.Contains(lower, "thesis") {
			score += 10
		}
		if s.Role == model.RoleFoundation {
			score += 5
		}
		if s.Type == model.SentenceFact && i < 5 {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			mainIdx = i
		}
	}

	main := sentences[mainIdx]
	var evidenceRefs []int
	for _, s := range sentences {
		if s.Type == model.SentenceFact {
			evidenceRefs = append(evidenceRefs, s.Index)
		}
	}
	capped := evidenceRefs
	if len(capped) > mainClaimEvidenceCap {
		capped = capped[:mainClaimEvidenceCap]
	}
	chain = append(chain, model.LogicChainNode{
		Claim:             main.Text,
		ClaimType:         model.ClaimMain,
		HasEvidence:       len(evidenceRefs) > 0,
		EvidenceSentences: capped,
		Confidence:        main.Confidence,
	})

	for _, s := range sentences {
		if s.Role == model.RoleEvidence && s.Type == model.SentenceFact {
			chain = append(chain, model.LogicChainNode{
				Claim:             s.Text,
				ClaimType:         model.ClaimSupporting,
				HasEvidence:       true,
				EvidenceSentences: []int{s.Index},
				Confidence:        s.Confidence,
			})
		}
	}

	// One counter-argument node is enough to confirm they exist.
	for _, s := range sentences {
		if containsAny(strings.ToLower(s.Text), vocab.CounterPatterns) {
			chain = append(chain, model.LogicChainNode{
				Claim:             s.Text,
				ClaimType:         model.ClaimCounter,
				HasEvidence:       s.Support == model.SupportSupported,
				EvidenceSentences: []int{s.Index},
				Confidence:        s.Confidence,
			})
			break
		}
	}

	return chain
}
