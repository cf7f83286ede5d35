package llm

import (
	"fmt"
	"strings"

	"github.com/quantfold/thesisgrade/internal/util"
)

// Prompt budgets. The thesis is truncated and only the leading
// classifications are sent so the request stays well under context limits.
const (
	promptTextBudget     = 3000
	promptSentenceBudget = 20
)

// SystemPrompt frames the adjudication task.
const SystemPrompt = `You are a professional investment thesis analyzer. Your job is to forensically examine investment theses and provide detailed scoring and analysis.

You will receive:
1. The raw thesis text
2. ML-extracted features (sentence classifications, entity counts, etc.)

Your task is to:
1. Score the LOGICAL COHERENCE component (0-20)
2. Validate/adjust ML sentence classifications for ambiguous cases
3. Detect any logical fallacies
4. Synthesize top strengths, weaknesses, and improvements

Be objective, cite specific sentences, and focus on structure/logic rather than agreement with the thesis.`

const analysisPromptTemplate = `
## THESIS TEXT:
%s

## ML-EXTRACTED FEATURES:
- Total sentences: %d
- Entities found: %d
- Source citations: %d
- Numerical data points: %d
- Risk vocabulary present: %d
- Vague/weasel words: %d

## ML SENTENCE CLASSIFICATIONS (Needs Your Validation):
%s

## YOUR TASKS:

### 1. LOGICAL COHERENCE SCORE (0-20)
Evaluate:
- Argument flow (0-10): Do claims logically lead to conclusions?
- Cause-effect validity (0-5): Are causal relationships sound?
- Absence of fallacies (0-5): Are there logical errors?

### 2. VALIDATE SENTENCE CLASSIFICATIONS
Review the ML classifications above. For any that seem incorrect, provide corrections.

### 3. FALLACY DETECTION
Identify any logical fallacies present (cherry-picking, circular reasoning, false causation, etc.)

### 4. SYNTHESIS
Provide:
- Top 3 strengths (with specific examples from text)
- Top 3 weaknesses (with sentence references)
- Missing elements (what the thesis lacks)
- Top 3 improvement priorities

## OUTPUT FORMAT (JSON):
{
    "logical_coherence": {
        "argument_flow": <0-10>,
        "cause_effect_validity": <0-5>,
        "absence_of_fallacies": <0-5>,
        "total": <0-20>,
        "notes": ["<specific observations>"]
    },
    "classification_corrections": [
        {"sentence_index": <n>, "ml_type": "<original>", "correct_type": "<corrected>", "reason": "<why>"}
    ],
    "fallacies_detected": [
        {"type": "<fallacy_type>", "sentence_reference": "<quote or index>", "explanation": "<why this is a fallacy>"}
    ],
    "synthesis": {
        "top_strengths": ["<strength 1>", "<strength 2>", "<strength 3>"],
        "top_weaknesses": ["<weakness 1>", "<weakness 2>", "<weakness 3>"],
        "missing_elements": ["<element 1>", "<element 2>"],
        "improvement_priorities": ["<priority 1>", "<priority 2>", "<priority 3>"]
    }
}
`

// BuildAnalysisPrompt renders the adjudication prompt within budget.
func BuildAnalysisPrompt(req AdjudicationRequest) string {
	text := util.TruncateRunes(req.ThesisText, promptTextBudget)

	var lines []string
	for i, s := range req.Sentences {
		if i >= promptSentenceBudget {
			break
		}
		excerpt := util.TruncateRunes(s.Text, 80)
		lines = append(lines, fmt.Sprintf("[%d] %s... → %s (conf: %.2f)",
			s.Index, excerpt, s.Type, s.Confidence))
	}

	return fmt.Sprintf(analysisPromptTemplate,
		text,
		req.Features.SentenceCount,
		req.Features.EntityCount,
		req.Features.SourceCitationCount,
		req.Features.NumericalDataCount,
		req.Features.RiskVocabularyCount,
		req.Features.VagueWordCount+req.Features.WeaselWordCount,
		strings.Join(lines, "\n"),
	)
}
