package model

import "time"

// AuditEntry flags a mismatch between a sentence's assigned classification
// and what the detection patterns say it should be.
type AuditEntry struct {
	SentenceIndex int    `json:"sentence_index"`
	Statement     string `json:"statement"`
	ClassifiedAs  string `json:"classified_as"`
	ShouldBe      string `json:"should_be"`
	Issue         string `json:"issue"`
}

// LogicChainNode is one node of the claim → evidence → counter-argument chain.
type LogicChainNode struct {
	Claim             string  `json:"claim"`
	ClaimType         string  `json:"type"` // main_claim, supporting_evidence, counter_argument
	HasEvidence       bool    `json:"has_evidence"`
	EvidenceSentences []int   `json:"evidence_refs,omitempty"`
	Confidence        float64 `json:"confidence"`
}

const (
	ClaimMain       = "main_claim"
	ClaimSupporting = "supporting_evidence"
	ClaimCounter    = "counter_argument"
)

// FlaggedSentence references a sentence by index with a text excerpt.
type FlaggedSentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// OutdatedReference is a year mention older than the freshness window.
type OutdatedReference struct {
	Index int    `json:"index"`
	Year  string `json:"year"`
	Text  string `json:"text"`
}

// WeaknessReport groups detected weaknesses into language, logical and
// data categories. A flat categorized bag; entries reference sentences
// by index only.
type WeaknessReport struct {
	VagueTerms             []string            `json:"vague_terms,omitempty"`
	WeaselWords            []string            `json:"weasel_words,omitempty"`
	UnquantifiedClaims     []FlaggedSentence   `json:"unquantified_claims,omitempty"`
	MissingConnections     []string            `json:"missing_connections,omitempty"`
	CircularReasoningFlags []string            `json:"circular_reasoning,omitempty"`
	UnstatedAssumptions    []string            `json:"unstated_assumptions,omitempty"`
	UnsourcedStatistics    []FlaggedSentence   `json:"unsourced_statistics,omitempty"`
	OutdatedInfo           []OutdatedReference `json:"outdated_info,omitempty"`
	MissingContext         []string            `json:"missing_context,omitempty"`
}

// ConsistencyIssue flags a pairwise contradiction between two sentences.
type ConsistencyIssue struct {
	SentenceAIndex int    `json:"sentence_a_index"`
	SentenceBIndex int    `json:"sentence_b_index"`
	SentenceAText  string `json:"sentence_a_text"`
	SentenceBText  string `json:"sentence_b_text"`
	IssueType      string `json:"issue_type"`
	Explanation    string `json:"explanation"`
}

// BiasAnalysis is the document-level sentiment balance check.
type BiasAnalysis struct {
	IsBiased                bool     `json:"is_biased"`
	BiasScore               float64  `json:"bias_score"`
	PositiveRatio           float64  `json:"positive_ratio"`
	NegativeRatio           float64  `json:"negative_ratio"`
	CounterArgumentsPresent bool     `json:"counter_arguments_present"`
	Flags                   []string `json:"flags,omitempty"`
}

// Synthesis is the qualitative block produced by the LLM adjudicator.
type Synthesis struct {
	TopStrengths          []string `json:"top_strengths,omitempty"`
	TopWeaknesses         []string `json:"top_weaknesses,omitempty"`
	MissingElements       []string `json:"missing_elements,omitempty"`
	ImprovementPriorities []string `json:"improvement_priorities,omitempty"`
}

// QuickStats summarizes sentence type counts and support coverage.
type QuickStats struct {
	TotalSentences      int     `json:"total_sentences"`
	FactCount           int     `json:"facts"`
	AssumptionCount     int     `json:"assumptions"`
	OpinionCount        int     `json:"opinions"`
	ProjectionCount     int     `json:"projections"`
	SupportedPercentage float64 `json:"supported_percentage"`
}

// StrengthReport is the complete analysis result. Immutable once built;
// the sole object returned across the system boundary.
type StrengthReport struct {
	OverallScore float64   `json:"overall_score"` // 0-100, sum of the five components
	Grade        string    `json:"grade"`         // A/B/C/D/F
	AnalyzedAt   time.Time `json:"analyzed_at"`

	EvidenceQuality  ComponentScore `json:"evidence_quality"`
	LogicalCoherence ComponentScore `json:"logical_coherence"`
	Clarity          ComponentScore `json:"clarity"`
	RiskAwareness    ComponentScore `json:"risk_awareness"`
	Actionability    ComponentScore `json:"actionability"`

	Stats     QuickStats         `json:"quick_stats"`
	Features  MLFeatures         `json:"ml_features"`
	Sentences []SentenceAnalysis `json:"sentence_analyses"`
	Synthesis Synthesis          `json:"synthesis"`

	AuditTable        []AuditEntry       `json:"audit_table,omitempty"`
	LogicChain        []LogicChainNode   `json:"logic_chain,omitempty"`
	Weaknesses        WeaknessReport     `json:"weakness_report"`
	ConsistencyIssues []ConsistencyIssue `json:"consistency_issues,omitempty"`
	Bias              BiasAnalysis       `json:"bias_analysis"`

	// Degraded is true when the LLM adjudication fell back to the
	// deterministic payload. The report is still complete.
	Degraded bool `json:"degraded,omitempty"`
}

// CalculateGrade maps an overall score to a letter grade.
// Boundaries are inclusive: 90.0 is an A, 89.9 is a B.
func CalculateGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
