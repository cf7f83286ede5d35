package model

// SentenceType categorizes the semantic nature of a sentence
type SentenceType string

const (
	SentenceFact       SentenceType = "FACT"       // Verifiable data, past events, sourced information
	SentenceAssumption SentenceType = "ASSUMPTION" // Unstated premises, conditions taken for granted
	SentenceOpinion    SentenceType = "OPINION"    // Subjective views, beliefs, evaluations
	SentenceProjection SentenceType = "PROJECTION" // Future predictions, forecasts, expectations
	SentenceContext    SentenceType = "CONTEXT"    // Background information, definitions
)

// ParseSentenceType validates a type string coming from an external source
// (e.g., an LLM correction). Returns false for anything outside the closed set.
func ParseSentenceType(s string) (SentenceType, bool) {
	switch SentenceType(s) {
	case SentenceFact, SentenceAssumption, SentenceOpinion, SentenceProjection, SentenceContext:
		return SentenceType(s), true
	}
	return "", false
}

// SupportLevel indicates how well a sentence's claim is backed in-text
type SupportLevel string

const (
	SupportSupported   SupportLevel = "SUPPORTED"   // Strong or moderate evidence marker present
	SupportPartial     SupportLevel = "PARTIAL"     // Numeric data but no explicit source
	SupportUnsupported SupportLevel = "UNSUPPORTED" // Weasel-worded claim with no backing
)

// SentenceRole is the sentence's rhetorical function within the argument
type SentenceRole string

const (
	RoleFoundation SentenceRole = "Foundation"
	RoleEvidence   SentenceRole = "Evidence"
	RoleBridge     SentenceRole = "Bridge"
	RoleConclusion SentenceRole = "Conclusion"
	RoleTangent    SentenceRole = "Tangent"
)

// SentenceAnalysis is the classification record for a single sentence.
// Index is 1-based and stable over the segmented sentence sequence.
type SentenceAnalysis struct {
	Index      int          `json:"index"`
	Text       string       `json:"text"`
	Type       SentenceType `json:"type"`
	Support    SupportLevel `json:"support"`
	Role       SentenceRole `json:"role"`
	Confidence float64      `json:"confidence"` // 0.0 - 1.0
	Issues     []string     `json:"issues,omitempty"`
	Entities   []string     `json:"entities,omitempty"`
}

// Clone returns a deep copy so later pipeline stages can patch sentences
// without mutating the classifier's output.
func (s SentenceAnalysis) Clone() SentenceAnalysis {
	out := s
	out.Issues = append([]string(nil), s.Issues...)
	out.Entities = append([]string(nil), s.Entities...)
	return out
}
