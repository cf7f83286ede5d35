package model

// ComponentScore is one of the five 0-20 scoring components.
// Breakdown carries the sub-scores with the inputs rounded to one decimal,
// Notes carries the raw counts so the score stays explainable.
type ComponentScore struct {
	Name      string             `json:"name"`
	Score     float64            `json:"score"`
	MaxScore  float64            `json:"max"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
	Notes     []string           `json:"notes,omitempty"`
}

// Percentage returns the score as a fraction of the component maximum.
func (c ComponentScore) Percentage() float64 {
	if c.MaxScore == 0 {
		return 0
	}
	return c.Score / c.MaxScore * 100
}

// MLFeatures are aggregate counts over the whole thesis text,
// computed once during preprocessing and read-only thereafter.
type MLFeatures struct {
	SentenceCount        int      `json:"sentence_count"`
	EntityCount          int      `json:"entity_count"`
	SourceCitationCount  int      `json:"source_citations"`
	NumericalDataCount   int      `json:"numerical_data"`
	DateReferences       []string `json:"date_references,omitempty"`
	VagueWordCount       int      `json:"vague_words"`
	WeaselWordCount      int      `json:"weasel_words"`
	CertaintyWordCount   int      `json:"certainty_words"`
	RiskVocabularyCount  int      `json:"risk_vocabulary"`
	ActionabilitySignals int      `json:"actionability_signals"`
	CompaniesMentioned   []string `json:"companies,omitempty"`
}
