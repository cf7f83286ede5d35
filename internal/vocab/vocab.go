// Package vocab holds the investment-domain vocabulary banks used for
// feature extraction and sentence classification. Pure data, no behavior.
package vocab

import "regexp"

// EvidenceMarkers indicate supported claims, keyed by strength.
var EvidenceMarkers = map[string][]string{
	"strong": {
		"according to", "reported", "data shows", "sec filing",
		"financial statements", "confirmed", "announced", "disclosed",
		"quarterly report", "annual report", "10-k", "10-q",
	},
	"moderate": {
		"suggests", "indicates", "based on", "research shows",
		"analysis indicates", "historically",
	},
	"weak": {
		"seems", "appears", "might indicate", "could suggest",
	},
}

// VagueWords are imprecise quantifiers.
var VagueWords = []string{
	"some", "many", "most", "often", "usually", "significant",
	"substantial", "considerable", "various", "numerous",
}

// WeaselWords hedge a claim without committing to it.
var WeaselWords = []string{
	"might", "could", "possibly", "potentially", "arguably",
	"perhaps", "probably", "likely", "tend to", "generally",
}

// CertaintyWords signal absolute commitment.
var CertaintyWords = []string{
	"definitely", "certainly", "always", "never", "absolutely",
	"guaranteed", "undoubtedly", "without doubt",
}

// RiskVocabulary groups risk-related terms by function.
var RiskVocabulary = map[string][]string{
	"risk_terms": {
		"risk", "downside", "bear case", "if fails", "could break",
		"what could go wrong", "threats", "challenges", "headwinds",
	},
	"mitigation_terms": {
		"stop loss", "exit if", "position size", "limit exposure",
		"hedge", "diversify", "cap allocation", "monitor",
	},
	"scenario_terms": {
		"if", "scenario", "in case", "should", "worst case",
		"bear case", "stress test",
	},
}

// ActionabilitySignals group trade-execution terms by function.
var ActionabilitySignals = map[string][]string{
	"strong": {
		"buy", "sell", "enter", "exit", "allocate", "position",
		"trade", "invest", "accumulate", "book profits",
	},
	"entry_exit": {
		"entry point", "exit when", "target price", "stop loss at",
		"buy at", "sell at", "take profit",
	},
	"monitoring": {
		"watch for", "monitor", "track", "reassess if", "review when",
		"catalyst", "trigger", "signal",
	},
	"sizing": {
		"position size", "allocation", "% of portfolio", "weight",
		"exposure", "cap at", "limit to",
	},
}

// SizingTerms are the position-sizing markers used by the risk scorer.
var SizingTerms = []string{
	"position size", "allocation", "% of portfolio", "weight", "cap",
}

// StanceWords signal a clear directional position.
var StanceWords = []string{
	"bullish", "bearish", "buy", "sell", "long", "short", "invest", "avoid",
}

// Sentence type indicators.
var (
	FactIndicators = []string{
		"reported", "announced", "disclosed", "confirmed", "released",
		"grew", "increased", "decreased", "fell", "rose", "expanded",
	}
	OpinionIndicators = []string{
		"i think", "i believe", "in my view", "in my opinion",
		"we expect", "we believe", "appears to be", "seems",
	}
	AssumptionIndicators = []string{
		"assuming", "if", "given that", "provided that", "contingent on",
		"depends on", "relies on", "based on the assumption",
	}
	ProjectionIndicators = []string{
		"will", "expected to", "forecast", "projected", "anticipated",
		"likely to", "set to", "poised to", "on track to",
	}
)

// FinancialPatterns match numeric financial data points.
var FinancialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+\.?\d*[BMK]?`),  // dollar amounts
	regexp.MustCompile(`₹[\d,]+\.?\d*[LCK]?`),   // rupee amounts
	regexp.MustCompile(`\d+\.?\d*%`),            // percentages
	regexp.MustCompile(`\d+\.?\d*x`),            // multiples (P/E, EV/EBITDA)
	regexp.MustCompile(`Q[1-4]\s*\d{4}`),        // quarter references
	regexp.MustCompile(`\d{4}[-–]\d{2,4}`),      // year ranges
}

// Numeric shorthands used by the classifier.
var (
	PercentPattern  = regexp.MustCompile(`\d+\.?\d*%`)
	CurrencyPattern = regexp.MustCompile(`\$[\d,]+|₹[\d,]+`)
	StatPattern     = regexp.MustCompile(`\d+%|\$[\d,]+|₹[\d,]+`)
	YearPattern     = regexp.MustCompile(`\b(20\d{2})\b`)
	AnyYearPattern  = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)
	DigitPattern    = regexp.MustCompile(`\d+`)
)

// TargetPatterns match specific price/date targets for the clarity scorer.
var TargetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,.]+`),
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`Q[1-4]\s*\d{4}`),
	regexp.MustCompile(`\d{4}[-–]\d{2,4}`),
}

// FinancialStatementRefs indicate factual grounding in filings.
var FinancialStatementRefs = []string{
	"10-k", "10-q", "annual report", "quarterly report", "sec filing",
	"balance sheet", "income statement", "cash flow statement",
	"earnings call", "investor presentation", "management commentary",
	"financial statements", "audited report", "proxy statement",
}

// CredibleSources boost evidence quality.
var CredibleSources = []string{
	"bloomberg", "reuters", "wall street journal", "financial times",
	"sec", "sebi", "management guidance", "analyst estimates", "consensus",
	"company filings", "official announcement", "press release",
	"quarterly earnings", "annual general meeting", "investor day",
}

// TimeBoundPatterns indicate specific, verifiable claims.
var TimeBoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)in Q[1-4]\s*\d{4}`),
	regexp.MustCompile(`(?i)FY\d{2,4}`),
	regexp.MustCompile(`(?i)(H1|H2)\s*\d{4}`),
	regexp.MustCompile(`\d{4}[-–]\d{2,4}`),
	regexp.MustCompile(`(?i)over the (past|last|next) \d+ (years?|quarters?|months?)`),
	regexp.MustCompile(`(?i)(YoY|QoQ|MoM)`),
	regexp.MustCompile(`(?i)CAGR of \d+%`),
	regexp.MustCompile(`(?i)(since|from) \d{4}`),
}

// CausalConnectors group logical-structure connectors by function.
var CausalConnectors = map[string][]string{
	"strong_causal": {
		"because", "therefore", "thus", "hence", "as a result",
		"consequently", "due to", "caused by", "leading to",
	},
	"conditional": {"if", "when", "unless", "provided that", "in case"},
	"contrast":    {"however", "but", "although", "despite", "nevertheless", "yet"},
	"additive":    {"moreover", "furthermore", "additionally", "also", "in addition"},
}

// ConcludingConnectors mark a sentence as a conclusion.
var ConcludingConnectors = []string{"therefore", "thus", "hence"}

// CertaintyLevelOrder fixes the check order for certainty analysis.
var CertaintyLevelOrder = []string{"high", "medium", "low", "hedged"}

// CertaintyLevels categorize certainty language.
var CertaintyLevels = map[string][]string{
	"high": {
		"definitely", "certainly", "always", "never", "absolutely",
		"guaranteed", "undoubtedly", "without doubt", "must", "will definitely",
	},
	"medium": {
		"likely", "probably", "should", "expected", "typically",
		"generally", "usually", "tends to", "often",
	},
	"low": {
		"might", "could", "possibly", "may", "perhaps",
		"potentially", "conceivably", "arguably",
	},
	"hedged": {
		"assuming", "if", "provided that", "contingent on", "depends on",
		"subject to", "given that", "in the event",
	},
}

// OverconfidenceIndicators pair certainty with missing evidence.
var OverconfidenceIndicators = []string{
	"will definitely", "guaranteed to", "certainly will", "must happen",
	"no doubt", "100%", "impossible to fail", "cannot lose",
}

// Audit-table detection lists.
var (
	AuditCertaintyWords = []string{
		"will", "shall", "must", "definitely", "certainly", "always",
		"never", "guaranteed", "undoubtedly", "inevitably", "surely",
		"bound to", "destined",
	}
	AuditPredictionPhrases = []string{
		"will be", "will become", "going to", "is expected to",
		"projected to", "forecast to", "destined to", "bound to",
		"will likely", "will probably", "will continue",
	}
	AuditOpinionWords = []string{
		"best", "worst", "greatest", "superior", "inferior",
		"optimal", "ideal", "perfect", "excellent", "terrible",
		"amazing", "outstanding", "remarkable", "exceptional",
	}
	AuditSourceMarkers = []string{
		"according to", "research shows", "data indicates", "studies show",
		"reported by", "source:", "based on", "per ", "as stated in",
		"as per", "citing", "referenced in", "documented in",
		"quarterly report", "annual report", "sec filing", "10-k", "10-q",
	}
)

// CounterPatterns mark contrast/risk language (counter-argument presence).
var CounterPatterns = []string{
	"however", "but", "on the other hand", "risk", "bear case", "downside",
}

// BiasCounterPatterns is the slightly wider set used by the bias detector.
var BiasCounterPatterns = []string{
	"however", "but", "on the other hand", "alternatively", "risk",
	"downside", "bear case",
}

// Stance keyword sets for the consistency check.
var (
	BullishWords = []string{"bullish", "buy", "long", "upside", "growth", "expand", "positive"}
	BearishWords = []string{"bearish", "sell", "short", "downside", "contraction", "negative", "decline"}
)

// Sentiment word lists for bias detection.
var (
	PositiveWords = []string{"growth", "expand", "profit", "gain", "upside", "bullish", "opportunity", "strong", "success"}
	NegativeWords = []string{"risk", "loss", "decline", "downside", "bearish", "threat", "weak", "failure", "challenge"}
)

// NumericContextWords establish comparison context around a number.
var NumericContextWords = []string{
	"growth", "decline", "increase", "decrease", "margin", "yoy",
	"cagr", "compared", "versus", "vs", "from", "to",
}
