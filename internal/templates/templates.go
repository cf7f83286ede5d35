// Package templates provides the gold-standard template bank used for
// embedding-similarity voting during sentence classification.
package templates

import "github.com/quantfold/thesisgrade/internal/model"

// Gold-standard example sentences per semantic type. The bank embeds
// these once and votes by maximum cosine similarity.
var (
	factTemplates = []string{
		"Revenue increased 23% in Q3 2024.",
		"According to SEC filings, the company reported net income of $5.2 billion.",
		"The company announced earnings of $2.45 per share.",
		"EBIT margins expanded from 8% to 12% over the last two years.",
		"As disclosed in the 10-K filing, cash reserves stand at $15 billion.",
		"The quarterly report confirmed debt reduction of 20%.",
		"Operating cash flow grew by 15% year-over-year.",
		"The company has 45,000 employees across 30 countries.",
		"Net debt-to-EBITDA ratio improved to 1.5x from 2.3x.",
		"Dividend yield stands at 3.2% based on current price.",
		"JLR EBIT margins expanded, confirming operational improvement.",
		"Net automotive debt started falling consistently.",
	}

	opinionTemplates = []string{
		"I believe this stock is significantly undervalued.",
		"In my view, management has demonstrated excellent capital allocation.",
		"I think the market is overreacting to short-term concerns.",
		"This appears to be a compelling buying opportunity.",
		"We believe the company is well-positioned for growth.",
		"In my opinion, the risk-reward is highly favorable.",
		"Management seems competent and shareholder-friendly.",
		"I consider this to be one of the best opportunities in the sector.",
		"The valuation looks attractive relative to peers.",
		"We expect strong performance over the next few years.",
	}

	assumptionTemplates = []string{
		"Assuming market conditions remain stable, growth should continue.",
		"If the company maintains current margins, profitability will improve.",
		"This thesis relies on management executing their stated strategy.",
		"Given that interest rates stay low, financing costs will remain manageable.",
		"Provided regulatory approval is obtained, expansion can proceed.",
		"The analysis assumes no major disruption from new competitors.",
		"Contingent on successful product launches, revenue targets are achievable.",
		"Based on the assumption that demand remains strong through 2025.",
		"If global enterprises materially cut core IT budgets, earnings visibility would weaken.",
		"This assumes no protectionist regulations restrict outsourcing.",
	}

	projectionTemplates = []string{
		"The company will likely reach $10 billion in revenue by 2026.",
		"Expected to deliver 15% annual EPS growth over the next three years.",
		"Revenue is forecast to grow at a CAGR of 12% through 2027.",
		"Margins are projected to expand to 18% by Q4 2025.",
		"The stock is set to outperform the broader market.",
		"Analysts anticipate earnings of $5.00 per share next year.",
		"On track to achieve carbon neutrality by 2030.",
		"Poised to capture significant market share in the emerging EV segment.",
		"Management guides for 20% revenue growth in the coming fiscal year.",
		"The turnaround will likely result in improved free cash flow.",
	}

	contextTemplates = []string{
		"The company operates in the software-as-a-service industry.",
		"Founded in 1985, the firm has a long history of innovation.",
		"The global market for electric vehicles is estimated at $500 billion.",
		"This sector typically experiences cyclical demand patterns.",
		"Background: The company underwent restructuring in 2019.",
		"For context, the industry average P/E ratio is 25x.",
		"The thesis is structured around three key investment themes.",
		"Indian IT firms benefited as companies replaced high-cost in-house teams.",
		"Between 2018-2020, Tata Motors suffered from high debt and weak margins.",
		"From 2022 onward, Indian markets experienced high retail participation.",
	}
)

// byType returns the template sets keyed by sentence type, in a stable order.
func byType() []struct {
	Type      model.SentenceType
	Templates []string
} {
	return []struct {
		Type      model.SentenceType
		Templates []string
	}{
		{model.SentenceFact, factTemplates},
		{model.SentenceOpinion, opinionTemplates},
		{model.SentenceAssumption, assumptionTemplates},
		{model.SentenceProjection, projectionTemplates},
		{model.SentenceContext, contextTemplates},
	}
}
