package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/util"
)

// Renderer writes reports as JSON, formatted text, or a stdout summary.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full report to a JSON file.
func (r *Renderer) RenderJSON(report *model.StrengthReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the formatted report to a file.
func (r *Renderer) RenderMarkdown(report *model.StrengthReport, path string) error {
	if err := os.WriteFile(path, []byte(r.Format(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints the score banner and component bars to stdout.
func (r *Renderer) RenderSummary(report *model.StrengthReport) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("OVERALL SCORE: %.0f/100 (Grade: %s)\n", report.OverallScore, report.Grade)
	fmt.Println(strings.Repeat("=", 60))
	for _, comp := range components(report) {
		fmt.Printf("  %-22s %s [%.1f/20]\n", comp.Name, scoreBar(comp.Score), comp.Score)
	}
	if report.Degraded {
		fmt.Println("  (LLM adjudication unavailable - coherence and synthesis are fallback values)")
	}
}

// Format renders the full report as readable markdown.
func (r *Renderer) Format(report *model.StrengthReport) string {
	var b strings.Builder
	line := strings.Repeat("=", 80)

	b.WriteString(line + "\n")
	b.WriteString("THESIS STRENGTH REPORT\n")
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "OVERALL SCORE: [%.0f/100]\n", report.OverallScore)
	fmt.Fprintf(&b, "THESIS GRADE:  [%s]\n\n", report.Grade)

	b.WriteString("### COMPONENT SCORES\n")
	comps := components(report)
	maxLen := 0
	for _, c := range comps {
		if len(c.Name) > maxLen {
			maxLen = len(c.Name)
		}
	}
	for _, c := range comps {
		fmt.Fprintf(&b, "  %-*s %s [%.1f/20]\n", maxLen+2, c.Name, scoreBar(c.Score), c.Score)
	}
	b.WriteString("\n")

	b.WriteString("### QUICK STATS\n")
	fmt.Fprintf(&b, "  * Total Sentences: %d\n", report.Stats.TotalSentences)
	fmt.Fprintf(&b, "  * Facts: %d | Assumptions: %d | Opinions: %d\n",
		report.Stats.FactCount, report.Stats.AssumptionCount, report.Stats.OpinionCount)
	fmt.Fprintf(&b, "  * Supported Claims: %.1f%%\n\n", report.Stats.SupportedPercentage)

	b.WriteString("### TOP 3 STRENGTHS\n")
	writeNumbered(&b, report.Synthesis.TopStrengths, 3)
	b.WriteString("\n### TOP 3 WEAKNESSES\n")
	writeNumbered(&b, report.Synthesis.TopWeaknesses, 3)

	if len(report.Synthesis.MissingElements) > 0 {
		b.WriteString("\n### CRITICAL MISSING ELEMENTS\n")
		for _, m := range report.Synthesis.MissingElements {
			fmt.Fprintf(&b, "  [ ] %s\n", m)
		}
	}

	b.WriteString("\n### IMPROVEMENT PRIORITIES\n")
	writeNumbered(&b, report.Synthesis.ImprovementPriorities, 3)

	b.WriteString("\n### SENTENCE-LEVEL ANALYSIS\n\n")
	for _, s := range report.Sentences {
		fmt.Fprintf(&b, "[Sentence #%d]: %q\n", s.Index, s.Text)
		fmt.Fprintf(&b, "  TYPE:    %s\n", s.Type)
		fmt.Fprintf(&b, "  SUPPORT: %s\n", s.Support)
		fmt.Fprintf(&b, "  ROLE:    %s\n", s.Role)
		if len(s.Issues) > 0 {
			fmt.Fprintf(&b, "  ISSUES:  %s\n", strings.Join(s.Issues, ", "))
		}
		b.WriteString("\n")
	}

	if len(report.AuditTable) > 0 {
		b.WriteString("### FACT VS ASSUMPTION AUDIT\n\n")
		fmt.Fprintf(&b, "| %-3s | %-60s | %-15s | %-20s | %-40s |\n",
			"#", "Statement", "Classified As", "Should Be", "Issue")
		fmt.Fprintf(&b, "|%s|%s|%s|%s|%s|\n",
			strings.Repeat("-", 5), strings.Repeat("-", 62), strings.Repeat("-", 17),
			strings.Repeat("-", 22), strings.Repeat("-", 42))
		for _, e := range report.AuditTable {
			stmt := e.Statement
			if len(stmt) > 60 {
				stmt = util.TruncateRunes(stmt, 57) + "..."
			}
			fmt.Fprintf(&b, "| %-3d | %-60s | %-15s | %-20s | %-40s |\n",
				e.SentenceIndex, stmt, e.ClassifiedAs, e.ShouldBe, e.Issue)
		}
		b.WriteString("\n")
	}

	if len(report.LogicChain) > 0 {
		b.WriteString("### LOGIC CHAIN\n\n")
		writeLogicChain(&b, report.LogicChain)
		b.WriteString("\n")
	}

	writeWeaknesses(&b, report.Weaknesses)

	if len(report.ConsistencyIssues) > 0 {
		b.WriteString("### CONSISTENCY CHECK\n")
		for _, issue := range report.ConsistencyIssues {
			fmt.Fprintf(&b, "  [!] %s:\n", titleCase(issue.IssueType))
			fmt.Fprintf(&b, "      %s\n", issue.Explanation)
			fmt.Fprintf(&b, "      Conflict between Sentence %d and %d\n",
				issue.SentenceAIndex, issue.SentenceBIndex)
		}
		b.WriteString("\n")
	}

	ba := report.Bias
	b.WriteString("### BIAS ANALYSIS\n")
	status := "[OK] BALANCED"
	if ba.IsBiased {
		status = "[!] BIASED"
	}
	fmt.Fprintf(&b, "  Status: %s (Score: %.2f)\n", status, ba.BiasScore)
	fmt.Fprintf(&b, "  Sentiment: %.0f%% Positive / %.0f%% Negative\n", ba.PositiveRatio, ba.NegativeRatio)
	counter := "Missing"
	if ba.CounterArgumentsPresent {
		counter = "Present"
	}
	fmt.Fprintf(&b, "  Counter-arguments: %s\n", counter)
	if len(ba.Flags) > 0 {
		b.WriteString("  Flags:\n")
		for _, flag := range ba.Flags {
			fmt.Fprintf(&b, "  - %s\n", flag)
		}
	}

	b.WriteString(line + "\n")
	return b.String()
}

func components(report *model.StrengthReport) []model.ComponentScore {
	return []model.ComponentScore{
		report.EvidenceQuality,
		report.LogicalCoherence,
		report.Clarity,
		report.RiskAwareness,
		report.Actionability,
	}
}

// scoreBar renders a ten-slot bar for a 0-20 score.
func scoreBar(score float64) string {
	filled := int(score / 2)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", 10-filled)
}

func writeNumbered(b *strings.Builder, items []string, limit int) {
	for i, item := range items {
		if i >= limit {
			break
		}
		fmt.Fprintf(b, "  %d. %s\n", i+1, item)
	}
}

func writeLogicChain(b *strings.Builder, chain []model.LogicChainNode) {
	var main *model.LogicChainNode
	for i := range chain {
		if chain[i].ClaimType == model.ClaimMain {
			main = &chain[i]
			break
		}
	}
	if main == nil {
		b.WriteString("No clear main logic chain detected.\n")
		return
	}

	fmt.Fprintf(b, "Main Claim: %s\n", main.Claim)

	for _, node := range chain {
		if node.ClaimType != model.ClaimSupporting {
			continue
		}
		check := "[ ]"
		present := "Missing"
		if node.HasEvidence {
			check = "[x]"
			present = "Present"
		}
		ref := "?"
		if len(node.EvidenceSentences) > 0 {
			ref = fmt.Sprintf("%d", node.EvidenceSentences[0])
		}
		fmt.Fprintf(b, "+-- Supporting Point [%s]\n", check)
		fmt.Fprintf(b, "|   +-- Evidence: %s (Sentence #%s)\n", present, ref)
		fmt.Fprintf(b, "|       %q\n", excerptText(node.Claim, 80))
	}

	var counters []model.LogicChainNode
	for _, node := range chain {
		if node.ClaimType == model.ClaimCounter {
			counters = append(counters, node)
		}
	}
	addressed := "No"
	if len(counters) > 0 {
		addressed = "Yes"
	}
	fmt.Fprintf(b, "+-- Counter-arguments addressed: [%s]\n", addressed)
	for _, c := range counters {
		fmt.Fprintf(b, "    +-- %q\n", excerptText(c.Claim, 80))
	}
}

func writeWeaknesses(b *strings.Builder, w model.WeaknessReport) {
	b.WriteString("### CATEGORIZED WEAKNESSES\n\n")

	b.WriteString("**LANGUAGE WEAKNESSES:**\n")
	if len(w.VagueTerms) > 0 {
		fmt.Fprintf(b, "  - Vague terms: %s\n", strings.Join(w.VagueTerms, ", "))
	}
	if len(w.WeaselWords) > 0 {
		fmt.Fprintf(b, "  - Weasel words: %s\n", strings.Join(w.WeaselWords, ", "))
	}
	if len(w.UnquantifiedClaims) > 0 {
		fmt.Fprintf(b, "  - Unquantified claims: %d\n", len(w.UnquantifiedClaims))
		for _, item := range w.UnquantifiedClaims {
			fmt.Fprintf(b, "    * Sentence %d: \"%s...\"\n", item.Index, item.Text)
		}
	}

	b.WriteString("\n**LOGICAL WEAKNESSES:**\n")
	for _, mc := range w.MissingConnections {
		fmt.Fprintf(b, "  - %s\n", mc)
	}
	if len(w.UnstatedAssumptions) > 0 {
		fmt.Fprintf(b, "  - Unstated assumptions: %d\n", len(w.UnstatedAssumptions))
		for _, ua := range w.UnstatedAssumptions {
			fmt.Fprintf(b, "    * %s\n", ua)
		}
	}
	if len(w.CircularReasoningFlags) > 0 {
		fmt.Fprintf(b, "  - Circular reasoning: %d\n", len(w.CircularReasoningFlags))
		for _, flag := range w.CircularReasoningFlags {
			fmt.Fprintf(b, "    * %s\n", flag)
		}
	}

	b.WriteString("\n**DATA WEAKNESSES:**\n")
	if len(w.UnsourcedStatistics) > 0 {
		fmt.Fprintf(b, "  - Unsourced statistics: %d\n", len(w.UnsourcedStatistics))
		for _, us := range w.UnsourcedStatistics {
			fmt.Fprintf(b, "    * Sentence %d: \"%s...\"\n", us.Index, us.Text)
		}
	}
	if len(w.OutdatedInfo) > 0 {
		fmt.Fprintf(b, "  - Outdated information: %d\n", len(w.OutdatedInfo))
		for _, oi := range w.OutdatedInfo {
			fmt.Fprintf(b, "    * Sentence %d reference to %s\n", oi.Index, oi.Year)
		}
	}
	for _, mc := range w.MissingContext {
		fmt.Fprintf(b, "  - %s\n", mc)
	}
	b.WriteString("\n")
}

func titleCase(snake string) string {
	parts := strings.Split(snake, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func excerptText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return util.TruncateRunes(text, n) + "..."
}
