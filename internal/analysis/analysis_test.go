package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/quantfold/thesisgrade/internal/llm"
	"github.com/quantfold/thesisgrade/internal/model"
)

func TestAuditFlagsUnsourcedNumericFact(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "Revenue grew 200% in the last fiscal year.", Type: model.SentenceFact},
	}

	entries := BuildAuditTable(sentences, nil)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.ClassifiedAs != "FACT" || got.ShouldBe != "FACT" {
		t.Errorf("classified %s -> %s", got.ClassifiedAs, got.ShouldBe)
	}
	if got.Issue != "Contains numerical claim without source citation" {
		t.Errorf("issue = %q", got.Issue)
	}
}

func TestAuditSourcedFactNotFlagged(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "According to the annual report, revenue grew 200% last year.", Type: model.SentenceFact},
	}

	if entries := BuildAuditTable(sentences, nil); len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}

func TestAuditCertaintyAsFact(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "The company must capture the entire addressable segment.", Type: model.SentenceFact},
	}

	entries := BuildAuditTable(sentences, nil)

	if len(entries) != 1 || entries[0].ShouldBe != "ASSUMPTION" {
		t.Fatalf("entries = %+v, want FACT->ASSUMPTION", entries)
	}
	if !strings.Contains(entries[0].Issue, "'must'") {
		t.Errorf("issue = %q, want the certainty word named", entries[0].Issue)
	}
}

func TestAuditSkipsShortAndContext(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "Overview.", Type: model.SentenceFact},
		{Index: 2, Text: "Because of this the sector is broadly growing at 20% annually.", Type: model.SentenceContext},
	}

	if entries := BuildAuditTable(sentences, nil); len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}

func TestAuditAppendsLLMCorrections(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "Management quality in this sector tends toward the mediocre.", Type: model.SentenceOpinion},
	}
	corrections := []llm.Correction{
		{SentenceIndex: 1, MLType: "OPINION", CorrectType: "CONTEXT", Reason: "background observation"},
	}

	entries := BuildAuditTable(sentences, corrections)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].ClassifiedAs != "OPINION" || entries[0].ShouldBe != "CONTEXT" {
		t.Errorf("entry = %+v", entries[0])
	}
	if entries[0].Issue != "background observation" {
		t.Errorf("issue = %q", entries[0].Issue)
	}
}

func TestAuditCapAndOrder(t *testing.T) {
	var sentences []model.SentenceAnalysis
	for i := 20; i >= 1; i-- {
		sentences = append(sentences, model.SentenceAnalysis{
			Index: i,
			Text:  fmt.Sprintf("Segment number %d grew by 50%% over the period.", i),
			Type:  model.SentenceFact,
		})
	}

	entries := BuildAuditTable(sentences, nil)

	if len(entries) != 15 {
		t.Fatalf("entries = %d, want cap of 15", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].SentenceIndex < entries[i-1].SentenceIndex {
			t.Fatal("entries not sorted by sentence index")
		}
	}
	if entries[0].SentenceIndex != 1 {
		t.Errorf("first entry index = %d, want 1", entries[0].SentenceIndex)
	}
}

func TestLogicChainMainClaimPrefersThesisKeyword(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "Background on the semiconductor industry overall.", Type: model.SentenceContext, Role: model.RoleFoundation},
		{Index: 2, Text: "Our thesis is that the company doubles earnings in three years.", Type: model.SentenceProjection, Role: model.RoleBridge},
		{Index: 3, Text: "Revenue grew 40% in the most recent quarter.", Type: model.SentenceFact, Role: model.RoleEvidence},
	}

	chain := BuildLogicChain(sentences)

	if len(chain) == 0 || chain[0].ClaimType != model.ClaimMain {
		t.Fatalf("chain = %+v", chain)
	}
	if !strings.Contains(chain[0].Claim, "thesis") {
		t.Errorf("main claim = %q, want the thesis sentence", chain[0].Claim)
	}
	if !chain[0].HasEvidence {
		t.Error("main claim should report available evidence")
	}
}

func TestLogicChainCounterArgumentSingleNode(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "The long thesis rests on subscription growth expanding.", Type: model.SentenceProjection, Role: model.RoleFoundation},
		{Index: 2, Text: "However, churn is a risk worth monitoring closely.", Type: model.SentenceContext, Role: model.RoleBridge},
		{Index: 3, Text: "But the downside seems limited given the balance sheet.", Type: model.SentenceOpinion, Role: model.RoleBridge},
	}

	chain := BuildLogicChain(sentences)

	counters := 0
	for _, node := range chain {
		if node.ClaimType == model.ClaimCounter {
			counters++
		}
	}
	if counters != 1 {
		t.Errorf("counter nodes = %d, want exactly 1", counters)
	}
}

func TestWeaknessOutdatedInfoUsesInjectedYear(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "The 2020 annual report showed record margins.", Type: model.SentenceFact},
		{Index: 2, Text: "Guidance for 2025 remains unchanged.", Type: model.SentenceFact},
	}

	w := BuildWeaknessReport(sentences, "The 2020 annual report showed record margins. Guidance for 2025 remains unchanged.", 2026)

	if len(w.OutdatedInfo) != 1 {
		t.Fatalf("outdated = %+v, want one entry", w.OutdatedInfo)
	}
	if w.OutdatedInfo[0].Year != "2020" || w.OutdatedInfo[0].Index != 1 {
		t.Errorf("outdated = %+v", w.OutdatedInfo[0])
	}
}

func TestWeaknessCircularRestatement(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "Acme dominates the widget market with superior products", Role: model.RoleFoundation},
		{Index: 2, Text: "Acme dominates the widget market with superior products today", Role: model.RoleConclusion},
	}

	w := BuildWeaknessReport(sentences, "", 2026)

	if len(w.CircularReasoningFlags) == 0 {
		t.Fatal("expected circular reasoning flag for restated conclusion")
	}
	if !strings.Contains(w.CircularReasoningFlags[0], "Sentences 1 and 2") {
		t.Errorf("flag = %q", w.CircularReasoningFlags[0])
	}
}

func TestWeaknessMissingConnections(t *testing.T) {
	w := BuildWeaknessReport(nil, "Great company. Great stock. Buy now.", 2026)
	if len(w.MissingConnections) != 1 {
		t.Errorf("missing connections = %v", w.MissingConnections)
	}

	w = BuildWeaknessReport(nil, "We like it because the cash flows are durable.", 2026)
	if len(w.MissingConnections) != 0 {
		t.Errorf("missing connections = %v, want none", w.MissingConnections)
	}
}

func TestWeaknessUnsourcedStatistics(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "Margins reached 45% last quarter.", Type: model.SentenceFact},
		{Index: 2, Text: "According to the 10-K, cash stands at $2,000 million.", Type: model.SentenceFact},
	}

	w := BuildWeaknessReport(sentences, "", 2026)

	if len(w.UnsourcedStatistics) != 1 || w.UnsourcedStatistics[0].Index != 1 {
		t.Errorf("unsourced = %+v, want only sentence 1", w.UnsourcedStatistics)
	}
}

func TestConsistencyConflictingStance(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "We are bullish on the name."},
		{Index: 2, Text: "The outlook is bearish for the sector."},
	}

	issues := CheckConsistency(sentences)

	if len(issues) != 1 {
		t.Fatalf("issues = %+v, want one", issues)
	}
	if issues[0].IssueType != "conflicting_stance" {
		t.Errorf("issue type = %q", issues[0].IssueType)
	}
	if issues[0].SentenceAIndex != 1 || issues[0].SentenceBIndex != 2 {
		t.Errorf("indices = %d/%d", issues[0].SentenceAIndex, issues[0].SentenceBIndex)
	}
}

func TestConsistencyContrastConnectorClears(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{Index: 1, Text: "We are bullish on the name."},
		{Index: 2, Text: "However, the near-term outlook is bearish."},
	}

	if issues := CheckConsistency(sentences); len(issues) != 0 {
		t.Errorf("issues = %+v, want none", issues)
	}
}

func TestBiasOneSidedWithoutCounters(t *testing.T) {
	text := "Strong growth, huge opportunity, success after success, more growth and profit and gain."

	got := DetectBias(text)

	if !got.IsBiased {
		t.Errorf("is_biased = false, score = %v", got.BiasScore)
	}
	if got.CounterArgumentsPresent {
		t.Error("counter arguments should be absent")
	}
}

func TestBiasCounterArgumentsDampAndClear(t *testing.T) {
	text := "Strong growth and a huge opportunity for profit and gain. However, execution risk remains."

	got := DetectBias(text)

	if got.IsBiased {
		t.Errorf("is_biased = true with counter-arguments present, score = %v", got.BiasScore)
	}
	if !got.CounterArgumentsPresent {
		t.Error("counter arguments should be detected")
	}
}

func TestBiasNeutralText(t *testing.T) {
	got := DetectBias("The company sells widgets in several regions.")

	if got.IsBiased {
		t.Error("neutral text flagged as biased")
	}
	if got.PositiveRatio != 0 || got.NegativeRatio != 0 {
		t.Errorf("ratios = %v/%v, want 0/0", got.PositiveRatio, got.NegativeRatio)
	}
}
