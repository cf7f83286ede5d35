package classify

import (
	"context"
	"testing"

	"github.com/quantfold/thesisgrade/internal/model"
)

func newPatternOnly() *Classifier {
	return New(nil, DefaultOptions(), nil)
}

func TestClassifyFactWithPercent(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Intro sentence.",
		"Revenue grew 42% in Q3 2025 according to the quarterly report.",
	})

	got := res.Sentences[1]
	if got.Type != model.SentenceFact {
		t.Errorf("type = %s, want FACT", got.Type)
	}
	if got.Support != model.SupportSupported {
		t.Errorf("support = %s, want SUPPORTED", got.Support)
	}
	if got.Role != model.RoleEvidence {
		t.Errorf("role = %s, want Evidence", got.Role)
	}
	if got.Index != 2 {
		t.Errorf("index = %d, want 2", got.Index)
	}
}

func TestClassifyOpinion(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Opening.",
		"I believe the management team is underrated.",
		"Closing.",
	})

	if got := res.Sentences[1].Type; got != model.SentenceOpinion {
		t.Errorf("type = %s, want OPINION", got)
	}
}

func TestClassifyProjectionFutureTense(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Opening.",
		"The company will expand margins next year.",
	})

	if got := res.Sentences[1].Type; got != model.SentenceProjection {
		t.Errorf("type = %s, want PROJECTION", got)
	}
}

func TestClassifyZeroSignalDefaultsToContext(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Opening.",
		"Blue widgets everywhere.",
	})

	got := res.Sentences[1]
	if got.Type != model.SentenceContext {
		t.Errorf("type = %s, want CONTEXT", got.Type)
	}
	if got.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", got.Confidence)
	}
}

func TestClassifyAmbiguityGate(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Revenue grew 42% per the annual report.",
		"Blue widgets everywhere.",
	})

	// Confidence 0.5 falls under the 0.55 threshold.
	if len(res.Ambiguous) != 1 || res.Ambiguous[0] != 1 {
		t.Fatalf("ambiguous = %v, want [1]", res.Ambiguous)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := newPatternOnly()
	input := []string{
		"The thesis: buy the stock.",
		"Revenue grew 42% in Q3 2025.",
		"Assuming rates hold, margins will expand.",
		"Therefore the position is attractive.",
	}

	first := c.Classify(context.Background(), input)
	for range 5 {
		again := c.Classify(context.Background(), input)
		for i := range first.Sentences {
			if first.Sentences[i].Type != again.Sentences[i].Type {
				t.Fatalf("sentence %d type changed across runs: %s vs %s",
					i+1, first.Sentences[i].Type, again.Sentences[i].Type)
			}
			if first.Sentences[i].Confidence != again.Sentences[i].Confidence {
				t.Fatalf("sentence %d confidence changed across runs", i+1)
			}
		}
	}
}

func TestCertaintyIssueWithoutEvidence(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Opening.",
		"The stock will definitely double.",
	})

	got := res.Sentences[1].Issues
	if len(got) == 0 {
		t.Fatal("expected issues for overconfident claim")
	}
	found := false
	for _, issue := range got {
		if issue == "High certainty language without supporting evidence" {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %v, missing high-certainty flag", got)
	}
}

func TestWeaselWordUnsupported(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Opening.",
		"The business seems to have arguably decent unit economics.",
	})

	got := res.Sentences[1]
	if got.Support != model.SupportUnsupported {
		t.Errorf("support = %s, want UNSUPPORTED", got.Support)
	}
}

func TestFirstSentenceIsFoundation(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Revenue grew 42% according to the annual report.",
		"More text here.",
	})

	// Position outranks the FACT-to-Evidence mapping.
	if got := res.Sentences[0].Role; got != model.RoleFoundation {
		t.Errorf("role = %s, want Foundation", got)
	}
}

func TestLastSentenceIsConclusion(t *testing.T) {
	c := newPatternOnly()
	res := c.Classify(context.Background(), []string{
		"Opening.",
		"Middle without signals.",
		"Hence we own the stock.",
	})

	if got := res.Sentences[2].Role; got != model.RoleConclusion {
		t.Errorf("role = %s, want Conclusion", got)
	}
}
