package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quantfold/thesisgrade/internal/model"
)

type stubAnalyzer struct {
	failOn string
}

func (s *stubAnalyzer) Analyze(_ context.Context, text string) (*model.StrengthReport, error) {
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return nil, errors.New("analysis failed")
	}
	return &model.StrengthReport{OverallScore: 50, Grade: "D"}, nil
}

func writeThesis(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeThesis(t, dir, "a.txt", "Revenue grew 20% according to the annual report filings.")
	b := writeThesis(t, dir, "b.txt", "We believe the company is undervalued at current prices.")

	proc := NewBatchProcessor(&stubAnalyzer{}, nil, 2)
	results := proc.ProcessFiles(context.Background(), []string{a, b})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error %v", r.Path, r.Error)
		}
		if r.Report == nil {
			t.Errorf("%s: missing report", r.Path)
		}
	}
}

func TestProcessFilesReportsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeThesis(t, dir, "good.txt", "Margins expanded in the latest quarter per the 10-Q.")
	bad := writeThesis(t, dir, "bad.txt", "POISON sentence that the analyzer rejects.")
	missing := filepath.Join(dir, "missing.txt")

	proc := NewBatchProcessor(&stubAnalyzer{failOn: "POISON"}, nil, 2)
	results := proc.ProcessFiles(context.Background(), []string{good, bad, missing})

	byPath := make(map[string]*AnalyzeResult)
	for _, r := range results {
		byPath[r.Path] = r
	}

	if byPath[good].Error != nil {
		t.Errorf("good file failed: %v", byPath[good].Error)
	}
	if byPath[bad].Error == nil {
		t.Error("expected analysis error for bad file")
	}
	if byPath[missing].Error == nil {
		t.Error("expected read error for missing file")
	}
}

func TestProcessFilesManyMoreFilesThanWorkers(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		name := string(rune('a'+i)) + ".txt"
		paths = append(paths, writeThesis(t, dir, name, "Revenue grew steadily per the annual report filings."))
	}

	proc := NewBatchProcessor(&stubAnalyzer{}, nil, 1)

	done := make(chan []*AnalyzeResult, 1)
	go func() { done <- proc.ProcessFiles(context.Background(), paths) }()

	select {
	case results := <-done:
		if len(results) != 12 {
			t.Fatalf("results = %d, want 12", len(results))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch wedged with 12 files on 1 worker")
	}
}

func TestProcessFilesStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		name := "t" + string(rune('a'+i)) + ".txt"
		paths = append(paths, writeThesis(t, dir, name, "We believe margins will expand next fiscal year."))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := NewBatchProcessor(&stubAnalyzer{}, nil, 2)

	done := make(chan []*AnalyzeResult, 1)
	go func() { done <- proc.ProcessFiles(ctx, paths) }()

	select {
	case results := <-done:
		if len(results) > len(paths) {
			t.Errorf("results = %d, more than submitted", len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not return after context cancellation")
	}
}

func TestProcessFilesEmpty(t *testing.T) {
	proc := NewBatchProcessor(&stubAnalyzer{}, nil, 2)
	results := proc.ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "list.txt")
	content := "theses/a.txt\n\n# comment line\ntheses/b.txt\ntheses/a.txt\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}

	want := []string{"theses/a.txt", "theses/b.txt"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestProcessListFile(t *testing.T) {
	dir := t.TempDir()
	a := writeThesis(t, dir, "a.txt", "Margins expanded again in the latest quarterly filing.")
	list := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(list, []byte(a+"\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	proc := NewBatchProcessor(&stubAnalyzer{}, nil, 1)
	results, err := proc.ProcessListFile(context.Background(), list)
	if err != nil {
		t.Fatalf("ProcessListFile: %v", err)
	}
	if len(results) != 1 || results[0].Error != nil {
		t.Errorf("results = %+v", results)
	}
}

func TestReadPathsFromFileMissing(t *testing.T) {
	if _, err := ReadPathsFromFile("/nonexistent/list.txt"); err == nil {
		t.Error("expected error for missing list file")
	}
}
