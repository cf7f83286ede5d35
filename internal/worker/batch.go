package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/quantfold/thesisgrade/internal/model"
)

// Analyzer grades a single thesis text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*model.StrengthReport, error)
}

// AnalyzeJob reads one thesis file and runs it through the analyzer.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
	Limiter  *Limiter
}

// limiterKey throttles all jobs against the shared LLM backend.
const limiterKey = "llm"

// Execute runs the job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, limiterKey); err != nil {
			return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("read thesis: %w", err)}
	}

	report, err := j.Analyzer.Analyze(ctx, string(data))
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}
	return &AnalyzeResult{Path: j.Path, Report: report}
}

// AnalyzeResult is the outcome for a single thesis file.
type AnalyzeResult struct {
	Path   string
	Report *model.StrengthReport
	Error  error
}

// GetError returns the job error, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor grades multiple thesis files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor. A nil limiter disables
// throttling.
func NewBatchProcessor(analyzer Analyzer, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given thesis files concurrently.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	out := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		out[i] = result.(*AnalyzeResult)
	}

	return out
}

// ProcessListFile reads thesis file paths from a list file and analyzes
// them concurrently.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads file paths, one per line. Blank lines and
// lines starting with # are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
