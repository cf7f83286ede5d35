package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/nlp"
	"github.com/quantfold/thesisgrade/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a single investment thesis and grade its strength",
	Long: `Analyze grades one investment thesis:
- Classify every sentence as fact, assumption, opinion, projection or context
- Score evidence quality, coherence, clarity, risk awareness, actionability
- Audit fact vs assumption mismatches and trace the logic chain
- Detect weaknesses, contradictions and one-sided framing

Reads from the file argument, or from stdin when no file is given.
HTML input is converted to visible text first.

Example:
  thesisgrade analyze thesis.txt
  thesisgrade analyze thesis.html --json report.json --md report.md
  cat thesis.txt | thesisgrade analyze --llm-provider ollama --llm-model llama3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", true, "enable LLM adjudication")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	text, source, err := readThesis(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyLLMFlags(cfg)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s (%d chars)\n\n", source, len(text))
	}

	analyzer, err := buildAnalyzer(ctx, cfg, log)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderer := pipeline.NewRenderer()
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	if outJSON == "" && outMD == "" {
		fmt.Print(renderer.Format(report))
	} else {
		renderer.RenderSummary(report)
	}

	return nil
}

// readThesis loads the thesis text from the file argument or stdin,
// stripping markup when the input is HTML.
func readThesis(args []string) (text, source string, err error) {
	var raw []byte
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read thesis: %w", err)
		}
		source = args[0]
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		source = "stdin"
	}

	text = string(raw)
	if looksLikeHTML(source, text) {
		text = nlp.StripHTML(text)
	}
	return text, source, nil
}

func looksLikeHTML(source, text string) bool {
	if strings.HasSuffix(source, ".html") || strings.HasSuffix(source, ".htm") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// applyLLMFlags overrides the config with the LLM flags.
func applyLLMFlags(cfg *model.Config) {
	if !llmEnabled {
		cfg.LLM.Provider = ""
		return
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.APIKey = ""
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
}
