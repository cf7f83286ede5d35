package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/quantfold/thesisgrade/internal/cache"
	"github.com/quantfold/thesisgrade/internal/classify"
	"github.com/quantfold/thesisgrade/internal/embed"
	"github.com/quantfold/thesisgrade/internal/llm"
	"github.com/quantfold/thesisgrade/internal/logging"
	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/nlp"
	"github.com/quantfold/thesisgrade/internal/pipeline"
	"github.com/quantfold/thesisgrade/internal/score"
	"github.com/quantfold/thesisgrade/internal/templates"
)

// loadConfig merges the config file and environment over the defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// API keys come from the conventional environment variables, never
	// from the config file.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	if cfg.Embedding.APIKey == "" && cfg.Embedding.Provider == "openai" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

func newLogger(cfg *model.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

// buildAnalyzer wires the full pipeline from configuration. The NLP
// sidecar must be reachable; everything else degrades.
func buildAnalyzer(ctx context.Context, cfg *model.Config, log *zap.Logger) (*pipeline.Analyzer, error) {
	segmenter := nlp.NewClient(cfg.NLP.BaseURL, cfg.NLP.Timeout)
	if err := segmenter.Ping(ctx); err != nil {
		return nil, fmt.Errorf("nlp sidecar: %w", err)
	}

	bank := buildTemplateBank(cfg, log)
	if bank != nil {
		// Compute template vectors up front so the first request does
		// not pay the warm-up latency. Failures retry on first use.
		if err := bank.Warm(ctx); err != nil {
			log.Warn("template warm-up failed, vectors computed on first use", zap.Error(err))
		}
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	if provider == nil {
		log.Info("llm adjudication disabled, coherence uses fallback scoring")
	}

	return pipeline.NewAnalyzer(
		segmenter,
		classify.New(bank, classify.DefaultOptions(), log),
		score.NewScorer(cfg.Analysis.CurrentYear),
		llm.NewAdjudicator(provider, log),
		cfg.Analysis,
		log,
	), nil
}

// buildTemplateBank constructs the embedding-backed template bank, or
// returns nil for pattern-only classification when embeddings are not
// configured.
func buildTemplateBank(cfg *model.Config, log *zap.Logger) *templates.Bank {
	embedder, err := embed.NewEmbedder(cfg.Embedding)
	if err != nil {
		log.Warn("embeddings unavailable, classification is pattern-only", zap.Error(err))
		return nil
	}

	if cfg.Cache.Enabled {
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, cfg.Cache.MemoryTTL)
		}
		embedder = embed.NewCachedEmbedder(embedder, store, cfg.Embedding.RequestsPerSecond)
	}

	return templates.NewBank(embedder)
}
