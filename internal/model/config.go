package model

import "time"

// Config is the full configuration tree.
// Hierarchy: CLI flags > THESISGRADE_* env vars > config file > defaults.
type Config struct {
	NLP         NLPConfig         `yaml:"nlp" mapstructure:"nlp"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// NLPConfig points at the external segmenter+tagger sidecar.
type NLPConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// EmbeddingConfig configures the sentence embedding backend.
type EmbeddingConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // openai, ollama
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// LLMConfig configures the adjudication provider.
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" = disabled
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"-" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// AnalysisConfig carries the tunable analysis parameters.
type AnalysisConfig struct {
	// CurrentYear anchors the "recent date" window and the outdated-info
	// cutoff. Injected rather than read from a literal so past analyses
	// stay reproducible.
	CurrentYear int `yaml:"current_year" mapstructure:"current_year"`

	// MinTextChars is the minimum thesis length accepted by the boundary.
	MinTextChars int `yaml:"min_text_chars" mapstructure:"min_text_chars"`
}

// CacheConfig configures the embedding cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ConcurrencyConfig bounds the batch worker pool.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultConfig returns sensible defaults. CurrentYear is resolved once
// here so every downstream component sees the same anchor.
func DefaultConfig() *Config {
	return &Config{
		NLP: NLPConfig{
			BaseURL: "http://localhost:8090",
			Timeout: 15 * time.Second,
		},
		Embedding: EmbeddingConfig{
			Provider:          "openai",
			Model:             "text-embedding-3-small",
			Timeout:           30,
			RequestsPerSecond: 5,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Analysis: AnalysisConfig{
			CurrentYear:  time.Now().Year(),
			MinTextChars: 50,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
