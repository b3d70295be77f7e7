package model

import "time"

// Config holds all tunable settings for a build
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Parallel   ParallelConfig   `yaml:"parallel" mapstructure:"parallel"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
}

// ExtractionConfig controls candidate selection
type ExtractionConfig struct {
	// TargetEvents is the global number of events to select across all books
	TargetEvents int `yaml:"target_events" mapstructure:"target_events"`

	// SummaryLimit caps event summaries (runes) in the research dataset
	SummaryLimit int `yaml:"summary_limit" mapstructure:"summary_limit"`

	// Translation is the single translation label stamped on all evidence
	Translation string `yaml:"translation" mapstructure:"translation"`
}

// ParallelConfig controls the fuzzy gospel-parallel matcher
type ParallelConfig struct {
	// Threshold is the minimum Jaccard similarity between heading token sets
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`

	// MaxMatches caps matched source books per target event
	MaxMatches int `yaml:"max_matches" mapstructure:"max_matches"`

	// MaxVersesPerMatch caps direct rows copied from each matched event
	MaxVersesPerMatch int `yaml:"max_verses_per_match" mapstructure:"max_verses_per_match"`

	// MinTokenLen drops shorter tokens before scoring (runes)
	MinTokenLen int `yaml:"min_token_len" mapstructure:"min_token_len"`

	// Stopwords are pronouns and generic terms excluded from token sets
	Stopwords []string `yaml:"stopwords" mapstructure:"stopwords"`
}

// CacheConfig controls the parsed-corpus cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`

	// ChapterSummaryLimit caps chapter summaries (runes) in all-verses mode
	ChapterSummaryLimit int `yaml:"chapter_summary_limit" mapstructure:"chapter_summary_limit"`
}

// LLMConfig controls the optional research-notes overview generation.
// It never affects extraction, selection, or validation.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", ""
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// DefaultConfig returns the documented defaults
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			TargetEvents: 320,
			SummaryLimit: 88,
			Translation:  "개역개정",
		},
		Parallel: ParallelConfig{
			Threshold:         0.35,
			MaxMatches:        3,
			MaxVersesPerMatch: 8,
			MinTokenLen:       2,
			Stopwords: []string{
				"예수", "예수께서", "예수님", "그가", "그의",
				"하나님", "말씀", "제자들",
			},
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.chronica/cache at startup
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:             false,
			Pretty:              false,
			ChapterSummaryLimit: 120,
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			MaxTokens: 600,
			Timeout:   30,
		},
	}
}
