package model

import (
	"fmt"
	"time"
)

// Config holds the complete resolver configuration
type Config struct {
	Catalog    CatalogConfig    `yaml:"catalog" mapstructure:"catalog"`
	Match      MatchConfig      `yaml:"match" mapstructure:"match"`
	Gate       GateConfig       `yaml:"gate" mapstructure:"gate"`
	Supplement SupplementConfig `yaml:"supplement" mapstructure:"supplement"`
	Registry   RegistryConfig   `yaml:"registry" mapstructure:"registry"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CatalogConfig controls startup seeding
type CatalogConfig struct {
	SeedFile      string `yaml:"seed_file" mapstructure:"seed_file"`             // YAML list of entries; empty uses the built-in list
	SkipBuiltin   bool   `yaml:"skip_builtin" mapstructure:"skip_builtin"`       // Start with an empty catalog
	SuggestLimit  int    `yaml:"suggest_limit" mapstructure:"suggest_limit"`     // Results for suggest()
	PopularLimit  int    `yaml:"popular_limit" mapstructure:"popular_limit"`     // Default size of the popular list
	DefaultLimit  int    `yaml:"default_limit" mapstructure:"default_limit"`     // search() limit when caller passes <= 0
	MaxQueryRunes int    `yaml:"max_query_runes" mapstructure:"max_query_runes"` // Longer queries are truncated
}

// MatchConfig holds the score-fusion constants
type MatchConfig struct {
	MinQueryRunes   int     `yaml:"min_query_runes" mapstructure:"min_query_runes"`
	AliasScore      int     `yaml:"alias_score" mapstructure:"alias_score"`
	ExactScore      int     `yaml:"exact_score" mapstructure:"exact_score"`
	PrefixBonus     int     `yaml:"prefix_bonus" mapstructure:"prefix_bonus"`
	ContainsBonus   int     `yaml:"contains_bonus" mapstructure:"contains_bonus"`
	CoverageWeight  int     `yaml:"coverage_weight" mapstructure:"coverage_weight"`
	AliasKeyBonus   int     `yaml:"alias_key_bonus" mapstructure:"alias_key_bonus"`
	KeywordMinScore int     `yaml:"keyword_min_score" mapstructure:"keyword_min_score"`
	FuzzyThreshold  float64 `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
}

// GateConfig holds the specificity thresholds
type GateConfig struct {
	FewResults       int `yaml:"few_results" mapstructure:"few_results"`               // Rule 2 size bound
	WeakScore        int `yaml:"weak_score" mapstructure:"weak_score"`                 // Rule 2 score bound
	LongQueryRunes   int `yaml:"long_query_runes" mapstructure:"long_query_runes"`     // Rule 3 length bound
	StrongScore      int `yaml:"strong_score" mapstructure:"strong_score"`             // Rule 3
	SuffixQueryScore int `yaml:"suffix_query_score" mapstructure:"suffix_query_score"` // Rule 4
	ExtraRunes       int `yaml:"extra_runes" mapstructure:"extra_runes"`               // Rule 5 length margin
}

// SupplementConfig controls background synthesis
type SupplementConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Workers    int           `yaml:"workers" mapstructure:"workers"`
	QueueSize  int           `yaml:"queue_size" mapstructure:"queue_size"`
	MaxEntries int           `yaml:"max_entries" mapstructure:"max_entries"` // Entries generated per query
	BaseETA    time.Duration `yaml:"base_eta" mapstructure:"base_eta"`
	WorkDelay  time.Duration `yaml:"work_delay" mapstructure:"work_delay"`   // Simulated source latency per task
	RandomSeed int64         `yaml:"random_seed" mapstructure:"random_seed"` // 0 seeds from the clock
	TaskTTL    time.Duration `yaml:"task_ttl" mapstructure:"task_ttl"`       // Finished tasks are forgotten after this
}

// RegistryConfig controls the optional verified registry lookup
type RegistryConfig struct {
	Enabled       bool           `yaml:"enabled" mapstructure:"enabled"`
	Timeout       time.Duration  `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string         `yaml:"user_agent" mapstructure:"user_agent"`
	RespectRobots bool           `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string         `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string         `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	Sources       []SourceConfig `yaml:"sources" mapstructure:"sources"`
}

// SourceConfig describes one registry data source
type SourceConfig struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Kind      string `yaml:"kind" mapstructure:"kind"` // "json" or "page"
	URL       string `yaml:"url" mapstructure:"url"`   // Query is appended as ?name=
	PerMinute int    `yaml:"per_minute" mapstructure:"per_minute"`
	Burst     int    `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls the registry lookup cache
type CacheConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL         time.Duration `yaml:"ttl" mapstructure:"ttl"`
	NegativeTTL time.Duration `yaml:"negative_ttl" mapstructure:"negative_ttl"`
	Dir         string        `yaml:"dir,omitempty" mapstructure:"dir"` // Adds a disk layer when set
}

// LLMConfig configures the optional name-variant suggester
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic", "ollama" or "" (disabled)
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// ServerConfig configures the HTTP boundary
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	Mode         string        `yaml:"mode" mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "json" or "text"
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			SuggestLimit:  8,
			PopularLimit:  20,
			DefaultLimit:  10,
			MaxQueryRunes: 64,
		},
		Match: MatchConfig{
			MinQueryRunes:   2,
			AliasScore:      95,
			ExactScore:      100,
			PrefixBonus:     50,
			ContainsBonus:   30,
			CoverageWeight:  20,
			AliasKeyBonus:   90,
			KeywordMinScore: 30,
			FuzzyThreshold:  0.3,
		},
		Gate: GateConfig{
			FewResults:       2,
			WeakScore:        50,
			LongQueryRunes:   4,
			StrongScore:      85,
			SuffixQueryScore: 80,
			ExtraRunes:       1,
		},
		Supplement: SupplementConfig{
			Enabled:    true,
			Workers:    2,
			QueueSize:  64,
			MaxEntries: 5,
			BaseETA:    3 * time.Second,
			WorkDelay:  500 * time.Millisecond,
			TaskTTL:    10 * time.Minute,
		},
		Registry: RegistryConfig{
			Enabled:       false,
			Timeout:       10 * time.Second,
			UserAgent:     "orgresolve/0.1 (+https://github.com/ppiankov/orgresolve)",
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:     true,
			TTL:         24 * time.Hour,
			NegativeTTL: 10 * time.Minute,
		},
		LLM: LLMConfig{
			Timeout: 30,
		},
		Server: ServerConfig{
			Addr:         ":5001",
			Mode:         "release",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	m := c.Match
	if m.MinQueryRunes < 1 {
		return fmt.Errorf("match.min_query_runes must be >= 1, got %d", m.MinQueryRunes)
	}
	for name, v := range map[string]int{
		"match.alias_score":       m.AliasScore,
		"match.exact_score":       m.ExactScore,
		"match.keyword_min_score": m.KeywordMinScore,
		"gate.weak_score":         c.Gate.WeakScore,
		"gate.strong_score":       c.Gate.StrongScore,
		"gate.suffix_query_score": c.Gate.SuffixQueryScore,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be within [0,100], got %d", name, v)
		}
	}
	if m.FuzzyThreshold < 0 || m.FuzzyThreshold > 1 {
		return fmt.Errorf("match.fuzzy_threshold must be within [0,1], got %v", m.FuzzyThreshold)
	}
	if c.Catalog.DefaultLimit <= 0 {
		return fmt.Errorf("catalog.default_limit must be > 0, got %d", c.Catalog.DefaultLimit)
	}
	if c.Supplement.Workers < 1 {
		return fmt.Errorf("supplement.workers must be >= 1, got %d", c.Supplement.Workers)
	}
	if c.Supplement.MaxEntries < 1 {
		return fmt.Errorf("supplement.max_entries must be >= 1, got %d", c.Supplement.MaxEntries)
	}
	switch c.LLM.Provider {
	case "", "openai", "anthropic", "claude", "ollama":
	default:
		return fmt.Errorf("llm.provider: unknown provider %q (supported: openai, anthropic, ollama)", c.LLM.Provider)
	}
	for i, s := range c.Registry.Sources {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("registry.sources[%d]: name and url are required", i)
		}
		if s.Kind != "json" && s.Kind != "page" {
			return fmt.Errorf("registry.sources[%d]: unknown kind %q (supported: json, page)", i, s.Kind)
		}
	}
	return nil
}
