// Package config provides configuration structures for the search service:
// engine tunables (boost weights, cache sizing, paging defaults) and the
// HTTP server settings, loadable from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sumry-app/SUMRY-sub001/internal/scoring"
)

// EngineSettings contains the tunables of the search engine itself.
type EngineSettings struct {
	Boosts          scoring.Weights `yaml:"boosts"`           // relevance boost magnitudes
	DefaultLimit    int             `yaml:"default_limit"`    // page size when a search gives none
	SuggestionLimit int             `yaml:"suggestion_limit"` // default autocomplete result count
	CacheTTL        time.Duration   `yaml:"cache_ttl"`        // result cache entry lifetime
	CacheCapacity   int             `yaml:"cache_capacity"`   // max cached results before eviction
	IndexWorkers    int             `yaml:"index_workers"`    // worker pool size for index builds
}

// ApplyDefaults fills in zero-valued settings.
func (s *EngineSettings) ApplyDefaults() {
	zero := scoring.Weights{}
	if s.Boosts == zero {
		s.Boosts = scoring.DefaultWeights()
	}
	if s.DefaultLimit == 0 {
		s.DefaultLimit = 50
	}
	if s.SuggestionLimit == 0 {
		s.SuggestionLimit = 5
	}
	if s.CacheTTL == 0 {
		s.CacheTTL = 60 * time.Second
	}
	if s.CacheCapacity == 0 {
		s.CacheCapacity = 50
	}
	if s.IndexWorkers == 0 {
		s.IndexWorkers = 4
	}
}

// Validate returns a list of problems with the settings; an empty slice
// means the settings are usable.
func (s *EngineSettings) Validate() []string {
	var problems []string
	if s.DefaultLimit < 0 {
		problems = append(problems, "default_limit cannot be negative")
	}
	if s.SuggestionLimit < 0 {
		problems = append(problems, "suggestion_limit cannot be negative")
	}
	if s.CacheTTL < 0 {
		problems = append(problems, "cache_ttl cannot be negative")
	}
	if s.CacheCapacity < 0 {
		problems = append(problems, "cache_capacity cannot be negative")
	}
	if s.IndexWorkers < 0 {
		problems = append(problems, "index_workers cannot be negative")
	}
	for name, b := range map[string]float64{
		"exact":  s.Boosts.Exact,
		"prefix": s.Boosts.Prefix,
		"fuzzy":  s.Boosts.Fuzzy,
		"token":  s.Boosts.Token,
	} {
		if b < 0 {
			problems = append(problems, "boost '"+name+"' cannot be negative")
		}
	}
	return problems
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            string         `yaml:"port"`
	Env             string         `yaml:"env"`       // prod, dev, local
	LogLevel        string         `yaml:"log_level"` // debug, info, warn, error
	MaxRequestBytes int64          `yaml:"max_request_bytes"`
	Engine          EngineSettings `yaml:"engine"`
}

// ApplyDefaults fills in zero-valued server settings.
func (c *ServerConfig) ApplyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.MaxRequestBytes == 0 {
		c.MaxRequestBytes = 10 << 20 // 10 MB
	}
	c.Engine.ApplyDefaults()
}

// Load reads a ServerConfig from a YAML file and applies defaults. An empty
// path yields the default configuration.
func Load(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return ServerConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	cfg.ApplyDefaults()

	if problems := cfg.Engine.Validate(); len(problems) > 0 {
		return ServerConfig{}, fmt.Errorf("invalid engine settings: %v", problems)
	}
	return cfg, nil
}
