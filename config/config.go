package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the selfstudy tool.
type Config struct {
	Anki    AnkiConfig    `yaml:"anki"`
	Analyze AnalyzeConfig `yaml:"analyze"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
}

// AnkiConfig holds the AnkiConnect endpoint and deck selection.
type AnkiConfig struct {
	URL                string       `yaml:"url"`
	TimeoutSeconds     int          `yaml:"timeout_seconds"`
	Decks              []DeckConfig `yaml:"decks"`
	MatureIntervalDays int          `yaml:"mature_interval_days"`
}

// DeckConfig selects cards from one deck. Field names the note field
// holding the Hebrew word; empty means "use the first field".
type DeckConfig struct {
	Query string `yaml:"query"`
	Field string `yaml:"field"`
}

// Timeout returns the AnkiConnect request timeout.
func (c *AnkiConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AnalyzeConfig holds text analysis configuration.
type AnalyzeConfig struct {
	MinTokenLength   int      `yaml:"min_token_length"`
	MinSentenceWords int      `yaml:"min_sentence_words"`
	StripBrackets    bool     `yaml:"strip_brackets"`
	Includes         []string `yaml:"includes"`
	Excludes         []string `yaml:"excludes"`
	MaxFileSize      int64    `yaml:"max_file_size"`
}

// ServeConfig holds the local HTTP API configuration.
type ServeConfig struct {
	Addr            string `yaml:"addr"`
	CacheSize       int    `yaml:"cache_size"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

// CacheTTL returns the analysis cache entry lifetime.
func (c *ServeConfig) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Anki: AnkiConfig{
			URL:                "http://127.0.0.1:8765",
			TimeoutSeconds:     15,
			Decks:              []DeckConfig{{Query: "deck:Hebrew"}},
			MatureIntervalDays: 21,
		},
		Analyze: AnalyzeConfig{
			MinTokenLength:   2,
			MinSentenceWords: 3,
			StripBrackets:    true,
			Includes:         []string{"**/*.txt", "**/*.md", "**/*.srt", "**/*.vtt", "**/*.html"},
			Excludes:         []string{"**/.git/**", "**/node_modules/**", "**/.selfstudy/**"},
			MaxFileSize:      10 << 20,
		},
		Serve: ServeConfig{
			Addr:            "127.0.0.1:8477",
			CacheSize:       128,
			CacheTTLMinutes: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for selfstudy.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try selfstudy.yaml in the directory
	path := filepath.Join(dir, "selfstudy.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .selfstudy/config.yaml
	path = filepath.Join(dir, ".selfstudy", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// VocabDBPath returns the path to the vocabulary database.
func VocabDBPath(dir string) string {
	return filepath.Join(dir, ".selfstudy", "vocab.db")
}

// EnsureDataDir ensures the .selfstudy directory exists.
func EnsureDataDir(dir string) error {
	dataDir := filepath.Join(dir, ".selfstudy")
	return os.MkdirAll(dataDir, 0755)
}
