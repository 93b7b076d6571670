package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/resibo-dev/resibo/internal/directory"
	"github.com/resibo-dev/resibo/internal/extract"
)

// Config represents the top-level resibo.yaml configuration.
// Loaded once at startup and immutable thereafter.
type Config struct {
	Currency  CurrencyConfig   `yaml:"currency"`
	Extract   ExtractConfig    `yaml:"extract"`
	Directory []DirectoryEntry `yaml:"directory,omitempty"`
}

// CurrencyConfig controls how amounts are rendered in replies.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
}

// ExtractConfig holds the field-extraction patterns.
type ExtractConfig struct {
	AmountKeywords []string `yaml:"amount_keywords"`
	PhonePatterns  []string `yaml:"phone_patterns"`
	// MinAliasDisplayLen excludes short aliases (digit suffixes,
	// keywords) from the human-readable directory listing.
	MinAliasDisplayLen int `yaml:"min_alias_display_len"`
}

// DirectoryEntry maps a free-text alias to a canonical payer identifier.
type DirectoryEntry struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"canonical"`
}

// Load reads a resibo.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock PH mobile-wallet patterns
// and an empty directory.
func Default() *Config {
	ec := extract.DefaultConfig()
	return &Config{
		Currency: CurrencyConfig{Symbol: "₱"},
		Extract: ExtractConfig{
			AmountKeywords:     ec.AmountKeywords,
			PhonePatterns:      ec.PhonePatterns,
			MinAliasDisplayLen: 5,
		},
	}
}

// ExtractorConfig converts the yaml section to the extractor's config.
func (c *Config) ExtractorConfig() extract.Config {
	return extract.Config{
		AmountKeywords: c.Extract.AmountKeywords,
		PhonePatterns:  c.Extract.PhonePatterns,
	}
}

// DirectoryEntries converts the yaml directory table to resolver entries.
func (c *Config) DirectoryEntries() []directory.Entry {
	entries := make([]directory.Entry, 0, len(c.Directory))
	for _, d := range c.Directory {
		entries = append(entries, directory.Entry{Alias: d.Alias, Canonical: d.Canonical})
	}
	return entries
}
