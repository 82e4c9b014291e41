package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"cvrank/internal/domain"
)

// Config holds all configuration for the ranking tool.
type Config struct {
	Scan    ScanConfig     `yaml:"scan"`
	Terms   domain.TermSet `yaml:"terms"`
	Ranking RankingConfig  `yaml:"ranking"`
	Output  OutputConfig   `yaml:"output"`
	Cache   CacheConfig    `yaml:"cache"`
	Logging LoggingConfig  `yaml:"logging"`
}

// ScanConfig holds directory scanning configuration.
type ScanConfig struct {
	Extensions []string `yaml:"extensions"`
	Excludes   []string `yaml:"excludes"`
}

// RankingConfig holds the exclusion policy.
type RankingConfig struct {
	Policy   string   `yaml:"policy"`   // "inclusive", "any-category", "all-categories", "required-categories"
	Required []string `yaml:"required"` // categories for "required-categories"
}

// OutputConfig holds report configuration.
type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json", "yaml"
}

// CacheConfig holds extracted-text cache configuration.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // default: <scan dir>/.cvrank/text.db
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultConfig returns the default configuration. It carries no search
// terms; those always come from the config file or the command line.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions: []string{".pdf"},
			Excludes:   []string{},
		},
		Ranking: RankingConfig{
			Policy: string(domain.PolicyInclusive),
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Cache: CacheConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SampleConfig returns a config with example terms, written by "cvrank init".
func SampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Scan.Excludes = []string{"~$*", ".*"}
	cfg.Terms = domain.TermSet{
		{Category: "Skills", Terms: []string{"python"}},
		{Category: "Languages", Terms: []string{"English"}},
		{Category: "City", Terms: []string{"Cluj-Napoca"}},
	}
	return cfg
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
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for cvrank.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "cvrank.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".cvrank", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

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

// Filter builds the exclusion policy from the ranking section.
func (c *Config) Filter() (domain.Filter, error) {
	policy, err := domain.ParsePolicy(c.Ranking.Policy)
	if err != nil {
		return domain.Filter{}, err
	}
	required := make([]domain.Category, 0, len(c.Ranking.Required))
	for _, r := range c.Ranking.Required {
		required = append(required, domain.Category(r))
	}
	return domain.Filter{Policy: policy, Required: required}, nil
}

// Validate checks the values that can be checked without a scan.
func (c *Config) Validate() error {
	if _, err := c.Filter(); err != nil {
		return err
	}
	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return domain.NewValidationError("output.format", fmt.Sprintf("unknown format %q", c.Output.Format))
	}
	return nil
}

// CachePath returns the text cache location for a scan directory.
func (c *Config) CachePath(dir string) string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(dir, ".cvrank", "text.db")
}
