// Package config loads the lister configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/search"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "lister.toml"

type Config struct {
	LogLevel string `toml:"log_level"`
	// Database is an optional SQLite file holding the datasets. When empty the
	// built-in fixtures are used.
	Database    string                   `toml:"database,omitempty"`
	SearchLimit int                      `toml:"search_limit"`
	Datasets    map[string]DatasetConfig `toml:"datasets"`
}

// DatasetConfig overrides the list defaults of one dataset.
type DatasetConfig struct {
	// Sort is "field" or "field:direction[:rule]", e.g. "points:desc:numeric".
	Sort         string   `toml:"sort,omitempty"`
	SearchFields []string `toml:"search_fields,omitempty"`
}

func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		SearchLimit: search.DefaultLimit,
		Datasets:    make(map[string]DatasetConfig),
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = search.DefaultLimit
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Datasets == nil {
		cfg.Datasets = make(map[string]DatasetConfig)
	}
	for name, ds := range cfg.Datasets {
		if _, err := ParseSort(ds.Sort); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// SortFor returns the configured default sort of a dataset, or fallback.
func (c *Config) SortFor(dataset string, fallback *query.SortSpec) *query.SortSpec {
	ds, ok := c.Datasets[dataset]
	if !ok || ds.Sort == "" {
		return fallback
	}
	spec, err := ParseSort(ds.Sort)
	if err != nil {
		return fallback
	}
	return spec
}

// SearchFieldsFor returns the configured search fields of a dataset, or nil.
func (c *Config) SearchFieldsFor(dataset string) []string {
	return c.Datasets[dataset].SearchFields
}

// ParseSort parses "field[:direction[:rule]]". An omitted direction is asc;
// the returned spec always carries one. An omitted rule is left empty for the
// listing to take from the field type. An empty string yields nil.
func ParseSort(s string) (*query.SortSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return nil, fmt.Errorf("%w: %q", query.ErrInvalidSort, s)
	}
	spec := &query.SortSpec{Field: parts[0], Direction: query.SortDirectionAsc}
	if len(parts) > 1 {
		switch dir := query.SortDirection(strings.ToLower(parts[1])); dir {
		case query.SortDirectionAsc, query.SortDirectionDesc:
			spec.Direction = dir
		default:
			return nil, fmt.Errorf("%w: direction %q", query.ErrInvalidSort, parts[1])
		}
	}
	if len(parts) > 2 {
		switch rule := query.SortRule(strings.ToLower(parts[2])); rule {
		case query.SortRuleNumeric, query.SortRuleLexicographic:
			spec.Rule = rule
		default:
			return nil, fmt.Errorf("%w: rule %q", query.ErrInvalidSort, parts[2])
		}
	}
	return spec, nil
}

// NewLogger builds the process logger for the configured level. Debug
// selects zap's development configuration.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	if level.Level() <= zap.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
