// Package config loads the YAML configuration of the report generator.
//
// Values are resolved in this order: defaults, the YAML file, then ATH_*
// environment variables. Command line flags are applied last by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/cryptoath"
	"github.com/etnz/cryptoath/source"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvUnlockSecret  = "ATH_UNLOCK_SECRET"
	EnvSheetsAPIKey  = "ATH_SHEETS_API_KEY"
	EnvSpreadsheetID = "ATH_SPREADSHEET_ID"
	EnvWorksheet     = "ATH_WORKSHEET"
	EnvOutput        = "ATH_OUTPUT"
	EnvLogLevel      = "ATH_LOG_LEVEL"
	EnvLogFormat     = "ATH_LOG_FORMAT"
)

// Source kinds.
const (
	SourceFile   = "file"
	SourceSheets = "sheets"
	SourceHTTP   = "http"
)

// Config is the root configuration.
type Config struct {
	Title          string           `yaml:"title"`
	Cutoff         int              `yaml:"cutoff"`
	UnlockSecret   string           `yaml:"unlock_secret"`
	FreshnessField string           `yaml:"freshness_field"`
	Output         string           `yaml:"output"`
	Format         string           `yaml:"format"` // html, json, md
	Source         SourceConfig     `yaml:"source"`
	Fields         []FieldConfig    `yaml:"fields,omitempty"`
	Views          []ViewConfig     `yaml:"views"`
	Logging        LoggingConfig    `yaml:"logging"`
	Commentary     CommentaryConfig `yaml:"commentary"`
}

// SourceConfig selects where the records come from.
type SourceConfig struct {
	Kind          string `yaml:"kind"` // file, sheets, http
	Path          string `yaml:"path"` // file
	URL           string `yaml:"url"`  // http
	JSONPath      string `yaml:"json_path"`
	SpreadsheetID string `yaml:"spreadsheet_id"`
	Worksheet     string `yaml:"worksheet"`
	APIKey        string `yaml:"api_key"`
	Cache         string `yaml:"cache"` // duration, empty or "0" disables the cache
	CacheDir      string `yaml:"cache_dir"`
}

// FieldConfig declares a field, or overrides a recognized one.
type FieldConfig struct {
	Name        string `yaml:"name"`
	Header      string `yaml:"header,omitempty"`
	Kind        string `yaml:"kind,omitempty"`
	Currency    string `yaml:"currency,omitempty"`
	FixedDigits int    `yaml:"fixed_digits,omitempty"`
}

// ViewConfig declares a view.
type ViewConfig struct {
	Name       string        `yaml:"name"`
	Title      string        `yaml:"title,omitempty"`
	Fields     []string      `yaml:"fields"`
	SortBy     string        `yaml:"sort_by,omitempty"`
	Filter     *FilterConfig `yaml:"filter,omitempty"`
	OmitAbsent bool          `yaml:"omit_absent,omitempty"`
}

// FilterConfig keeps the records whose field is above Min.
type FilterConfig struct {
	Field     string `yaml:"field"`
	Min       string `yaml:"min"`
	Inclusive bool   `yaml:"inclusive,omitempty"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// CommentaryConfig configures the optional market commentary.
type CommentaryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

// DefaultConfig returns the default configuration: a price table and a
// market cap table of the recognized fields, read from a Google Sheet.
func DefaultConfig() *Config {
	return &Config{
		Title:          "Cryptocurrency Prices",
		Cutoff:         cryptoath.DefaultCutoff,
		FreshnessField: cryptoath.FieldLastUpdated,
		Output:         "crypto_table.html",
		Format:         "html",
		Source: SourceConfig{
			Kind:      SourceSheets,
			JSONPath:  source.DefaultPath,
			Worksheet: "Sheet1",
			Cache:     "1h",
		},
		Views: []ViewConfig{
			{
				Name:  "price",
				Title: "Price",
				Fields: []string{
					cryptoath.FieldName,
					cryptoath.FieldCurrentPrice,
					cryptoath.FieldATHPrice,
					cryptoath.FieldATHDate,
					cryptoath.FieldPercentFromATH,
					cryptoath.FieldMultiplyToATH,
				},
				SortBy:     cryptoath.FieldMarketCap,
				OmitAbsent: true,
			},
			{
				Name:  "marketcap",
				Title: "Market Cap",
				Fields: []string{
					cryptoath.FieldName,
					cryptoath.FieldRank,
					cryptoath.FieldMarketCap,
					cryptoath.FieldCurrentPrice,
					cryptoath.FieldMultiplyToATH,
				},
				SortBy: cryptoath.FieldMarketCap,
				Filter: &FilterConfig{Field: cryptoath.FieldMultiplyToATH, Min: "0"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Commentary: CommentaryConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Load loads the configuration from a YAML file, path can be empty to use only
// the defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env string
		dst *string
	}{
		{EnvUnlockSecret, &c.UnlockSecret},
		{EnvSheetsAPIKey, &c.Source.APIKey},
		{EnvSpreadsheetID, &c.Source.SpreadsheetID},
		{EnvWorksheet, &c.Source.Worksheet},
		{EnvOutput, &c.Output},
		{EnvLogLevel, &c.Logging.Level},
		{EnvLogFormat, &c.Logging.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Registry returns the recognized fields, overridden and extended by the
// configured ones.
func (c *Config) Registry() (cryptoath.Registry, error) {
	specs := cryptoath.DefaultRegistry().Specs()
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.Name] = i
	}

	for _, f := range c.Fields {
		if f.Name == "" {
			return cryptoath.Registry{}, fmt.Errorf("field declared without a name")
		}
		i, exists := index[f.Name]
		if !exists {
			i = len(specs)
			index[f.Name] = i
			specs = append(specs, cryptoath.FieldSpec{Name: f.Name})
		}
		s := &specs[i]
		if f.Kind != "" {
			k, err := cryptoath.ParseKind(f.Kind)
			if err != nil {
				return cryptoath.Registry{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			s.Kind = k
		}
		if f.Header != "" {
			s.Header = f.Header
		}
		if f.Currency != "" {
			s.Currency = strings.ToUpper(f.Currency)
		}
		if f.FixedDigits != 0 {
			s.FixedDigits = f.FixedDigits
		}
	}
	return cryptoath.NewRegistry(specs...)
}

// ViewSpecs converts the configured views.
func (c *Config) ViewSpecs() ([]cryptoath.ViewSpec, error) {
	views := make([]cryptoath.ViewSpec, 0, len(c.Views))
	for _, v := range c.Views {
		spec := cryptoath.ViewSpec{
			Name:       v.Name,
			Title:      v.Title,
			Fields:     v.Fields,
			SortBy:     v.SortBy,
			OmitAbsent: v.OmitAbsent,
		}
		if v.Filter != nil {
			threshold, err := decimal.NewFromString(strings.TrimSpace(v.Filter.Min))
			if err != nil {
				return nil, fmt.Errorf("view %q: invalid filter minimum %q: %w", v.Name, v.Filter.Min, err)
			}
			spec.Filter = &cryptoath.Filter{Field: v.Filter.Field, Min: threshold, Inclusive: v.Filter.Inclusive}
		}
		views = append(views, spec)
	}
	return views, nil
}

// Assembly returns the configuration of the report assembler.
func (c *Config) Assembly(log *zap.Logger) (cryptoath.Config, error) {
	registry, err := c.Registry()
	if err != nil {
		return cryptoath.Config{}, err
	}
	views, err := c.ViewSpecs()
	if err != nil {
		return cryptoath.Config{}, err
	}
	return cryptoath.Config{
		Title:          c.Title,
		Cutoff:         c.Cutoff,
		Registry:       registry,
		Views:          views,
		FreshnessField: c.FreshnessField,
		UnlockSecret:   c.UnlockSecret,
		Logger:         log,
	}, nil
}

// CacheTTL returns the lifetime of cached HTTP responses, zero when disabled.
func (s SourceConfig) CacheTTL() (time.Duration, error) {
	if s.Cache == "" || s.Cache == "0" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(s.Cache)
	if err != nil {
		return 0, fmt.Errorf("invalid source cache duration %q: %w", s.Cache, err)
	}
	return ttl, nil
}

// Build returns the configured Source.
func (s SourceConfig) Build(log *zap.Logger) (source.Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ttl, err := s.CacheTTL()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(s.Kind) {
	case SourceFile:
		if s.Path == "" {
			return nil, fmt.Errorf("file source without a path, set source.path")
		}
		return source.File{Path: s.Path}, nil
	case SourceHTTP:
		if s.URL == "" {
			return nil, fmt.Errorf("http source without a URL, set source.url")
		}
		return source.HTTP{
			URL:    s.URL,
			Path:   s.JSONPath,
			Client: source.NewCachingClient(ttl, s.CacheDir, log),
			Logger: log,
		}, nil
	case SourceSheets, "":
		if s.SpreadsheetID == "" {
			return nil, fmt.Errorf("sheets source without a spreadsheet, set source.spreadsheet_id or %s", EnvSpreadsheetID)
		}
		if s.APIKey == "" {
			return nil, fmt.Errorf("sheets source without an API key, set source.api_key or %s", EnvSheetsAPIKey)
		}
		src := source.Sheets(source.NewCachingClient(ttl, s.CacheDir, log), s.SpreadsheetID, s.Worksheet, s.APIKey)
		src.Logger = log
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q, want %s, %s or %s", s.Kind, SourceFile, SourceSheets, SourceHTTP)
	}
}

// Build returns a logger writing to stderr. Verbose forces the debug level.
func (l LoggingConfig) Build(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(l.Format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "text", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q, want json or console", l.Format)
	}

	level := zapcore.InfoLevel
	if l.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(l.Level); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
