package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/validator"
	"gopkg.in/yaml.v3"
)

// PathEnv names the config file when no path is passed to Load
const PathEnv = "ETL_CONFIG_FILE"

// Config holds every tunable of a run. Values are read from a YAML or JSON document and
// then overridden from the environment.
type Config struct {
	InputPath      string `yaml:"input_path" env:"ETL_INPUT_PATH"`
	OutputPath     string `yaml:"output_path" env:"ETL_OUTPUT_PATH"`
	DateFormat     string `yaml:"date_format" env:"ETL_DATE_FORMAT"`
	Timezone       string `yaml:"timezone" env:"ETL_TIMEZONE"`
	BoundaryPolicy string `yaml:"boundary_policy" env:"ETL_BOUNDARY_POLICY"`

	Fee FeeConfig `yaml:"fee"`

	AmountCategories      []AmountBand      `yaml:"amount_categories" env:"-"`
	ValidTransactionTypes []string          `yaml:"valid_transaction_types" env:"-"`
	TransactionCategories map[string]string `yaml:"transaction_categories" env:"-"`

	MinAmount float64 `yaml:"min_amount" env:"ETL_MIN_AMOUNT"`
	MaxAmount float64 `yaml:"max_amount" env:"ETL_MAX_AMOUNT"`

	Features FeaturesConfig `yaml:"features"`

	Workers int `yaml:"workers" env:"ETL_WORKERS"`

	Logging LoggingConfig `yaml:"logging"`
}

// FeeConfig is the tiered fee schedule. Zero caps are disabled.
type FeeConfig struct {
	Threshold float64 `yaml:"threshold" env:"ETL_FEE_THRESHOLD"`
	LowRate   float64 `yaml:"low_rate" env:"ETL_FEE_LOW_RATE"`
	HighRate  float64 `yaml:"high_rate" env:"ETL_FEE_HIGH_RATE"`
	MinFee    float64 `yaml:"min_fee" env:"ETL_FEE_MIN"`
	MaxFee    float64 `yaml:"max_fee" env:"ETL_FEE_MAX"`
}

// AmountBand is one amount category. A nil UpperBound marks the open-ended final band.
type AmountBand struct {
	Label      string   `yaml:"label"`
	UpperBound *float64 `yaml:"upper_bound"`
}

// FeaturesConfig controls the optional extended feature columns
type FeaturesConfig struct {
	Extended           bool    `yaml:"extended" env:"ETL_FEATURES_EXTENDED"`
	HighValueThreshold float64 `yaml:"high_value_threshold" env:"ETL_FEATURES_HIGH_VALUE_THRESHOLD"`
	BusinessHourStart  int     `yaml:"business_hour_start" env:"ETL_FEATURES_BUSINESS_HOUR_START"`
	BusinessHourEnd    int     `yaml:"business_hour_end" env:"ETL_FEATURES_BUSINESS_HOUR_END"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING"`
}

// ConfigError reports a configuration that cannot be used. Key is empty when the whole
// document is at fault.
type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	msg := "config"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Key != "" {
		msg += ": " + e.Key
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func float(v float64) *float64 {
	return &v
}

// Default returns the configuration used when no document or environment overrides it
func Default() *Config {
	return &Config{
		InputPath:      "mpesa_sample.csv",
		OutputPath:     "transformed_data/transformed_mpesa_data.csv",
		DateFormat:     validator.DefaultDateFormat,
		BoundaryPolicy: string(domain.LowerInclusive),
		Fee: FeeConfig{
			Threshold: 1000,
			LowRate:   0.01,
			HighRate:  0.005,
		},
		AmountCategories: []AmountBand{
			{Label: "Small", UpperBound: float(500)},
			{Label: "Medium", UpperBound: float(5000)},
			{Label: "Large"},
		},
		ValidTransactionTypes: transactionTypeNames(),
		MinAmount:             1,
		MaxAmount:             250000,
		Features: FeaturesConfig{
			HighValueThreshold: 10000,
			BusinessHourStart:  8,
			BusinessHourEnd:    17,
		},
		Workers: 1,
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load builds a Config from defaults, the document at path (or $ETL_CONFIG_FILE when path
// is empty) and the environment, then validates it. Missing keys keep their defaults and
// unknown keys are ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := populateFromEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, withPath(err, path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, withPath(err, path)
	}

	return cfg, nil
}

func withPath(err error, path string) error {
	var cerr *ConfigError
	if errors.As(err, &cerr) && cerr.Path == "" {
		cerr.Path = path
	}
	return err
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Path: path, Err: fmt.Errorf("read file: %w", err)}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigError{Path: path, Err: fmt.Errorf("decode document: %w", err)}
	}

	return nil
}

// Location resolves the configured time zone. An empty zone returns nil and times stay as parsed.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &ConfigError{Key: "timezone", Err: err}
	}

	return loc, nil
}

func transactionTypeNames() []string {
	names := make([]string, 0, len(domain.TransactionTypes))
	for _, t := range domain.TransactionTypes {
		names = append(names, string(t))
	}
	return names
}
