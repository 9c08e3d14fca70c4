package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/feature"
	"github.com/tirasundara/mobile-money-etl/internal/fee"
	"github.com/tirasundara/mobile-money-etl/internal/validator"
)

var layoutProbe = time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)

// Validate checks every key and returns a *ConfigError naming the first bad one
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return invalid("input_path", "must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return invalid("output_path", "must not be empty")
	}

	// A layout without directives formats to itself
	if c.DateFormat == "" || layoutProbe.Format(c.DateFormat) == c.DateFormat {
		return invalid("date_format", "layout %q has no date or time directives", c.DateFormat)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := c.boundaryPolicy(); err != nil {
		return err
	}

	if err := c.Fee.validate(); err != nil {
		return err
	}

	if _, err := c.Bands(); err != nil {
		return err
	}

	if _, err := c.Categories(); err != nil {
		return err
	}

	if c.MinAmount < 0 {
		return invalid("min_amount", "must not be negative, got %v", c.MinAmount)
	}
	if c.MaxAmount <= c.MinAmount {
		return invalid("max_amount", "must be above min_amount %v, got %v", c.MinAmount, c.MaxAmount)
	}

	if c.Workers < 0 {
		return invalid("workers", "must not be negative, got %d", c.Workers)
	}

	f := c.Features
	if f.BusinessHourStart < 0 || f.BusinessHourStart > 23 {
		return invalid("features.business_hour_start", "must be within 0..23, got %d", f.BusinessHourStart)
	}
	if f.BusinessHourEnd < 0 || f.BusinessHourEnd > 23 {
		return invalid("features.business_hour_end", "must be within 0..23, got %d", f.BusinessHourEnd)
	}
	if f.BusinessHourStart > f.BusinessHourEnd {
		return invalid("features.business_hour_start", "must not be after business_hour_end")
	}
	if f.HighValueThreshold < 0 {
		return invalid("features.high_value_threshold", "must not be negative, got %v", f.HighValueThreshold)
	}

	return nil
}

func (f FeeConfig) validate() error {
	if f.Threshold <= 0 {
		return invalid("fee.threshold", "must be positive, got %v", f.Threshold)
	}
	if f.LowRate < 0 || f.LowRate >= 1 {
		return invalid("fee.low_rate", "must be within [0, 1), got %v", f.LowRate)
	}
	if f.HighRate < 0 || f.HighRate >= 1 {
		return invalid("fee.high_rate", "must be within [0, 1), got %v", f.HighRate)
	}
	if f.MinFee < 0 {
		return invalid("fee.min_fee", "must not be negative, got %v", f.MinFee)
	}
	if f.MaxFee < 0 {
		return invalid("fee.max_fee", "must not be negative, got %v", f.MaxFee)
	}
	if f.MaxFee > 0 && f.MaxFee < f.MinFee {
		return invalid("fee.max_fee", "must not be below min_fee %v, got %v", f.MinFee, f.MaxFee)
	}
	return nil
}

func (c *Config) boundaryPolicy() (domain.BoundaryPolicy, error) {
	switch p := domain.BoundaryPolicy(c.BoundaryPolicy); p {
	case "":
		return domain.LowerInclusive, nil
	case domain.LowerInclusive, domain.UpperInclusive:
		return p, nil
	default:
		return "", invalid("boundary_policy", "unknown policy %q, want %s or %s",
			c.BoundaryPolicy, domain.LowerInclusive, domain.UpperInclusive)
	}
}

// FeeSchedule converts the fee keys. Call after Validate.
func (c *Config) FeeSchedule() fee.Schedule {
	policy, _ := c.boundaryPolicy()

	return fee.Schedule{
		Threshold: decimal.NewFromFloat(c.Fee.Threshold),
		LowRate:   decimal.NewFromFloat(c.Fee.LowRate),
		HighRate:  decimal.NewFromFloat(c.Fee.HighRate),
		MinFee:    decimal.NewFromFloat(c.Fee.MinFee),
		MaxFee:    decimal.NewFromFloat(c.Fee.MaxFee),
		Boundary:  policy,
	}
}

// Bands converts amount_categories
func (c *Config) Bands() (*feature.Bands, error) {
	policy, err := c.boundaryPolicy()
	if err != nil {
		return nil, err
	}

	bands := make([]feature.Band, 0, len(c.AmountCategories))
	for _, b := range c.AmountCategories {
		band := feature.Band{Label: strings.TrimSpace(b.Label)}
		if b.UpperBound == nil {
			band.Unbounded = true
		} else {
			band.UpperBound = decimal.NewFromFloat(*b.UpperBound)
		}
		bands = append(bands, band)
	}

	result, err := feature.NewBands(bands, policy)
	if err != nil {
		return nil, &ConfigError{Key: "amount_categories", Err: err}
	}

	return result, nil
}

// Categories merges transaction_categories over the default mapping and checks every
// valid transaction type has a category.
func (c *Config) Categories() (map[domain.TransactionType]domain.TransactionCategory, error) {
	mapping := domain.DefaultCategoryMapping()

	allowed := make(map[domain.TransactionCategory]bool, len(domain.TransactionCategories))
	for _, cat := range domain.TransactionCategories {
		allowed[cat] = true
	}

	for name, cat := range c.TransactionCategories {
		category := domain.TransactionCategory(cat)
		if !allowed[category] {
			return nil, invalid("transaction_categories", "type %q maps to unknown category %q", name, cat)
		}
		mapping[domain.TransactionType(name)] = category
	}

	if len(c.ValidTransactionTypes) == 0 {
		return nil, invalid("valid_transaction_types", "at least one type is required")
	}

	for _, name := range c.ValidTransactionTypes {
		if _, ok := mapping[domain.TransactionType(name)]; !ok {
			return nil, invalid("valid_transaction_types", "type %q has no transaction category", name)
		}
	}

	return mapping, nil
}

// ValidatorOptions converts the validation keys
func (c *Config) ValidatorOptions() (validator.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return validator.Options{}, err
	}

	types := make([]domain.TransactionType, 0, len(c.ValidTransactionTypes))
	for _, name := range c.ValidTransactionTypes {
		types = append(types, domain.TransactionType(name))
	}

	return validator.Options{
		DateFormat: c.DateFormat,
		Location:   loc,
		MinAmount:  decimal.NewFromFloat(c.MinAmount),
		MaxAmount:  decimal.NewFromFloat(c.MaxAmount),
		ValidTypes: types,
	}, nil
}

// ExtractorOptions converts the feature keys
func (c *Config) ExtractorOptions() (feature.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return feature.Options{}, err
	}

	bands, err := c.Bands()
	if err != nil {
		return feature.Options{}, err
	}

	categories, err := c.Categories()
	if err != nil {
		return feature.Options{}, err
	}

	return feature.Options{
		Location:           loc,
		Bands:              bands,
		Categories:         categories,
		Extended:           c.Features.Extended,
		HighValueThreshold: decimal.NewFromFloat(c.Features.HighValueThreshold),
		BusinessHourStart:  c.Features.BusinessHourStart,
		BusinessHourEnd:    c.Features.BusinessHourEnd,
	}, nil
}

func invalid(key, format string, args ...any) error {
	return &ConfigError{Key: key, Err: fmt.Errorf(format, args...)}
}

// IsConfigError reports whether err is or wraps a *ConfigError
func IsConfigError(err error) bool {
	var cerr *ConfigError
	return errors.As(err, &cerr)
}
