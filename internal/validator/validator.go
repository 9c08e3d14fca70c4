package validator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

// DefaultDateFormat is YYYY-MM-DD HH:MM:SS
const DefaultDateFormat = "2006-01-02 15:04:05"

// IDSet is the batch-level record of transaction ids already accepted.
// It is owned by the caller; the validator only reads it.
type IDSet interface {
	Contains(id string) bool
}

// SeenIDs is a map-backed IDSet
type SeenIDs map[string]struct{}

// Contains implements the IDSet interface
func (s SeenIDs) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add records id as seen
func (s SeenIDs) Add(id string) {
	s[id] = struct{}{}
}

// Options configures the default rule chain
type Options struct {
	DateFormat string
	Location   *time.Location
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
	ValidTypes []domain.TransactionType
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		DateFormat: DefaultDateFormat,
		MinAmount:  decimal.NewFromInt(1),
		MaxAmount:  decimal.NewFromInt(250000),
		ValidTypes: domain.TransactionTypes,
	}
}

// DefaultRules returns the record checks in the order they must run
func DefaultRules(opts Options) []Rule {
	return []Rule{
		NewRequiredFieldsRule(),
		NewDateFormatRule(opts.DateFormat, opts.Location),
		NewSequentialDatesRule(),
		NewAmountRangeRule(opts.MinAmount, opts.MaxAmount),
		NewTransactionTypeRule(opts.ValidTypes),
	}
}

// Validator checks structural and business-rule validity of raw transactions
type Validator struct {
	rules []Rule
}

// New creates a Validator running the default rules for opts
func New(opts Options) *Validator {
	return NewWithRules(DefaultRules(opts)...)
}

// NewWithRules creates a Validator with the given rules, or the defaults if none are given
func NewWithRules(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules(DefaultOptions())
	}

	return &Validator{
		rules: rules,
	}
}

// Check runs every per-record rule in order and stops at the first failure.
// It does not look at other records of the batch.
func (v *Validator) Check(raw domain.RawTransaction) (domain.ValidTransaction, error) {
	tx := domain.ValidTransaction{Raw: raw}

	for _, rule := range v.rules {
		if verr := rule.Check(raw, &tx); verr != nil {
			return domain.ValidTransaction{}, verr
		}
	}

	return tx, nil
}

// CheckUnique rejects tx if its id is already in seen
func (v *Validator) CheckUnique(tx domain.ValidTransaction, seen IDSet) error {
	if seen != nil && seen.Contains(TransactionKey(tx.Raw)) {
		return domain.NewValidationError(domain.ReasonDuplicateTransactionID, domain.ColTransID,
			"transaction id %q already seen in this batch", tx.Raw.TransID)
	}
	return nil
}

// Validate runs Check followed by CheckUnique. It has no side effects; recording the id
// in seen is left to the caller.
func (v *Validator) Validate(raw domain.RawTransaction, seen IDSet) (domain.ValidTransaction, error) {
	tx, err := v.Check(raw)
	if err != nil {
		return domain.ValidTransaction{}, err
	}

	if err := v.CheckUnique(tx, seen); err != nil {
		return domain.ValidTransaction{}, err
	}

	return tx, nil
}

// TransactionKey is the normalized id used for duplicate detection
func TransactionKey(raw domain.RawTransaction) string {
	return strings.TrimSpace(raw.TransID)
}
