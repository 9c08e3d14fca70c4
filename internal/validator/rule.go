package validator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

// Rule checks one aspect of a raw transaction and fills in the parsed fields it owns
type Rule interface {
	Check(raw domain.RawTransaction, tx *domain.ValidTransaction) *domain.ValidationError
}

// RequiredFieldsRule rejects records with an empty or whitespace-only column
type RequiredFieldsRule struct{}

// NewRequiredFieldsRule creates a new RequiredFieldsRule
func NewRequiredFieldsRule() *RequiredFieldsRule {
	return &RequiredFieldsRule{}
}

// Check implements the Rule interface
func (r *RequiredFieldsRule) Check(raw domain.RawTransaction, tx *domain.ValidTransaction) *domain.ValidationError {
	for _, column := range domain.RawColumns {
		if strings.TrimSpace(raw.Field(column)) == "" {
			return domain.NewValidationError(domain.ReasonMissingField, column, "value is empty")
		}
	}

	tx.Raw = raw
	return nil
}

// DateFormatRule parses both timestamps with a single configured layout
type DateFormatRule struct {
	Layout   string
	Location *time.Location
}

// NewDateFormatRule creates a new DateFormatRule. A nil location parses zone-less timestamps as UTC.
func NewDateFormatRule(layout string, loc *time.Location) *DateFormatRule {
	return &DateFormatRule{
		Layout:   layout,
		Location: loc,
	}
}

// Check implements the Rule interface
func (r *DateFormatRule) Check(raw domain.RawTransaction, tx *domain.ValidTransaction) *domain.ValidationError {
	start, err := r.parse(raw.TransactionStartDate)
	if err != nil {
		return domain.NewValidationError(domain.ReasonMalformedDate, domain.ColStartDate, "parsing %q: %w", raw.TransactionStartDate, err)
	}

	end, err := r.parse(raw.TransactionEndDate)
	if err != nil {
		return domain.NewValidationError(domain.ReasonMalformedDate, domain.ColEndDate, "parsing %q: %w", raw.TransactionEndDate, err)
	}

	tx.StartTime = start
	tx.EndTime = end
	return nil
}

func (r *DateFormatRule) parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if r.Location == nil {
		return time.Parse(r.Layout, value)
	}
	return time.ParseInLocation(r.Layout, value, r.Location)
}

// SequentialDatesRule rejects records that end before they start. Equal timestamps are valid.
type SequentialDatesRule struct{}

// NewSequentialDatesRule creates a new SequentialDatesRule
func NewSequentialDatesRule() *SequentialDatesRule {
	return &SequentialDatesRule{}
}

// Check implements the Rule interface
func (r *SequentialDatesRule) Check(raw domain.RawTransaction, tx *domain.ValidTransaction) *domain.ValidationError {
	if tx.EndTime.Before(tx.StartTime) {
		return domain.NewValidationError(domain.ReasonNonSequentialDates, domain.ColEndDate,
			"end %s is before start %s", raw.TransactionEndDate, raw.TransactionStartDate)
	}
	return nil
}

// AmountRangeRule requires a positive amount within [Min, Max]
type AmountRangeRule struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

const maxAmountExponent = 18

// NewAmountRangeRule creates a new AmountRangeRule with inclusive bounds
func NewAmountRangeRule(minAmount, maxAmount decimal.Decimal) *AmountRangeRule {
	return &AmountRangeRule{
		Min: minAmount,
		Max: maxAmount,
	}
}

// Check implements the Rule interface
func (r *AmountRangeRule) Check(raw domain.RawTransaction, tx *domain.ValidTransaction) *domain.ValidationError {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw.TransAmount))
	if err != nil {
		return domain.NewValidationError(domain.ReasonAmountOutOfRange, domain.ColAmount, "parsing %q: %w", raw.TransAmount, err)
	}

	// Comparing decimals rescales to a common exponent, so extreme exponents are refused first
	if e := amount.Exponent(); e > maxAmountExponent || e < -maxAmountExponent {
		return domain.NewValidationError(domain.ReasonAmountOutOfRange, domain.ColAmount,
			"amount %q has exponent %d outside [-%d, %d]", raw.TransAmount, e, maxAmountExponent, maxAmountExponent)
	}

	if !amount.IsPositive() {
		return domain.NewValidationError(domain.ReasonAmountOutOfRange, domain.ColAmount, "amount %s is not positive", amount)
	}

	if amount.LessThan(r.Min) || amount.GreaterThan(r.Max) {
		return domain.NewValidationError(domain.ReasonAmountOutOfRange, domain.ColAmount,
			"amount %s outside [%s, %s]", amount, r.Min, r.Max)
	}

	tx.Amount = amount
	return nil
}

// TransactionTypeRule accepts only the configured set of transaction types
type TransactionTypeRule struct {
	allowed map[domain.TransactionType]bool
}

// NewTransactionTypeRule creates a new TransactionTypeRule for the given types
func NewTransactionTypeRule(types []domain.TransactionType) *TransactionTypeRule {
	allowed := make(map[domain.TransactionType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return &TransactionTypeRule{
		allowed: allowed,
	}
}

// Check implements the Rule interface
func (r *TransactionTypeRule) Check(raw domain.RawTransaction, tx *domain.ValidTransaction) *domain.ValidationError {
	txnType := domain.TransactionType(strings.TrimSpace(raw.TransactionType))
	if !r.allowed[txnType] {
		return domain.NewValidationError(domain.ReasonUnknownTransactionType, domain.ColType, "unknown transaction type %q", raw.TransactionType)
	}

	tx.Type = txnType
	return nil
}
