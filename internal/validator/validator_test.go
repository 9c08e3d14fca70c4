package validator_test

import (
	"errors"
	"testing"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/validator"
)

func TestValidator_Validate(t *testing.T) {
	v := validator.New(validator.DefaultOptions())
	seen := validator.SeenIDs{}

	tx, err := v.Validate(validRaw(), seen)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tx.Amount.String() != "500" {
		t.Errorf("Expected amount 500, got %s", tx.Amount)
	}

	if tx.Type != domain.SendMoney {
		t.Errorf("Expected type Send Money, got %s", tx.Type)
	}

	if tx.EndTime.Sub(tx.StartTime).Seconds() != 12 {
		t.Errorf("Expected 12 seconds between start and end, got %v", tx.EndTime.Sub(tx.StartTime))
	}

	// Validate has no side effects on the seen set
	if seen.Contains("MA123F") {
		t.Errorf("Expected Validate not to record the id")
	}
}

func TestValidator_Reasons(t *testing.T) {
	v := validator.New(validator.DefaultOptions())

	tests := []struct {
		name   string
		mutate func(r *domain.RawTransaction)
		reason domain.Reason
		field  string
	}{
		{"missing id", func(r *domain.RawTransaction) { r.TransID = "" }, domain.ReasonMissingField, domain.ColTransID},
		{"bad start", func(r *domain.RawTransaction) { r.TransactionStartDate = "01/01/2023 08:00" }, domain.ReasonMalformedDate, domain.ColStartDate},
		{"reversed", func(r *domain.RawTransaction) { r.TransactionEndDate = "2023-01-01 07:59:59" }, domain.ReasonNonSequentialDates, domain.ColEndDate},
		{"too large", func(r *domain.RawTransaction) { r.TransAmount = "300000" }, domain.ReasonAmountOutOfRange, domain.ColAmount},
		{"unknown type", func(r *domain.RawTransaction) { r.TransactionType = "Lottery" }, domain.ReasonUnknownTransactionType, domain.ColType},
	}

	for _, tt := range tests {
		raw := validRaw()
		tt.mutate(&raw)

		_, err := v.Validate(raw, validator.SeenIDs{})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *domain.ValidationError, got %v", tt.name, err)
			continue
		}

		if verr.Reason != tt.reason || verr.Field != tt.field {
			t.Errorf("%s: expected %s on %s, got %s on %s", tt.name, tt.reason, tt.field, verr.Reason, verr.Field)
		}
	}
}

func TestValidator_ShortCircuitsInOrder(t *testing.T) {
	v := validator.New(validator.DefaultOptions())

	// Broken in every way: the first check in order wins
	raw := validRaw()
	raw.TransReceiver = ""
	raw.TransactionStartDate = "not a date"
	raw.TransAmount = "-1"
	raw.TransactionType = "Lottery"

	_, err := v.Validate(raw, validator.SeenIDs{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Reason != domain.ReasonMissingField {
		t.Fatalf("Expected MissingField first, got %v", err)
	}

	raw.TransReceiver = "Individual"
	_, err = v.Validate(raw, validator.SeenIDs{})
	if !errors.As(err, &verr) || verr.Reason != domain.ReasonMalformedDate {
		t.Fatalf("Expected MalformedDate second, got %v", err)
	}

	raw.TransactionStartDate = "2023-01-01 08:00:00"
	_, err = v.Validate(raw, validator.SeenIDs{})
	if !errors.As(err, &verr) || verr.Reason != domain.ReasonAmountOutOfRange {
		t.Fatalf("Expected AmountOutOfRange before UnknownTransactionType, got %v", err)
	}

	// An id seen before does not mask an earlier failure
	raw.TransAmount = "500"
	seen := validator.SeenIDs{}
	seen.Add("MA123F")
	_, err = v.Validate(raw, seen)
	if !errors.As(err, &verr) || verr.Reason != domain.ReasonUnknownTransactionType {
		t.Fatalf("Expected UnknownTransactionType before DuplicateTransactionID, got %v", err)
	}
}

func TestValidator_Duplicate(t *testing.T) {
	v := validator.New(validator.DefaultOptions())
	seen := validator.SeenIDs{}

	tx, err := v.Validate(validRaw(), seen)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	seen.Add(validator.TransactionKey(tx.Raw))

	dup := validRaw()
	dup.Line = 2
	dup.TransID = " MA123F "

	_, err = v.Validate(dup, seen)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Reason != domain.ReasonDuplicateTransactionID {
		t.Fatalf("Expected DuplicateTransactionID, got %v", err)
	}

	if verr.Field != domain.ColTransID {
		t.Errorf("Expected offending field %s, got %s", domain.ColTransID, verr.Field)
	}

	// A nil set disables the batch check
	if _, err := v.Validate(dup, nil); err != nil {
		t.Errorf("Expected no duplicate check without a set, got %v", err)
	}
}

func TestNewWithRules_Defaults(t *testing.T) {
	v := validator.NewWithRules()

	if _, err := v.Check(validRaw()); err != nil {
		t.Errorf("Expected default rules to accept a valid record, got %v", err)
	}

	custom := validator.NewWithRules(validator.NewRequiredFieldsRule())
	raw := validRaw()
	raw.TransactionType = "Lottery"
	if _, err := custom.Check(raw); err != nil {
		t.Errorf("Expected custom chain without type rule to accept, got %v", err)
	}
}
