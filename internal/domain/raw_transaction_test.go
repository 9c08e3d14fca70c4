package domain_test

import (
	"reflect"
	"testing"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

func TestRawTransaction_Values(t *testing.T) {
	raw := domain.RawTransaction{
		Line:                 1,
		TransactionStartDate: "2023-01-01 08:00:00",
		TransactionEndDate:   "2023-01-01 08:00:12",
		TransactionType:      "Send Money",
		TransID:              "MA123F",
		TransAmount:          "500",
		TransReceiver:        "Individual",
		TransSender:          "John Doe",
	}

	expected := []string{
		"2023-01-01 08:00:00",
		"2023-01-01 08:00:12",
		"Send Money",
		"MA123F",
		"500",
		"Individual",
		"John Doe",
	}

	if got := raw.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected values %v, got %v", expected, got)
	}

	if raw.Field(domain.ColTransID) != "MA123F" {
		t.Errorf("Expected TransID field to be 'MA123F', got '%s'", raw.Field(domain.ColTransID))
	}

	if raw.Field("Unknown") != "" {
		t.Errorf("Expected unknown column to be empty, got '%s'", raw.Field("Unknown"))
	}
}

func TestValidationError(t *testing.T) {
	verr := domain.NewValidationError(domain.ReasonMalformedDate, domain.ColStartDate, "cannot parse %q", "yesterday")

	expected := `MalformedDate: TransactionStartDate: cannot parse "yesterday"`
	if verr.Error() != expected {
		t.Errorf("Expected error '%s', got '%s'", expected, verr.Error())
	}

	rec := domain.NewRejectionRecord(domain.RawTransaction{Line: 4, TransID: "MB001G"}, verr)
	if rec.Line != 4 || rec.TransID != "MB001G" {
		t.Errorf("Expected line 4 and TransID MB001G, got %d and %s", rec.Line, rec.TransID)
	}

	if rec.Reason != domain.ReasonMalformedDate || rec.Field != domain.ColStartDate {
		t.Errorf("Expected MalformedDate on %s, got %s on %s", domain.ColStartDate, rec.Reason, rec.Field)
	}

	if rec.Message != `cannot parse "yesterday"` {
		t.Errorf("Unexpected rejection message: %s", rec.Message)
	}
}
