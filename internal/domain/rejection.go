package domain

import "fmt"

// Reason is the code explaining why a record was rejected
type Reason string

// Rejection reasons
const (
	ReasonMissingField           Reason = "MissingField"
	ReasonMalformedDate          Reason = "MalformedDate"
	ReasonNonSequentialDates     Reason = "NonSequentialDates"
	ReasonAmountOutOfRange       Reason = "AmountOutOfRange"
	ReasonUnknownTransactionType Reason = "UnknownTransactionType"
	ReasonDuplicateTransactionID Reason = "DuplicateTransactionID"
	ReasonNegativeNetAmount      Reason = "NegativeNetAmount"
	ReasonEmptyName              Reason = "EmptyName"
)

// Reasons lists every rejection reason in validation order
var Reasons = []Reason{
	ReasonMissingField,
	ReasonMalformedDate,
	ReasonNonSequentialDates,
	ReasonAmountOutOfRange,
	ReasonUnknownTransactionType,
	ReasonDuplicateTransactionID,
	ReasonNegativeNetAmount,
	ReasonEmptyName,
}

// ValidationError is a per-record failure. The record is skipped and the batch continues.
type ValidationError struct {
	Reason Reason
	Field  string
	Err    error
}

// NewValidationError creates a ValidationError for the given reason and offending field
func NewValidationError(reason Reason, field string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Reason: reason,
		Field:  field,
		Err:    fmt.Errorf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Field)
	}
	return fmt.Sprintf("%s: %s: %v", e.Reason, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RejectionRecord is retained for reporting on every input record that produced no output
type RejectionRecord struct {
	Line    int    `json:"line"`
	TransID string `json:"trans_id"`
	Reason  Reason `json:"reason"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewRejectionRecord builds the rejection record for a raw transaction and its validation error
func NewRejectionRecord(raw RawTransaction, verr *ValidationError) RejectionRecord {
	msg := ""
	if verr.Err != nil {
		msg = verr.Err.Error()
	}

	return RejectionRecord{
		Line:    raw.Line,
		TransID: raw.TransID,
		Reason:  verr.Reason,
		Field:   verr.Field,
		Message: msg,
	}
}
