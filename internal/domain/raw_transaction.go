package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a mobile-money transaction
type TransactionType string

// Transaction types
const (
	PayBill         TransactionType = "Pay Bill"
	SendMoney       TransactionType = "Send Money"
	Withdrawal      TransactionType = "Withdrawal"
	Deposit         TransactionType = "Deposit"
	AirtimePurchase TransactionType = "Airtime Purchase"
)

// TransactionTypes lists every transaction type the system knows how to categorize
var TransactionTypes = []TransactionType{PayBill, SendMoney, Withdrawal, Deposit, AirtimePurchase}

// Input column names
const (
	ColStartDate = "TransactionStartDate"
	ColEndDate   = "TransactionEndDate"
	ColType      = "TransactionType"
	ColTransID   = "TransID"
	ColAmount    = "TransAmount"
	ColReceiver  = "TransReceiver"
	ColSender    = "TransSender"
)

// RawColumns is the input header, in file order
var RawColumns = []string{ColStartDate, ColEndDate, ColType, ColTransID, ColAmount, ColReceiver, ColSender}

// RawTransaction represents one row of the input file. Fields are kept verbatim.
type RawTransaction struct {
	Line                 int // line in the input file; the header is line 1
	TransactionStartDate string
	TransactionEndDate   string
	TransactionType      string
	TransID              string
	TransAmount          string
	TransReceiver        string
	TransSender          string
}

// Field returns the raw value of the named input column
func (r RawTransaction) Field(column string) string {
	switch column {
	case ColStartDate:
		return r.TransactionStartDate
	case ColEndDate:
		return r.TransactionEndDate
	case ColType:
		return r.TransactionType
	case ColTransID:
		return r.TransID
	case ColAmount:
		return r.TransAmount
	case ColReceiver:
		return r.TransReceiver
	case ColSender:
		return r.TransSender
	}
	return ""
}

// Values returns the raw fields in RawColumns order
func (r RawTransaction) Values() []string {
	values := make([]string, 0, len(RawColumns))
	for _, column := range RawColumns {
		values = append(values, r.Field(column))
	}
	return values
}

// ValidTransaction is a raw transaction that passed validation, with its fields parsed
type ValidTransaction struct {
	Raw       RawTransaction
	StartTime time.Time
	EndTime   time.Time
	Type      TransactionType
	Amount    decimal.Decimal
}
