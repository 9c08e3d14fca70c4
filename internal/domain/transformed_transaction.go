package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCategory is the coarse grouping derived from a TransactionType
type TransactionCategory string

// Transaction categories
const (
	CategoryPayment           TransactionCategory = "Payment"
	CategoryTransfer          TransactionCategory = "Transfer"
	CategoryDepositWithdrawal TransactionCategory = "Deposit/Withdrawal"
)

// TransactionCategories lists the allowed categories
var TransactionCategories = []TransactionCategory{CategoryPayment, CategoryTransfer, CategoryDepositWithdrawal}

// DefaultCategoryMapping maps each known transaction type to its category
func DefaultCategoryMapping() map[TransactionType]TransactionCategory {
	return map[TransactionType]TransactionCategory{
		PayBill:         CategoryPayment,
		AirtimePurchase: CategoryPayment,
		SendMoney:       CategoryTransfer,
		Withdrawal:      CategoryDepositWithdrawal,
		Deposit:         CategoryDepositWithdrawal,
	}
}

// Derived column names
const (
	ColDuration         = "TransactionDuration"
	ColFee              = "TransactionFee"
	ColNetAmount        = "NetAmount"
	ColAmountCategory   = "AmountCategory"
	ColCategory         = "TransactionCategory"
	ColDate             = "TransactionDate"
	ColHour             = "TransactionHour"
	ColDayOfWeek        = "TransactionDayOfWeek"
	ColMonth            = "TransactionMonth"
	ColSenderInitials   = "SenderInitials"
	ColReceiverInitials = "ReceiverInitials"

	ColYear           = "TransactionYear"
	ColIsWeekend      = "IsWeekend"
	ColIsBusinessHour = "IsBusinessHour"
	ColIsHighValue    = "IsHighValue"
)

// DerivedColumns are appended to RawColumns in the output file
var DerivedColumns = []string{
	ColDuration, ColFee, ColNetAmount, ColAmountCategory, ColCategory, ColDate,
	ColHour, ColDayOfWeek, ColMonth, ColSenderInitials, ColReceiverInitials,
}

// ExtendedColumns are written after DerivedColumns when extended features are enabled
var ExtendedColumns = []string{ColYear, ColIsWeekend, ColIsBusinessHour, ColIsHighValue}

// TransformedTransaction represents an accepted transaction with all derived analytic fields.
// It is built once per accepted RawTransaction and not modified afterwards.
type TransformedTransaction struct {
	RawTransaction

	Duration       int64 // seconds
	Fee            decimal.Decimal
	NetAmount      decimal.Decimal
	AmountCategory string
	Category       TransactionCategory
	Date           time.Time // start date at midnight, same location as the start time
	Hour           int
	DayOfWeek      time.Weekday
	Month          time.Month

	SenderInitials   string
	ReceiverInitials string

	// Populated only when extended features are enabled
	Extended       bool
	Year           int
	IsWeekend      bool
	IsBusinessHour bool
	IsHighValue    bool
}
