package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryMetrics accumulates counts and totals over one pipeline run
type SummaryMetrics struct {
	TotalInput       int            `json:"total_input"`
	Accepted         int            `json:"accepted"`
	Rejected         int            `json:"rejected"`
	RejectedByReason map[Reason]int `json:"rejected_by_reason"`

	TotalAmount    decimal.Decimal `json:"total_amount"`
	AverageAmount  decimal.Decimal `json:"average_amount"`
	TotalFees      decimal.Decimal `json:"total_fees"`
	AverageFee     decimal.Decimal `json:"average_fee"`
	TotalNetAmount decimal.Decimal `json:"total_net_amount"`

	ByTransactionType map[string]int `json:"by_transaction_type"`
	ByCategory        map[string]int `json:"by_category"`
	ByAmountCategory  map[string]int `json:"by_amount_category"`

	EarliestStart time.Time `json:"earliest_start"`
	LatestStart   time.Time `json:"latest_start"`

	// QualityScore is the accepted share of the input, in percent
	QualityScore float64 `json:"quality_score"`
}

// NewSummaryMetrics returns zeroed metrics with every rejection reason present
func NewSummaryMetrics() SummaryMetrics {
	byReason := make(map[Reason]int, len(Reasons))
	for _, r := range Reasons {
		byReason[r] = 0
	}

	return SummaryMetrics{
		RejectedByReason:  byReason,
		TotalAmount:       decimal.Zero,
		AverageAmount:     decimal.Zero,
		TotalFees:         decimal.Zero,
		AverageFee:        decimal.Zero,
		TotalNetAmount:    decimal.Zero,
		ByTransactionType: make(map[string]int),
		ByCategory:        make(map[string]int),
		ByAmountCategory:  make(map[string]int),
	}
}

// RunResult is the outcome of a pipeline run over one batch
type RunResult struct {
	Transformed []TransformedTransaction
	Rejections  []RejectionRecord
	Summary     SummaryMetrics
}

// RunReport is the read-only result handed to reporting collaborators.
// Run metadata is kept here and never in the transformed records.
type RunReport struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	InputPath  string            `json:"input_path"`
	OutputPath string            `json:"output_path"`
	Summary    SummaryMetrics    `json:"summary"`
	Rejections []RejectionRecord `json:"rejections"`
}
