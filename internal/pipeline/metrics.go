package pipeline

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"go.uber.org/zap"
)

// reduce merges per-record outcomes into the run result. It is the only step that touches
// the output slices and metrics, and it walks records in input order.
func (p *Pipeline) reduce(raws []domain.RawTransaction, outcomes []outcome) domain.RunResult {
	result := domain.RunResult{
		Transformed: make([]domain.TransformedTransaction, 0, len(raws)),
		Rejections:  make([]domain.RejectionRecord, 0),
		Summary:     domain.NewSummaryMetrics(),
	}
	metrics := &result.Summary
	metrics.TotalInput = len(raws)

	for i, o := range outcomes {
		if o.rejection != nil {
			rec := domain.NewRejectionRecord(raws[i], o.rejection)
			result.Rejections = append(result.Rejections, rec)

			metrics.Rejected++
			metrics.RejectedByReason[rec.Reason]++

			p.logger.Debug("transaction rejected",
				zap.Int("line", rec.Line),
				zap.String("trans_id", rec.TransID),
				zap.String("reason", string(rec.Reason)),
				zap.String("field", rec.Field),
				zap.String("message", rec.Message),
			)
			continue
		}

		result.Transformed = append(result.Transformed, o.txn)
		accumulate(metrics, o)
	}

	finalize(metrics)

	p.logger.Info("batch transformed",
		zap.Int("total", metrics.TotalInput),
		zap.Int("accepted", metrics.Accepted),
		zap.Int("rejected", metrics.Rejected),
		zap.String("total_fees", metrics.TotalFees.StringFixed(2)),
		zap.Float64("quality_score", metrics.QualityScore),
	)

	return result
}

func accumulate(metrics *domain.SummaryMetrics, o outcome) {
	metrics.Accepted++
	metrics.TotalAmount = metrics.TotalAmount.Add(o.valid.Amount)
	metrics.TotalFees = metrics.TotalFees.Add(o.txn.Fee)
	metrics.TotalNetAmount = metrics.TotalNetAmount.Add(o.txn.NetAmount)

	metrics.ByTransactionType[string(o.valid.Type)]++
	metrics.ByCategory[string(o.txn.Category)]++
	metrics.ByAmountCategory[o.txn.AmountCategory]++

	start := o.valid.StartTime
	if metrics.EarliestStart.IsZero() || start.Before(metrics.EarliestStart) {
		metrics.EarliestStart = start
	}
	if metrics.LatestStart.IsZero() || start.After(metrics.LatestStart) {
		metrics.LatestStart = start
	}
}

func finalize(metrics *domain.SummaryMetrics) {
	if metrics.TotalInput == 0 {
		metrics.QualityScore = 100
		return
	}

	score := float64(metrics.Accepted) / float64(metrics.TotalInput) * 100
	metrics.QualityScore = math.Round(score*100) / 100

	if metrics.Accepted == 0 {
		return
	}

	accepted := decimal.NewFromInt(int64(metrics.Accepted))
	metrics.AverageAmount = metrics.TotalAmount.DivRound(accepted, 2)
	metrics.AverageFee = metrics.TotalFees.DivRound(accepted, 2)
}
