package pipeline

import (
	"errors"
	"sync"

	"github.com/tirasundara/mobile-money-etl/internal/anonymizer"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/feature"
	"github.com/tirasundara/mobile-money-etl/internal/fee"
	"github.com/tirasundara/mobile-money-etl/internal/validator"
	"go.uber.org/zap"
)

// Pipeline runs validation, fee calculation, feature extraction and anonymization over a batch
type Pipeline struct {
	validator *validator.Validator
	fees      *fee.Calculator
	extractor *feature.Extractor
	logger    *zap.Logger
	workers   int
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithWorkers splits per-record work over n goroutines. Values below 2 keep a single pass.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithLogger sets the logger used for rejections and run summaries
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline
func New(v *validator.Validator, fees *fee.Calculator, extractor *feature.Extractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: v,
		fees:      fees,
		extractor: extractor,
		logger:    zap.NewNop(),
		workers:   1,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// outcome holds the state of one input record. Each slot is written by exactly one goroutine.
type outcome struct {
	valid     domain.ValidTransaction
	txn       domain.TransformedTransaction
	rejection *domain.ValidationError
}

// Run processes the batch. Accepted records come out in input order; a rejected record
// never stops the batch.
func (p *Pipeline) Run(raws []domain.RawTransaction) domain.RunResult {
	outcomes := make([]outcome, len(raws))

	// Per-record checks have no cross-record dependency
	p.forEachPartition(len(raws), func(i int) {
		tx, err := p.validator.Check(raws[i])
		if err != nil {
			outcomes[i].rejection = asValidationError(err)
			return
		}
		outcomes[i].valid = tx
	})

	// Duplicate detection runs once over the whole batch, in input order
	seen := validator.SeenIDs{}
	for i := range outcomes {
		if outcomes[i].rejection != nil {
			continue
		}

		if err := p.validator.CheckUnique(outcomes[i].valid, seen); err != nil {
			outcomes[i].rejection = asValidationError(err)
			continue
		}
		seen.Add(validator.TransactionKey(outcomes[i].valid.Raw))
	}

	p.forEachPartition(len(raws), func(i int) {
		if outcomes[i].rejection != nil {
			return
		}

		txn, err := p.Transform(outcomes[i].valid)
		if err != nil {
			outcomes[i].rejection = asValidationError(err)
			return
		}
		outcomes[i].txn = txn
	})

	return p.reduce(raws, outcomes)
}

// Transform builds the output record for one validated transaction
func (p *Pipeline) Transform(tx domain.ValidTransaction) (domain.TransformedTransaction, error) {
	txnFee, net, err := p.fees.Apply(tx.Amount)
	if err != nil {
		return domain.TransformedTransaction{}, err
	}

	f, err := p.extractor.Extract(tx)
	if err != nil {
		return domain.TransformedTransaction{}, err
	}

	senderInitials, err := anonymizer.Initials(tx.Raw.TransSender)
	if err != nil {
		return domain.TransformedTransaction{}, emptyNameError(domain.ColSender, err)
	}

	receiverInitials, err := anonymizer.Initials(tx.Raw.TransReceiver)
	if err != nil {
		return domain.TransformedTransaction{}, emptyNameError(domain.ColReceiver, err)
	}

	return domain.TransformedTransaction{
		RawTransaction:   tx.Raw,
		Duration:         f.Duration,
		Fee:              txnFee,
		NetAmount:        net,
		AmountCategory:   f.AmountCategory,
		Category:         f.Category,
		Date:             f.Date,
		Hour:             f.Hour,
		DayOfWeek:        f.DayOfWeek,
		Month:            f.Month,
		SenderInitials:   senderInitials,
		ReceiverInitials: receiverInitials,
		Extended:         p.extractor.Extended(),
		Year:             f.Year,
		IsWeekend:        f.IsWeekend,
		IsBusinessHour:   f.IsBusinessHour,
		IsHighValue:      f.IsHighValue,
	}, nil
}

// forEachPartition calls fn for every index in [0, n). With more than one worker the range is
// cut into disjoint contiguous partitions, one goroutine each.
func (p *Pipeline) forEachPartition(n int, fn func(i int)) {
	if p.workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := p.workers
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}

	wg.Wait()
}

func asValidationError(err error) *domain.ValidationError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	// Unreachable: every stage returns *domain.ValidationError
	return &domain.ValidationError{Reason: domain.ReasonMissingField, Err: err}
}

func emptyNameError(column string, err error) *domain.ValidationError {
	return &domain.ValidationError{
		Reason: domain.ReasonEmptyName,
		Field:  column,
		Err:    err,
	}
}
