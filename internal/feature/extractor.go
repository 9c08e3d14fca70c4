package feature

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

// Options configures an Extractor
type Options struct {
	// Location converts start times before calendar projection. Nil keeps parsed times as they are.
	Location *time.Location

	Bands      *Bands
	Categories map[domain.TransactionType]domain.TransactionCategory

	Extended           bool
	HighValueThreshold decimal.Decimal
	BusinessHourStart  int
	BusinessHourEnd    int
}

// Features are the temporal and categorical fields derived from one validated transaction
type Features struct {
	Duration       int64
	AmountCategory string
	Category       domain.TransactionCategory
	Date           time.Time
	Hour           int
	DayOfWeek      time.Weekday
	Month          time.Month

	Year           int
	IsWeekend      bool
	IsBusinessHour bool
	IsHighValue    bool
}

// Extractor derives Features from validated transactions
type Extractor struct {
	opts Options
}

// NewExtractor creates a new Extractor, filling unset options with defaults
func NewExtractor(opts Options) *Extractor {
	if opts.Bands == nil {
		opts.Bands, _ = NewBands(DefaultBands(), domain.LowerInclusive)
	}
	if opts.Categories == nil {
		opts.Categories = domain.DefaultCategoryMapping()
	}

	return &Extractor{
		opts: opts,
	}
}

// Extract computes the features of tx
func (e *Extractor) Extract(tx domain.ValidTransaction) (Features, error) {
	category, ok := e.opts.Categories[tx.Type]
	if !ok {
		return Features{}, domain.NewValidationError(domain.ReasonUnknownTransactionType, domain.ColType,
			"no category for transaction type %q", tx.Type)
	}

	start := tx.StartTime
	end := tx.EndTime
	if e.opts.Location != nil {
		start = start.In(e.opts.Location)
		end = end.In(e.opts.Location)
	}

	f := Features{
		Duration:       int64(end.Sub(start) / time.Second),
		AmountCategory: e.opts.Bands.Categorize(tx.Amount),
		Category:       category,
		Date:           time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		Hour:           start.Hour(),
		DayOfWeek:      start.Weekday(),
		Month:          start.Month(),
	}

	if e.opts.Extended {
		f.Year = start.Year()
		f.IsWeekend = f.DayOfWeek == time.Saturday || f.DayOfWeek == time.Sunday
		f.IsBusinessHour = f.Hour >= e.opts.BusinessHourStart && f.Hour <= e.opts.BusinessHourEnd
		f.IsHighValue = tx.Amount.GreaterThan(e.opts.HighValueThreshold)
	}

	return f, nil
}

// Extended reports whether extended features are computed
func (e *Extractor) Extended() bool {
	return e.opts.Extended
}
