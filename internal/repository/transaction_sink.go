package repository

import (
	"strconv"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/pkg/fileutil"
)

// OutputDateFormat is the layout of the TransactionDate column
const OutputDateFormat = "2006-01-02"

// CSVTransactionSink implements the TransactionSink interface for a CSV file
type CSVTransactionSink struct {
	FilePath string
	Extended bool
}

// NewCSVTransactionSink creates a new CSVTransactionSink. With extended set the extended
// feature columns are written after the derived ones.
func NewCSVTransactionSink(fp string, extended bool) *CSVTransactionSink {
	return &CSVTransactionSink{
		FilePath: fp,
		Extended: extended,
	}
}

func (r *CSVTransactionSink) Location() string {
	return r.FilePath
}

// Header returns the output columns in file order
func (r *CSVTransactionSink) Header() []string {
	header := make([]string, 0, len(domain.RawColumns)+len(domain.DerivedColumns)+len(domain.ExtendedColumns))
	header = append(header, domain.RawColumns...)
	header = append(header, domain.DerivedColumns...)
	if r.Extended {
		header = append(header, domain.ExtendedColumns...)
	}
	return header
}

// WriteAll replaces the destination with txns in one atomic step
func (r *CSVTransactionSink) WriteAll(txns []domain.TransformedTransaction) error {
	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, r.row(txn))
	}

	if err := fileutil.WriteCSVAtomic(r.FilePath, r.Header(), rows); err != nil {
		return &domain.IOError{Op: "write", Path: r.FilePath, Err: err}
	}

	return nil
}

func (r *CSVTransactionSink) row(txn domain.TransformedTransaction) []string {
	row := txn.Values()
	row = append(row,
		strconv.FormatInt(txn.Duration, 10),
		txn.Fee.StringFixed(2),
		txn.NetAmount.StringFixed(2),
		txn.AmountCategory,
		string(txn.Category),
		txn.Date.Format(OutputDateFormat),
		strconv.Itoa(txn.Hour),
		txn.DayOfWeek.String(),
		txn.Month.String(),
		txn.SenderInitials,
		txn.ReceiverInitials,
	)

	if r.Extended {
		row = append(row,
			strconv.Itoa(txn.Year),
			strconv.FormatBool(txn.IsWeekend),
			strconv.FormatBool(txn.IsBusinessHour),
			strconv.FormatBool(txn.IsHighValue),
		)
	}

	return row
}
