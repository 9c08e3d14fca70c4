package repository

import (
	"errors"
	"fmt"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/pkg/fileutil"
)

// CSVTransactionSource implements the TransactionSource interface for a CSV export
type CSVTransactionSource struct {
	FilePath string
}

// NewCSVTransactionSource creates a new CSVTransactionSource
func NewCSVTransactionSource(fp string) *CSVTransactionSource {
	return &CSVTransactionSource{
		FilePath: fp,
	}
}

func (r *CSVTransactionSource) Location() string {
	return r.FilePath
}

// ReadAll reads every data row as text. Columns are located by header name, extra columns are
// ignored and a row too short for a column gets an empty value for it.
func (r *CSVTransactionSource) ReadAll() ([]domain.RawTransaction, error) {
	reader := fileutil.NewCSVReader(r.FilePath)

	header, err := reader.ReadHeader()
	if err != nil {
		return nil, r.ioError(fmt.Errorf("reading transaction header: %w", err))
	}

	columnMap, err := createHeaderMap(header, domain.RawColumns)
	if err != nil {
		return nil, r.ioError(fmt.Errorf("mapping CSV columns: %w", err))
	}

	var txns []domain.RawTransaction
	var rowProcessorFn = func(line int, row []string) error {
		cell := func(column string) string {
			idx := columnMap[column]
			if idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		txns = append(txns, domain.RawTransaction{
			Line:                 line,
			TransactionStartDate: cell(domain.ColStartDate),
			TransactionEndDate:   cell(domain.ColEndDate),
			TransactionType:      cell(domain.ColType),
			TransID:              cell(domain.ColTransID),
			TransAmount:          cell(domain.ColAmount),
			TransReceiver:        cell(domain.ColReceiver),
			TransSender:          cell(domain.ColSender),
		})
		return nil
	}

	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return nil, r.ioError(fmt.Errorf("reading transactions: %w", err))
	}

	return txns, nil
}

func (r *CSVTransactionSource) ioError(err error) error {
	return &domain.IOError{Op: "read", Path: r.FilePath, Err: err}
}

// IsIOError reports whether err is or wraps a *domain.IOError
func IsIOError(err error) bool {
	var ioErr *domain.IOError
	return errors.As(err, &ioErr)
}
