package fileutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmptyFile is returned when a CSV file has no header row
var ErrEmptyFile = errors.New("csv file is empty")

// CSVReader provides a helper/utility to read CSV file(s)
type CSVReader struct {
	FilePath string
}

// NewCSVReader returns a CSVReader instance for a specified CSV file
func NewCSVReader(fp string) *CSVReader {
	return &CSVReader{
		FilePath: fp,
	}
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	// Ragged rows are reported to the caller instead of failing the whole file
	reader.FieldsPerRecord = -1
	return reader
}

// ReadHeader reads ONLY the header of the specified CSV file
func (r *CSVReader) ReadHeader() ([]string, error) {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return nil, fmt.Errorf("opening a csv file: %w", err)
	}
	defer f.Close()

	header, err := newReader(f).Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	return header, nil
}

// ReadAndProcessByRow reads and processes a CSV file row by row, allows for streaming large file(s).
// line is the 1-based line number of the row in the file, the header being line 1.
func (r *CSVReader) ReadAndProcessByRow(processorFn func(line int, row []string) error) error {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return fmt.Errorf("opening a csv file: %w", err)
	}
	defer f.Close()

	reader := newReader(f)

	// Skip header
	_, err = reader.Read()
	if err == io.EOF {
		return ErrEmptyFile
	}
	if err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}

	// read and process row by row
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break // end of file, stop
		}
		if err != nil {
			return fmt.Errorf("reading CSV row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if err = processorFn(line, row); err != nil {
			return err
		}
	}

	return nil
}

// WriteCSVAtomic writes header and rows to a temporary file next to path and renames it into
// place. On any failure the temporary file is removed and path is left untouched.
func WriteCSVAtomic(path string, header []string, rows [][]string) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		writer := csv.NewWriter(w)

		if err := writer.Write(header); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}

		if err := writer.WriteAll(rows); err != nil {
			return fmt.Errorf("writing CSV rows: %w", err)
		}

		return nil
	})
}
