package repository_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/repository"
)

func transformed() domain.TransformedTransaction {
	start := time.Date(2023, time.January, 7, 8, 0, 0, 0, time.UTC)

	return domain.TransformedTransaction{
		RawTransaction: domain.RawTransaction{
			Line:                 2,
			TransactionStartDate: "2023-01-07 08:00:00",
			TransactionEndDate:   "2023-01-07 08:00:12",
			TransactionType:      "Send Money",
			TransID:              "MA001F",
			TransAmount:          "500",
			TransReceiver:        "Doe, John",
			TransSender:          "Mary Jane Watson",
		},
		Duration:         12,
		Fee:              decimal.NewFromInt(5),
		NetAmount:        decimal.NewFromInt(495),
		AmountCategory:   "Medium",
		Category:         domain.CategoryTransfer,
		Date:             time.Date(2023, time.January, 7, 0, 0, 0, 0, time.UTC),
		Hour:             start.Hour(),
		DayOfWeek:        start.Weekday(),
		Month:            start.Month(),
		SenderInitials:   "MJW",
		ReceiverInitials: "DJ",
		Extended:         true,
		Year:             2023,
		IsWeekend:        true,
		IsBusinessHour:   true,
		IsHighValue:      false,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}
	return records
}

func TestCSVTransactionSink_WriteAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transformed_data", "out.csv")
	sink := repository.NewCSVTransactionSink(path, false)

	if err := sink.WriteAll([]domain.TransformedTransaction{transformed()}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("Expected header and 1 row, got %d records", len(records))
	}

	expectedHeader := append(append([]string{}, domain.RawColumns...), domain.DerivedColumns...)
	if strings.Join(records[0], ",") != strings.Join(expectedHeader, ",") {
		t.Errorf("Expected header %v, got %v", expectedHeader, records[0])
	}

	expectedRow := []string{
		"2023-01-07 08:00:00", "2023-01-07 08:00:12", "Send Money", "MA001F", "500", "Doe, John", "Mary Jane Watson",
		"12", "5.00", "495.00", "Medium", "Transfer", "2023-01-07", "8", "Saturday", "January", "MJW", "DJ",
	}
	if strings.Join(records[1], "|") != strings.Join(expectedRow, "|") {
		t.Errorf("Expected row %v, got %v", expectedRow, records[1])
	}
}

func TestCSVTransactionSink_Extended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	sink := repository.NewCSVTransactionSink(path, true)

	if err := sink.WriteAll([]domain.TransformedTransaction{transformed()}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records := readCSV(t, path)
	header := records[0]
	row := records[1]

	if len(header) != len(domain.RawColumns)+len(domain.DerivedColumns)+len(domain.ExtendedColumns) {
		t.Fatalf("Expected extended header, got %v", header)
	}

	tail := strings.Join(row[len(row)-4:], ",")
	if tail != "2023,true,true,false" {
		t.Errorf("Expected extended values 2023,true,true,false, got %s", tail)
	}
}

func TestCSVTransactionSink_EmptyBatchWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := repository.NewCSVTransactionSink(path, false).WriteAll(nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 1 {
		t.Errorf("Expected only a header row, got %d records", len(records))
	}
}

func TestCSVTransactionSink_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	// The parent of the destination is a regular file
	sink := repository.NewCSVTransactionSink(filepath.Join(blocker, "out.csv"), false)

	err := sink.WriteAll([]domain.TransformedTransaction{transformed()})
	if !repository.IsIOError(err) {
		t.Errorf("Expected IOError, got %v", err)
	}
}
