package generator_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/feature"
	"github.com/tirasundara/mobile-money-etl/internal/fee"
	"github.com/tirasundara/mobile-money-etl/internal/generator"
	"github.com/tirasundara/mobile-money-etl/internal/pipeline"
	"github.com/tirasundara/mobile-money-etl/internal/repository"
	"github.com/tirasundara/mobile-money-etl/internal/validator"
)

func generate(t *testing.T, cfg generator.Config) []generator.Row {
	t.Helper()

	rows, err := generator.New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return rows
}

func run(rows []generator.Row) domain.RunResult {
	raws := make([]domain.RawTransaction, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, row.Raw)
	}

	p := pipeline.New(
		validator.New(validator.DefaultOptions()),
		fee.NewCalculator(fee.DefaultSchedule()),
		feature.NewExtractor(feature.Options{}),
	)
	return p.Run(raws)
}

func TestGenerator_Deterministic(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.NumTransactions = 200
	cfg.DirtyRatio = 0.3

	first := generate(t, cfg)
	second := generate(t, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected the same seed to produce the same rows")
	}

	cfg.Seed = 7
	if reflect.DeepEqual(first, generate(t, cfg)) {
		t.Errorf("Expected a different seed to produce different rows")
	}
}

func TestGenerator_CleanRowsAreAccepted(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.NumTransactions = 500

	rows := generate(t, cfg)
	if len(rows) != 500 {
		t.Fatalf("Expected 500 rows, got %d", len(rows))
	}

	result := run(rows)
	if result.Summary.Rejected != 0 {
		t.Errorf("Expected every clean row accepted, got rejections %v", result.Rejections)
	}
}

func TestGenerator_DirtyRowsAreRejected(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.NumTransactions = 500
	cfg.DirtyRatio = 0.4

	rows := generate(t, cfg)
	counts := generator.CountDefects(rows)

	if counts[generator.DefectNone] == len(rows) {
		t.Fatalf("Expected some dirty rows, got none")
	}

	result := run(rows)

	rejectedLines := make(map[int]bool, len(result.Rejections))
	for _, rej := range result.Rejections {
		rejectedLines[rej.Line] = true
	}

	for _, row := range rows {
		switch row.Defect {
		case generator.DefectNone:
			if rejectedLines[row.Raw.Line] {
				t.Errorf("Expected clean line %d accepted", row.Raw.Line)
			}
		case generator.DefectDuplicateID:
			// The copied id may belong to a row that was itself rejected
		default:
			if !rejectedLines[row.Raw.Line] {
				t.Errorf("Expected line %d with defect %s rejected", row.Raw.Line, row.Defect)
			}
		}
	}
}

func TestGenerator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := generator.New(generator.DefaultConfig()).Generate(ctx); err == nil {
		t.Errorf("Expected an error from a cancelled context")
	}
}

func TestWriteCSV(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.NumTransactions = 25
	rows := generate(t, cfg)

	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := generator.WriteCSV(path, rows); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	raws, err := repository.NewCSVTransactionSource(path).ReadAll()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(raws) != len(rows) {
		t.Fatalf("Expected %d rows read back, got %d", len(rows), len(raws))
	}

	for i := range rows {
		if raws[i] != rows[i].Raw {
			t.Errorf("Row %d: expected %+v, got %+v", i, rows[i].Raw, raws[i])
		}
	}
}

func TestAllDefects(t *testing.T) {
	expected := []string{
		"none", "duplicate_id", "reversed_dates", "unknown_type",
		"amount_out_of_range", "blank_name", "malformed_date",
	}

	names := make([]string, 0, len(generator.AllDefects))
	for _, d := range generator.AllDefects {
		names = append(names, d.String())
	}

	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected defects %v, got %v", expected, names)
	}

	cfg := generator.DefaultConfig()
	cfg.NumTransactions = 300
	cfg.DirtyRatio = 0.5
	rows := generate(t, cfg)

	counts := generator.CountDefects(rows)
	total := 0
	for _, d := range generator.AllDefects {
		total += counts[d]
	}
	if total != len(rows) {
		t.Errorf("Expected every row counted under a listed defect, got %d of %d", total, len(rows))
	}
}
