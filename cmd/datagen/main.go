package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tirasundara/mobile-money-etl/internal/generator"
	"github.com/tirasundara/mobile-money-etl/internal/logging"
	"go.uber.org/zap"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		transactions = flag.Int("transactions", cfg.NumTransactions, "number of transactions to generate")
		dirtyRatio   = flag.Float64("dirty-ratio", cfg.DirtyRatio, "share of rows broken so the validator rejects them")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		start        = flag.String("start", cfg.Start.Format("2006-01-02"), "date of the first transaction (YYYY-MM-DD)")
		dateFormat   = flag.String("date-format", cfg.DateFormat, "Go layout of the timestamp columns")
		output       = flag.String("output", "mpesa_sample.csv", "path of the CSV file to write")
	)
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env: %s\n", err)
	}

	logger, err := logging.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_ENCODING"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid start date: %v\n", err)
		os.Exit(1)
	}

	genCfg := generator.Config{
		NumTransactions: *transactions,
		DirtyRatio:      *dirtyRatio,
		Seed:            *seed,
		Start:           startDate,
		DateFormat:      *dateFormat,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rows, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}

	if err := generator.WriteCSV(*output, rows); err != nil {
		logger.Error("failed to write sample", zap.Error(err))
		os.Exit(1)
	}

	fields := []zap.Field{zap.String("output", *output), zap.Int("rows", len(rows))}
	counts := generator.CountDefects(rows)
	for _, defect := range generator.AllDefects {
		fields = append(fields, zap.Int(defect.String(), counts[defect]))
	}
	logger.Info("sample generated", fields...)
}
