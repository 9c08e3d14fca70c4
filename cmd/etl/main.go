package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/tirasundara/mobile-money-etl/internal/config"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/feature"
	"github.com/tirasundara/mobile-money-etl/internal/fee"
	"github.com/tirasundara/mobile-money-etl/internal/logging"
	"github.com/tirasundara/mobile-money-etl/internal/pipeline"
	"github.com/tirasundara/mobile-money-etl/internal/report"
	"github.com/tirasundara/mobile-money-etl/internal/repository"
	"github.com/tirasundara/mobile-money-etl/internal/service"
	"github.com/tirasundara/mobile-money-etl/internal/validator"
	"go.uber.org/zap"
)

func main() {
	// Command-line flags
	var (
		configFile   string
		inputFile    string
		outputFile   string
		workers      int
		logLevel     string
		reportFormat string
		reportFile   string
		prettyPrint  bool
	)

	flag.StringVar(&configFile, "config", "", "Path to a YAML or JSON config file (default $"+config.PathEnv+")")
	flag.StringVar(&inputFile, "input", "", "Path to the raw transactions CSV file (overrides input_path)")
	flag.StringVar(&outputFile, "output", "", "Path to the transformed CSV file (overrides output_path)")
	flag.IntVar(&workers, "workers", 0, "Number of goroutines for per-record work (overrides workers)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")
	flag.StringVar(&reportFormat, "format", "text", "Run report format: json or text")
	flag.StringVar(&reportFile, "report", "", "Path to the run report file (if empty, writes to stdout)")
	flag.BoolVar(&prettyPrint, "pretty", true, "Pretty print JSON report")

	flag.Parse()

	// Load .env
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env: %s\n", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid configuration: %v", err))
	}

	// Flags win over the config file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = inputFile
		case "output":
			cfg.OutputPath = outputFile
		case "workers":
			cfg.Workers = workers
		case "log-level":
			cfg.Logging.Level = logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		exitWithError(fmt.Sprintf("Invalid configuration: %v", err))
	}

	formatter, err := report.NewFormatter(reportFormat, prettyPrint)
	if err != nil {
		exitWithError(err.Error())
	}

	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to build logger: %v", err))
	}
	defer logger.Sync()

	etl, err := buildService(cfg, logger)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid configuration: %v", err))
	}

	// Run the batch
	runReport, err := etl.Execute()
	if err != nil {
		var ioErr *domain.IOError
		if errors.As(err, &ioErr) {
			logger.Error("run aborted", zap.String("op", ioErr.Op), zap.String("path", ioErr.Path), zap.Error(ioErr.Err))
		}
		logger.Sync()
		exitWithError(fmt.Sprintf("ETL run failed: %v", err))
	}

	// Output the report
	if reportFile != "" {
		if err := report.WriteFile(reportFile, formatter, runReport); err != nil {
			exitWithError(fmt.Sprintf("Failed to write report file: %v", err))
		}
		logger.Info("run report written", zap.String("path", reportFile))
		return
	}

	if err := report.Write(os.Stdout, formatter, runReport); err != nil {
		exitWithError(fmt.Sprintf("Failed to write report: %v", err))
	}
}

func buildService(cfg *config.Config, logger *zap.Logger) (*service.ETLService, error) {
	vopts, err := cfg.ValidatorOptions()
	if err != nil {
		return nil, err
	}

	eopts, err := cfg.ExtractorOptions()
	if err != nil {
		return nil, err
	}

	p := pipeline.New(
		validator.New(vopts),
		fee.NewCalculator(cfg.FeeSchedule()),
		feature.NewExtractor(eopts),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithLogger(logger),
	)

	return service.NewETLService(
		repository.NewCSVTransactionSource(cfg.InputPath),
		repository.NewCSVTransactionSink(cfg.OutputPath, cfg.Features.Extended),
		p,
		service.WithLogger(logger),
	), nil
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	os.Exit(1)
}
