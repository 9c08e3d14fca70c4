package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/pipeline"
	"go.uber.org/zap"
)

// ETLService orchestrates one run: read the batch once, transform it, write it once
type ETLService struct {
	source   domain.TransactionSource
	sink     domain.TransactionSink
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures an ETLService
type Option func(*ETLService)

func WithLogger(logger *zap.Logger) Option {
	return func(s *ETLService) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for the run timestamps
func WithClock(now func() time.Time) Option {
	return func(s *ETLService) {
		s.now = now
	}
}

// NewETLService creates a new ETLService
func NewETLService(
	source domain.TransactionSource,
	sink domain.TransactionSink,
	p *pipeline.Pipeline,
	opts ...Option,
) *ETLService {
	s := &ETLService{
		source:   source,
		sink:     sink,
		pipeline: p,
		logger:   zap.NewNop(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Execute runs the batch. Read and write failures abort the run; per-record failures end up
// in the report's rejections.
func (s *ETLService) Execute() (domain.RunReport, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	startedAt := s.now()

	logger.Info("reading transactions", zap.String("input", s.source.Location()))

	raws, err := s.source.ReadAll()
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("reading transactions: %w", err)
	}

	logger.Info("transactions read", zap.Int("count", len(raws)))

	result := s.pipeline.Run(raws)

	if err := s.sink.WriteAll(result.Transformed); err != nil {
		return domain.RunReport{}, fmt.Errorf("writing transformed transactions: %w", err)
	}

	finishedAt := s.now()

	logger.Info("transformed transactions written",
		zap.String("output", s.sink.Location()),
		zap.Int("count", len(result.Transformed)),
		zap.Duration("took", finishedAt.Sub(startedAt)),
	)

	return domain.RunReport{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		InputPath:  s.source.Location(),
		OutputPath: s.sink.Location(),
		Summary:    result.Summary,
		Rejections: result.Rejections,
	}, nil
}
