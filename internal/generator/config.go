package generator

import "time"

// Config drives the synthetic M-Pesa export generator.
type Config struct {
	NumTransactions int
	// DirtyRatio is the share of rows deliberately broken in one way the validator rejects
	DirtyRatio float64
	Seed       int64
	Start      time.Time
	DateFormat string
}

// DefaultConfig returns settings producing a clean sample of a thousand rows.
func DefaultConfig() Config {
	return Config{
		NumTransactions: 1000,
		DirtyRatio:      0,
		Seed:            42,
		Start:           time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		DateFormat:      "2006-01-02 15:04:05",
	}
}
