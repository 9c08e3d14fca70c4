package feature

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

// Band is one amount category. The final band of a set has no upper bound.
type Band struct {
	Label      string
	UpperBound decimal.Decimal
	Unbounded  bool
}

// Bands is an ordered, non-overlapping, exhaustive set of amount categories
type Bands struct {
	bands  []Band
	policy domain.BoundaryPolicy
}

// DefaultBands returns Small below 500, Medium from 500 below 5000, Large from 5000 up
func DefaultBands() []Band {
	return []Band{
		{Label: "Small", UpperBound: decimal.NewFromInt(500)},
		{Label: "Medium", UpperBound: decimal.NewFromInt(5000)},
		{Label: "Large", Unbounded: true},
	}
}

// NewBands checks the bands are ascending, uniquely labelled and end with an unbounded band
func NewBands(bands []Band, policy domain.BoundaryPolicy) (*Bands, error) {
	if len(bands) == 0 {
		return nil, errors.New("at least one amount band is required")
	}

	if policy == "" {
		policy = domain.LowerInclusive
	}

	seen := make(map[string]bool, len(bands))
	for i, band := range bands {
		if band.Label == "" {
			return nil, fmt.Errorf("band %d has no label", i)
		}
		if seen[band.Label] {
			return nil, fmt.Errorf("band label %q is used more than once", band.Label)
		}
		seen[band.Label] = true

		last := i == len(bands)-1
		if last {
			if !band.Unbounded {
				return nil, fmt.Errorf("final band %q must have no upper bound", band.Label)
			}
			continue
		}

		if band.Unbounded {
			return nil, fmt.Errorf("only the final band may be unbounded, got %q", band.Label)
		}
		if !band.UpperBound.IsPositive() {
			return nil, fmt.Errorf("band %q upper bound must be positive", band.Label)
		}
		if i > 0 && !band.UpperBound.GreaterThan(bands[i-1].UpperBound) {
			return nil, fmt.Errorf("band %q upper bound %s is not above %s", band.Label, band.UpperBound, bands[i-1].UpperBound)
		}
	}

	copied := make([]Band, len(bands))
	copy(copied, bands)

	return &Bands{
		bands:  copied,
		policy: policy,
	}, nil
}

// Categorize returns the label of the band containing amount
func (b *Bands) Categorize(amount decimal.Decimal) string {
	for _, band := range b.bands {
		if band.Unbounded {
			return band.Label
		}

		if b.policy == domain.UpperInclusive {
			if amount.LessThanOrEqual(band.UpperBound) {
				return band.Label
			}
			continue
		}

		if amount.LessThan(band.UpperBound) {
			return band.Label
		}
	}

	// Unreachable: NewBands guarantees an unbounded final band
	return b.bands[len(b.bands)-1].Label
}

// Labels returns band labels in ascending order
func (b *Bands) Labels() []string {
	labels := make([]string, 0, len(b.bands))
	for _, band := range b.bands {
		labels = append(labels, band.Label)
	}
	return labels
}
