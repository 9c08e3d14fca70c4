package fee

import (
	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

// MinorUnits is the currency precision fees are rounded to
const MinorUnits = 2

// Schedule is a two-tier fee schedule. A zero MinFee or MaxFee disables that cap.
type Schedule struct {
	Threshold decimal.Decimal
	LowRate   decimal.Decimal
	HighRate  decimal.Decimal
	MinFee    decimal.Decimal
	MaxFee    decimal.Decimal
	Boundary  domain.BoundaryPolicy
}

// DefaultSchedule returns 1% below 1000 and 0.5% from 1000 up, without caps
func DefaultSchedule() Schedule {
	return Schedule{
		Threshold: decimal.NewFromInt(1000),
		LowRate:   decimal.RequireFromString("0.01"),
		HighRate:  decimal.RequireFromString("0.005"),
		MinFee:    decimal.Zero,
		MaxFee:    decimal.Zero,
		Boundary:  domain.LowerInclusive,
	}
}

// Calculator computes transaction fees and net amounts
type Calculator struct {
	schedule Schedule
}

// NewCalculator creates a new Calculator for the given schedule
func NewCalculator(schedule Schedule) *Calculator {
	if schedule.Boundary == "" {
		schedule.Boundary = domain.LowerInclusive
	}

	return &Calculator{
		schedule: schedule,
	}
}

// Schedule returns the schedule the calculator applies
func (c *Calculator) Schedule() Schedule {
	return c.schedule
}

// ComputeFee returns the fee for amount, rounded half-up to MinorUnits.
// MinFee is a floor on the low tier, MaxFee a cap on the high tier.
func (c *Calculator) ComputeFee(amount decimal.Decimal) decimal.Decimal {
	// Round is half away from zero, which is half-up for positive amounts
	if c.isLowTier(amount) {
		fee := amount.Mul(c.schedule.LowRate).Round(MinorUnits)
		if c.schedule.MinFee.IsPositive() && fee.LessThan(c.schedule.MinFee) {
			fee = c.schedule.MinFee
		}
		return fee
	}

	fee := amount.Mul(c.schedule.HighRate).Round(MinorUnits)
	if c.schedule.MaxFee.IsPositive() && fee.GreaterThan(c.schedule.MaxFee) {
		fee = c.schedule.MaxFee
	}
	return fee
}

// Apply returns the fee and net amount for amount.
// A negative net amount is reported as a NegativeNetAmount validation error.
func (c *Calculator) Apply(amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	fee := c.ComputeFee(amount)
	net := amount.Sub(fee)

	if net.IsNegative() {
		return fee, net, domain.NewValidationError(domain.ReasonNegativeNetAmount, domain.ColAmount,
			"fee %s exceeds amount %s", fee.StringFixed(MinorUnits), amount.String())
	}

	return fee, net, nil
}

func (c *Calculator) isLowTier(amount decimal.Decimal) bool {
	if c.schedule.Boundary == domain.UpperInclusive {
		return amount.LessThanOrEqual(c.schedule.Threshold)
	}
	return amount.LessThan(c.schedule.Threshold)
}
