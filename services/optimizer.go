package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/validation"
)

// SweepRange describes the candidate price grid as multiples of the baseline price.
// The grid is half-open: Low*P, Low*P+Step, ... strictly below High*P.
type SweepRange struct {
	LowFactor  float64 `json:"low_factor" yaml:"low_factor"`
	HighFactor float64 `json:"high_factor" yaml:"high_factor"`
	Step       float64 `json:"step" yaml:"step"`
}

// DefaultSweepRange scans 80% to 120% of the baseline price in steps of one currency unit.
var DefaultSweepRange = SweepRange{LowFactor: 0.8, HighFactor: 1.2, Step: 1.0}

// MaxGridPoints bounds the number of candidate prices in one sweep.
const MaxGridPoints = 100_000

// Validate checks that the range describes a non-empty, increasing grid.
func (r SweepRange) Validate() error {
	switch {
	case !finite(r.LowFactor) || !finite(r.HighFactor) || !finite(r.Step):
		return fmt.Errorf("%w: sweep range must be finite, got %+v", validation.ErrInvalidInput, r)
	case r.LowFactor < 0:
		return fmt.Errorf("%w: sweep low factor %g must not be negative", validation.ErrInvalidInput, r.LowFactor)
	case r.HighFactor <= r.LowFactor:
		return fmt.Errorf("%w: sweep high factor %g must be above low factor %g", validation.ErrInvalidInput, r.HighFactor, r.LowFactor)
	case r.Step <= 0:
		return fmt.Errorf("%w: sweep step %g must be positive", validation.ErrInvalidInput, r.Step)
	}
	return nil
}

// GridSize returns ceil((hi-lo)/step) for a baseline price without allocating
// the grid. It is 0 for an invalid range.
func GridSize(nightlyPrice float64, r SweepRange) float64 {
	if r.Step <= 0 {
		return 0
	}
	span := nightlyPrice*r.HighFactor - nightlyPrice*r.LowFactor
	return math.Max(0, math.Ceil(span/r.Step))
}

// PriceGrid builds the half-open candidate grid for a baseline price.
// Its length is ceil((hi-lo)/step) and element i is lo + i*step.
// Grids longer than MaxGridPoints are cut at MaxGridPoints; callers are
// expected to reject such inputs first (see ValidateSweep).
func PriceGrid(nightlyPrice float64, r SweepRange) []float64 {
	size := GridSize(nightlyPrice, r)
	if size == 0 || math.IsNaN(size) {
		return []float64{}
	}
	n := int(math.Min(size, MaxGridPoints))
	lo := nightlyPrice * r.LowFactor

	grid := make([]float64, n)
	for i := range grid {
		grid[i] = lo + float64(i)*r.Step
	}
	return grid
}

// SimulateOccupancy applies the linear demand response to a candidate price.
// Occupancy is floored at 0 but deliberately not capped at 100, so a large
// price cut with high elasticity can simulate more nights than are available.
func SimulateOccupancy(baseline models.ScenarioInputs, elasticity, price float64) float64 {
	deltaPriceRatio := (price - baseline.NightlyPrice) / baseline.NightlyPrice
	return math.Max(0, baseline.OccupancyRate-elasticity*deltaPriceRatio*100)
}

// Optimize sweeps DefaultSweepRange around the baseline price and picks the
// profit-maximizing candidate.
func Optimize(baseline models.ScenarioInputs, elasticity float64) models.OptimizationResult {
	return OptimizeRange(baseline, elasticity, DefaultSweepRange)
}

// OptimizeRange is Optimize with an explicit sweep range.
//
// A zero baseline price makes the price-change ratio undefined; the sweep is
// then disabled and the baseline scenario is returned as the optimum.
// Ties in profit resolve to the first (lowest) price.
func OptimizeRange(baseline models.ScenarioInputs, elasticity float64, r SweepRange) models.OptimizationResult {
	var grid []float64
	if baseline.NightlyPrice != 0 {
		grid = PriceGrid(baseline.NightlyPrice, r)
	}
	if len(grid) == 0 {
		return baselineOnly(baseline)
	}

	profits := make([]float64, len(grid))
	nights := make([]int, len(grid))
	for i, p := range grid {
		occ := SimulateOccupancy(baseline, elasticity, p)
		booked := BookedNights(occ, baseline.AvailableNights)

		revenue := p * float64(booked)
		variable := baseline.VariableCostPerNight * float64(booked)
		profits[i] = revenue - (baseline.FixedCosts + variable)
		nights[i] = booked
	}

	// MaxIdx returns the first index holding the maximum.
	best := floats.MaxIdx(profits)

	return models.OptimizationResult{
		PriceGrid:           grid,
		ProfitByPrice:       profits,
		BookedNightsByPrice: nights,
		OptimalPrice:        grid[best],
		OptimalBookedNights: nights[best],
		MaxProfit:           profits[best],
	}
}

func baselineOnly(baseline models.ScenarioInputs) models.OptimizationResult {
	current := Evaluate(baseline)
	return models.OptimizationResult{
		PriceGrid:           []float64{},
		ProfitByPrice:       []float64{},
		BookedNightsByPrice: []int{},
		OptimalPrice:        baseline.NightlyPrice,
		OptimalBookedNights: current.BookedNights,
		MaxProfit:           current.Profit,
		SweepDisabled:       true,
	}
}
