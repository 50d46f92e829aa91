package services

import (
	"fmt"
	"math"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/validation"
)

// Upper bounds keep every money amount, and the sweep built from the price,
// far inside float64 range.
const (
	MaxNightlyPrice = 100_000.0
	MaxCostAmount   = 1e9
)

// ValidateAssumptions checks the property description used for the market lookup.
func ValidateAssumptions(a models.MarketAssumptions) *validation.Report {
	report := validation.NewReport()
	if a.BedCount < 1 {
		report.AddError(validation.Result{
			Field:       "beds",
			Message:     "bed count must be at least 1",
			ActualValue: a.BedCount,
			Expected:    ">= 1",
		})
	}
	return report
}

// Validate checks scenario inputs against their documented bounds.
// Errors mean the core must not be invoked; a zero nightly price only warns,
// because the optimizer handles it by disabling the sweep.
func Validate(in models.ScenarioInputs) *validation.Report {
	report := validation.NewReport()

	amounts := []struct {
		field string
		value float64
		max   float64
	}{
		{"nightly_price", in.NightlyPrice, MaxNightlyPrice},
		{"fixed_costs", in.FixedCosts, MaxCostAmount},
		{"variable_cost_per_night", in.VariableCostPerNight, MaxCostAmount},
	}
	for _, f := range amounts {
		if !finite(f.value) {
			report.AddError(validation.Result{Field: f.field, Message: "must be a finite number", ActualValue: fmt.Sprint(f.value)})
			continue
		}
		if f.value < 0 {
			report.AddError(validation.Result{
				Field:       f.field,
				Message:     "must not be negative",
				ActualValue: f.value,
				Expected:    ">= 0",
			})
			continue
		}
		if f.value > f.max {
			report.AddError(validation.Result{
				Field:       f.field,
				Message:     "too large",
				ActualValue: f.value,
				Expected:    fmt.Sprintf("<= %g", f.max),
			})
		}
	}

	if in.AvailableNights < 1 {
		report.AddError(validation.Result{
			Field:       "available_nights",
			Message:     "at least one night must be available",
			ActualValue: in.AvailableNights,
			Expected:    ">= 1",
		})
	}

	checkRange(report, "occupancy_rate", in.OccupancyRate, 0, 100)
	checkRange(report, "elasticity", in.Elasticity, 0, 1)

	if in.NightlyPrice == 0 {
		report.AddWarning(validation.Result{
			Field:       "nightly_price",
			Message:     fmt.Sprintf("%v: price sweep disabled, baseline returned unchanged", validation.ErrDegenerateBaseline),
			ActualValue: in.NightlyPrice,
			Expected:    "> 0",
		})
	}

	return report
}

// ValidateSweep checks that the price grid for in and r can be built: the
// range itself must be valid, a non-zero price must yield at least one
// candidate, and the grid must not exceed MaxGridPoints.
func ValidateSweep(in models.ScenarioInputs, r SweepRange) *validation.Report {
	report := validation.NewReport()
	if err := r.Validate(); err != nil {
		report.AddError(validation.Result{Field: "sweep", Message: err.Error()})
		return report
	}
	if in.NightlyPrice == 0 || !finite(in.NightlyPrice) {
		return report
	}

	size := GridSize(in.NightlyPrice, r)
	switch {
	case math.IsNaN(size) || size > MaxGridPoints:
		report.AddError(validation.Result{
			Field:       "nightly_price",
			Message:     "price sweep would be too large",
			ActualValue: in.NightlyPrice,
			Expected:    fmt.Sprintf("at most %d grid points", MaxGridPoints),
		})
	case size == 0:
		report.AddError(validation.Result{
			Field:       "nightly_price",
			Message:     "price too small to sweep",
			ActualValue: in.NightlyPrice,
			Expected:    "at least one grid point",
		})
	}
	return report
}

// ValidateOptimization reports sweep points whose simulated bookings exceed
// the available nights. The sweep does not cap occupancy at 100%, so this is
// informational only.
func ValidateOptimization(in models.ScenarioInputs, opt models.OptimizationResult) *validation.Report {
	report := validation.NewReport()

	over := 0
	for _, n := range opt.BookedNightsByPrice {
		if n > in.AvailableNights {
			over++
		}
	}
	if over > 0 {
		report.AddInfo(validation.Result{
			Field:       "optimization",
			Message:     fmt.Sprintf("%d sweep prices simulate more than %d booked nights (occupancy above 100%%)", over, in.AvailableNights),
			ActualValue: over,
		})
	}
	if opt.OptimalBookedNights > in.AvailableNights {
		report.AddWarning(validation.Result{
			Field:       "optimal_booked_nights",
			Message:     "optimal price relies on occupancy above 100%",
			ActualValue: opt.OptimalBookedNights,
			Expected:    fmt.Sprintf("<= %d", in.AvailableNights),
		})
	}
	return report
}

func checkRange(report *validation.Report, field string, v, lo, hi float64) {
	if !finite(v) {
		report.AddError(validation.Result{Field: field, Message: "must be a finite number", ActualValue: fmt.Sprint(v)})
		return
	}
	if v < lo || v > hi {
		report.AddError(validation.Result{
			Field:       field,
			Message:     "out of range",
			ActualValue: v,
			Expected:    fmt.Sprintf("[%g, %g]", lo, hi),
		})
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
