package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
	"github.com/malick97/Rental-Profit/validation"
)

// PricingService runs the full pricing pipeline: baseline, sweep, pick max.
// It holds no per-run state; the host calls Simulate whenever an input changes.
type PricingService struct {
	logger *utils.Logger
	sweep  SweepRange
	now    func() time.Time
}

// NewPricingService creates a PricingService using DefaultSweepRange
func NewPricingService(logger *utils.Logger) *PricingService {
	return &PricingService{logger: logger, sweep: DefaultSweepRange, now: time.Now}
}

// WithSweepRange returns a copy of the service that scans r instead of the
// default range. An invalid range is rejected so that a disabled sweep always
// means a zero nightly price.
func (s *PricingService) WithSweepRange(r SweepRange) (*PricingService, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cp := *s
	cp.sweep = r
	return &cp, nil
}

// Simulate validates the inputs and computes the current scenario and the
// profit-maximizing price. Invalid inputs return an error wrapping
// validation.ErrInvalidInput and no report.
func (s *PricingService) Simulate(assumptions models.MarketAssumptions, in models.ScenarioInputs) (*models.PricingReport, error) {
	findings := ValidateAssumptions(assumptions)
	findings.Merge(Validate(in))
	findings.Merge(ValidateSweep(in, s.sweep))
	if err := findings.Err(); err != nil {
		s.logger.Warn("Simulation rejected: %v", err)
		return nil, fmt.Errorf("simulate: %w", err)
	}

	report := &models.PricingReport{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now(),
		Market:      assumptions,
		MarketData:  LookupAssumptions(assumptions),
		Inputs:      in,
		Findings:    findings,
	}

	report.Scenario = Evaluate(in)
	if err := checkFinite(report.Scenario); err != nil {
		s.logger.Warn("Simulation rejected: %v", err)
		return nil, fmt.Errorf("simulate: %w", err)
	}
	report.Optimization = OptimizeRange(in, in.Elasticity, s.sweep)
	findings.Merge(ValidateOptimization(in, report.Optimization))

	if report.Optimization.SweepDisabled {
		s.logger.Warn("Run %s: %v, sweep disabled", report.RunID, validation.ErrDegenerateBaseline)
	}
	s.logger.Info("Run %s: %s profit %.2f at %.2f/night; optimum %.2f at %.2f/night (%d grid points)",
		report.RunID, assumptions.City, report.Scenario.Profit, in.NightlyPrice,
		report.Optimization.MaxProfit, report.Optimization.OptimalPrice, len(report.Optimization.PriceGrid))

	return report, nil
}

// checkFinite rejects a scenario whose money amounts overflowed.
func checkFinite(r models.ScenarioResult) error {
	for _, v := range []float64{r.Revenue, r.TotalCosts, r.Profit} {
		if !finite(v) {
			return fmt.Errorf("%w: scenario amounts overflow (revenue %v, costs %v)",
				validation.ErrInvalidInput, r.Revenue, r.TotalCosts)
		}
	}
	return nil
}
