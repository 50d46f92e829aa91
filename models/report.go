package models

import (
	"time"

	"github.com/malick97/Rental-Profit/validation"
)

// PricingReport is everything one simulation run produces
type PricingReport struct {
	RunID        string             `json:"run_id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Market       MarketAssumptions  `json:"market"`
	MarketData   MarketData         `json:"market_data"`
	Inputs       ScenarioInputs     `json:"inputs"`
	Scenario     ScenarioResult     `json:"scenario"`
	Optimization OptimizationResult `json:"optimization"`
	Findings     *validation.Report `json:"findings"`
}
