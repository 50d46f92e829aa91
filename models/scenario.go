package models

// MarketAssumptions describes the property being priced.
// AreaLabel is carried through to reports but never affects any calculation.
type MarketAssumptions struct {
	City      string `json:"city" yaml:"city"`
	AreaLabel string `json:"area" yaml:"area"`
	BedCount  int    `json:"beds" yaml:"beds"`
}

// MarketData is the looked-up market baseline for a city and bed count
type MarketData struct {
	OccupancyRate    float64 `json:"occupancy_rate" yaml:"occupancy_rate"`         // percent
	AverageDailyRate float64 `json:"average_daily_rate" yaml:"average_daily_rate"` // ADR, currency per booked night
}

// ScenarioInputs holds one immutable set of pricing assumptions.
// A new value is built every time the host application sees an input change.
type ScenarioInputs struct {
	NightlyPrice         float64 `json:"nightly_price" yaml:"nightly_price"`
	AvailableNights      int     `json:"available_nights" yaml:"available_nights"`
	OccupancyRate        float64 `json:"occupancy_rate" yaml:"occupancy_rate"` // percent, 0-100
	FixedCosts           float64 `json:"fixed_costs" yaml:"fixed_costs"`
	VariableCostPerNight float64 `json:"variable_cost_per_night" yaml:"variable_cost_per_night"`
	Elasticity           float64 `json:"elasticity" yaml:"elasticity"` // 0-1
}

// ScenarioResult is the financial outcome of a ScenarioInputs at its own nightly price
type ScenarioResult struct {
	BookedNights int     `json:"booked_nights" yaml:"booked_nights"`
	Revenue      float64 `json:"revenue" yaml:"revenue"`
	TotalCosts   float64 `json:"total_costs" yaml:"total_costs"`
	Profit       float64 `json:"profit" yaml:"profit"`
}

// OptimizationResult holds the price sweep as three parallel sequences in
// ascending price order plus the selected profit-maximizing point.
type OptimizationResult struct {
	PriceGrid           []float64 `json:"price_grid" yaml:"price_grid"`
	ProfitByPrice       []float64 `json:"profit_by_price" yaml:"profit_by_price"`
	BookedNightsByPrice []int     `json:"booked_nights_by_price" yaml:"booked_nights_by_price"`
	OptimalPrice        float64   `json:"optimal_price" yaml:"optimal_price"`
	OptimalBookedNights int       `json:"optimal_booked_nights" yaml:"optimal_booked_nights"`
	MaxProfit           float64   `json:"max_profit" yaml:"max_profit"`
	// SweepDisabled is set when the baseline price is zero; the optimal point
	// is then the baseline itself and the grid is empty.
	SweepDisabled bool `json:"sweep_disabled" yaml:"sweep_disabled"`
}
