package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
	"github.com/malick97/Rental-Profit/validation"
)

var (
	amountRegex   = regexp.MustCompile(`^[+-]?[\d.,]+$`)
	decimalComma  = regexp.MustCompile(`,\d{1,2}$`)
	dotThousands  = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)
	currencyChars = strings.NewReplacer("€", "", "$", "", "£", "", "EUR", "", "eur", "", " ", "", " ", "")
)

// FormValues are the raw, user-typed fields of the pricing form.
// Empty fields take defaults; AreaLabel is accepted and passed through unused.
type FormValues struct {
	City         string `json:"city" form:"city" yaml:"city"`
	Area         string `json:"area" form:"area" yaml:"area"`
	Beds         string `json:"beds" form:"beds" yaml:"beds"`
	NightlyPrice string `json:"nightly_price" form:"nightly_price" yaml:"nightly_price"`
	Nights       string `json:"available_nights" form:"available_nights" yaml:"available_nights"`
	Occupancy    string `json:"occupancy_rate" form:"occupancy_rate" yaml:"occupancy_rate"`
	FixedCosts   string `json:"fixed_costs" form:"fixed_costs" yaml:"fixed_costs"`
	VariableCost string `json:"variable_cost_per_night" form:"variable_cost_per_night" yaml:"variable_cost_per_night"`
	Elasticity   string `json:"elasticity" form:"elasticity" yaml:"elasticity"`
}

// UnmarshalJSON accepts JSON numbers as well as strings for every field,
// so API clients can post {"beds": 2} or {"beds": "2"}. Unknown keys are ignored.
func (f *FormValues) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", validation.ErrInvalidInput, err)
	}

	fields := map[string]*string{
		"city":                    &f.City,
		"area":                    &f.Area,
		"beds":                    &f.Beds,
		"nightly_price":           &f.NightlyPrice,
		"available_nights":        &f.Nights,
		"occupancy_rate":          &f.Occupancy,
		"fixed_costs":             &f.FixedCosts,
		"variable_cost_per_night": &f.VariableCost,
		"elasticity":              &f.Elasticity,
	}
	for key, v := range raw {
		dst, ok := fields[key]
		if !ok {
			continue
		}
		switch x := v.(type) {
		case nil:
		case string:
			*dst = x
		case json.Number:
			*dst = x.String()
		default:
			return fmt.Errorf("%w: %s: expected a string or number", validation.ErrInvalidInput, key)
		}
	}
	return nil
}

// FormDefaults are applied to empty form fields that are not derived from market data
type FormDefaults struct {
	BedCount             int
	AvailableNights      int
	FixedCosts           float64
	VariableCostPerNight float64
	Elasticity           float64
}

// DefaultFormDefaults mirrors the initial values of the pricing form.
var DefaultFormDefaults = FormDefaults{
	BedCount:             1,
	AvailableNights:      30,
	FixedCosts:           500,
	VariableCostPerNight: 10,
	Elasticity:           0.2,
}

// FormParser turns raw form values into validated, immutable pricing inputs
type FormParser struct {
	defaults FormDefaults
	logger   *utils.Logger
}

// NewFormParser creates a new FormParser
func NewFormParser(defaults FormDefaults, logger *utils.Logger) *FormParser {
	return &FormParser{defaults: defaults, logger: logger}
}

// Parse converts form values into market assumptions and scenario inputs.
// Nightly price and occupancy default to the looked-up market data for the city.
// Any unparseable or out-of-range value returns an error wrapping validation.ErrInvalidInput.
func (p *FormParser) Parse(f FormValues) (models.MarketAssumptions, models.ScenarioInputs, error) {
	var in models.ScenarioInputs

	assumptions, err := p.ParseAssumptions(f)
	if err != nil {
		return assumptions, in, err
	}

	market := LookupAssumptions(assumptions)
	p.logger.Debug("Market for %q (%d beds): occupancy %.0f%%, ADR %.2f",
		assumptions.City, assumptions.BedCount, market.OccupancyRate, market.AverageDailyRate)

	fields := []struct {
		name     string
		raw      string
		fallback float64
		dst      *float64
	}{
		{"nightly_price", f.NightlyPrice, market.AverageDailyRate, &in.NightlyPrice},
		{"occupancy_rate", strings.TrimSuffix(strings.TrimSpace(f.Occupancy), "%"), clampPercent(market.OccupancyRate), &in.OccupancyRate},
		{"fixed_costs", f.FixedCosts, p.defaults.FixedCosts, &in.FixedCosts},
		{"variable_cost_per_night", f.VariableCost, p.defaults.VariableCostPerNight, &in.VariableCostPerNight},
		{"elasticity", f.Elasticity, p.defaults.Elasticity, &in.Elasticity},
	}
	for _, fl := range fields {
		v, err := parseAmount(fl.name, fl.raw, fl.fallback)
		if err != nil {
			return assumptions, in, err
		}
		*fl.dst = v
	}

	in.AvailableNights, err = parseInt("available_nights", f.Nights, p.defaults.AvailableNights)
	if err != nil {
		return assumptions, in, err
	}

	if err := Validate(in).Err(); err != nil {
		p.logger.Warn("Rejected form input: %v", err)
		return assumptions, in, err
	}
	return assumptions, in, nil
}

// ParseAssumptions reads only the property fields (city, area, beds).
// Market lookups use it so that scenario defaults play no part.
func (p *FormParser) ParseAssumptions(f FormValues) (models.MarketAssumptions, error) {
	beds, err := parseInt("beds", f.Beds, p.defaults.BedCount)
	if err != nil {
		return models.MarketAssumptions{}, err
	}
	assumptions := models.MarketAssumptions{
		City:      strings.TrimSpace(f.City),
		AreaLabel: strings.TrimSpace(f.Area),
		BedCount:  beds,
	}
	if err := ValidateAssumptions(assumptions).Err(); err != nil {
		return assumptions, err
	}
	return assumptions, nil
}

// parseAmount extracts a number from strings like "€ 1.250,50", "$1,200" or "0.2".
// An empty string yields fallback.
//
// Separators: the last comma is decimal when a dot precedes it or it is
// followed by one or two digits. A single dot with no comma is always a
// decimal point ("1.250" is 1.25, elasticity "0.125" stays 0.125); repeated
// dots with no comma are thousands separators ("1.250.000").
func parseAmount(field, raw string, fallback float64) (float64, error) {
	s := currencyChars.Replace(strings.TrimSpace(raw))
	if s == "" {
		return fallback, nil
	}
	if !amountRegex.MatchString(s) {
		return 0, fmt.Errorf("%w: %s: %q is not a number", validation.ErrInvalidInput, field, raw)
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma > lastDot && (lastDot >= 0 || decimalComma.MatchString(s)):
		// comma is the decimal separator: "1.250,50" or "125,5"
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma < 0 && strings.Count(s, ".") > 1 && dotThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s: %q is not a number", validation.ErrInvalidInput, field, raw)
	}
	return v, nil
}

func parseInt(field, raw string, fallback int) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a whole number", validation.ErrInvalidInput, field, raw)
	}
	return n, nil
}

// clampPercent keeps a looked-up occupancy inside the form's 0-100 bounds.
func clampPercent(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
