package services

import (
	"math"

	"github.com/malick97/Rental-Profit/models"
)

// BookedNights converts an occupancy percentage into whole booked nights, rounding down.
func BookedNights(occupancyRate float64, availableNights int) int {
	return int(math.Floor(occupancyRate / 100 * float64(availableNights)))
}

// Evaluate computes the current-scenario financials at the inputs' own nightly price.
// Inputs must already be validated; see Validate.
func Evaluate(in models.ScenarioInputs) models.ScenarioResult {
	nights := BookedNights(in.OccupancyRate, in.AvailableNights)
	revenue := in.NightlyPrice * float64(nights)
	totalCosts := in.FixedCosts + in.VariableCostPerNight*float64(nights)

	return models.ScenarioResult{
		BookedNights: nights,
		Revenue:      revenue,
		TotalCosts:   totalCosts,
		Profit:       revenue - totalCosts,
	}
}
