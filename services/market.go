package services

import (
	"strings"

	"github.com/malick97/Rental-Profit/models"
)

// marketRow is a base occupancy/ADR pair for one city
type marketRow struct {
	occupancy float64
	adr       float64
}

// marketTable maps lower-cased city names (local and English spelling) to their base row.
var marketTable = map[string]marketRow{
	"roma":     {occupancy: 75, adr: 120},
	"rome":     {occupancy: 75, adr: 120},
	"milano":   {occupancy: 70, adr: 110},
	"milan":    {occupancy: 70, adr: 110},
	"firenze":  {occupancy: 80, adr: 100},
	"florence": {occupancy: 80, adr: 100},
}

// defaultMarketRow is used for any city not in marketTable, including empty input.
var defaultMarketRow = marketRow{occupancy: 65, adr: 90}

const (
	occupancyPerExtraBed = 1.0 // percentage points
	adrPerExtraBed       = 5.0
)

// KnownCities returns the canonical city names the market table recognises.
func KnownCities() []string {
	return []string{"Roma", "Milano", "Firenze"}
}

// LookupMarket returns the simulated market baseline for a city and bed count.
// The city match is case-insensitive and exact; unknown cities resolve to the default row.
func LookupMarket(city string, bedCount int) models.MarketData {
	row, ok := marketTable[strings.ToLower(city)]
	if !ok {
		row = defaultMarketRow
	}

	extraBeds := float64(bedCount - 1)
	return models.MarketData{
		OccupancyRate:    row.occupancy + extraBeds*occupancyPerExtraBed,
		AverageDailyRate: row.adr + extraBeds*adrPerExtraBed,
	}
}

// LookupAssumptions looks up market data for a property. AreaLabel is ignored.
func LookupAssumptions(a models.MarketAssumptions) models.MarketData {
	return LookupMarket(a.City, a.BedCount)
}
