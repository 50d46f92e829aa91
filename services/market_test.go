package services

import (
	"testing"

	"github.com/malick97/Rental-Profit/models"
)

func TestLookupMarketKnownCities(t *testing.T) {
	tests := []struct {
		city          string
		beds          int
		wantOccupancy float64
		wantADR       float64
	}{
		{"Roma", 1, 75, 120},
		{"Rome", 1, 75, 120},
		{"Roma", 2, 76, 125},
		{"Milano", 1, 70, 110},
		{"milan", 3, 72, 120},
		{"Firenze", 1, 80, 100},
		{"FLORENCE", 4, 83, 115},
	}
	for _, tt := range tests {
		got := LookupMarket(tt.city, tt.beds)
		if got.OccupancyRate != tt.wantOccupancy || got.AverageDailyRate != tt.wantADR {
			t.Errorf("LookupMarket(%q, %d) = %+v, want occupancy %v ADR %v",
				tt.city, tt.beds, got, tt.wantOccupancy, tt.wantADR)
		}
	}
}

func TestLookupMarketDefaultRow(t *testing.T) {
	for _, city := range []string{"", "Napoli", "xyz!!", " roma", "Roma "} {
		got := LookupMarket(city, 1)
		if got.OccupancyRate != 65 || got.AverageDailyRate != 90 {
			t.Errorf("LookupMarket(%q, 1) = %+v, want default 65/90", city, got)
		}
	}
}

func TestLookupMarketCaseInsensitive(t *testing.T) {
	for beds := 1; beds <= 6; beds++ {
		a := LookupMarket("Roma", beds)
		b := LookupMarket("ROMA", beds)
		c := LookupMarket("roma", beds)
		if a != b || b != c {
			t.Errorf("beds=%d: lookups differ: %+v %+v %+v", beds, a, b, c)
		}
		if again := LookupMarket("Roma", beds); again != a {
			t.Errorf("beds=%d: lookup not idempotent: %+v vs %+v", beds, again, a)
		}
	}
}

func TestLookupMarketBedSensitivity(t *testing.T) {
	for _, city := range []string{"Roma", "Milano", "Firenze", "Atlantis"} {
		for beds := 1; beds < 10; beds++ {
			cur := LookupMarket(city, beds)
			next := LookupMarket(city, beds+1)
			if next.OccupancyRate != cur.OccupancyRate+1 {
				t.Errorf("%s beds %d->%d: occupancy %v -> %v, want +1", city, beds, beds+1, cur.OccupancyRate, next.OccupancyRate)
			}
			if next.AverageDailyRate != cur.AverageDailyRate+5 {
				t.Errorf("%s beds %d->%d: ADR %v -> %v, want +5", city, beds, beds+1, cur.AverageDailyRate, next.AverageDailyRate)
			}
		}
	}
}

func TestLookupAssumptionsIgnoresArea(t *testing.T) {
	a := LookupAssumptions(models.MarketAssumptions{City: "Roma", AreaLabel: "Centro", BedCount: 2})
	b := LookupAssumptions(models.MarketAssumptions{City: "Roma", AreaLabel: "Trastevere", BedCount: 2})
	if a != b {
		t.Errorf("area label changed the lookup: %+v vs %+v", a, b)
	}
}
