package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
)

const reportWidth = 55

// PrintPricingReport formats a simulation run for the terminal
func PrintPricingReport(w io.Writer, r *models.PricingReport) {
	border := strings.Repeat("═", reportWidth)
	thin := strings.Repeat("─", reportWidth)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("SHORT-TERM RENTAL PRICING SIMULATION", reportWidth))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n PROPERTY\n%s\n", thin)
	fmt.Fprintf(w, "  City                    : %s\n", orDash(r.Market.City))
	fmt.Fprintf(w, "  Area                    : %s\n", orDash(r.Market.AreaLabel))
	fmt.Fprintf(w, "  Beds                    : %d\n", r.Market.BedCount)

	fmt.Fprintf(w, "\n SIMULATED MARKET DATA\n%s\n", thin)
	fmt.Fprintf(w, "  Average occupancy       : %.0f%%\n", r.MarketData.OccupancyRate)
	fmt.Fprintf(w, "  Average daily rate (ADR): %s\n", utils.FormatMoney(r.MarketData.AverageDailyRate))

	in := r.Inputs
	fmt.Fprintf(w, "\n CURRENT RESULTS\n%s\n", thin)
	fmt.Fprintf(w, "  Nightly price           : %s\n", utils.FormatMoney(in.NightlyPrice))
	fmt.Fprintf(w, "  Booked nights           : %d of %d\n", r.Scenario.BookedNights, in.AvailableNights)
	fmt.Fprintf(w, "  Revenue                 : %s\n", utils.FormatMoney(r.Scenario.Revenue))
	fmt.Fprintf(w, "  Total costs             : %s\n", utils.FormatMoney(r.Scenario.TotalCosts))
	fmt.Fprintf(w, "  Profit                  : %s\n", utils.FormatMoney(r.Scenario.Profit))

	opt := r.Optimization
	fmt.Fprintf(w, "\n ESTIMATED OPTIMAL PRICE (elasticity %.2f)\n%s\n", in.Elasticity, thin)
	if opt.SweepDisabled {
		fmt.Fprintf(w, "  Sweep disabled: nightly price is zero, baseline shown\n")
	} else {
		fmt.Fprintf(w, "  Prices scanned          : %s to %s (%d points)\n",
			utils.FormatMoney(opt.PriceGrid[0]), utils.FormatMoney(opt.PriceGrid[len(opt.PriceGrid)-1]), len(opt.PriceGrid))
	}
	fmt.Fprintf(w, "  Optimal price per night : %s\n", utils.FormatMoney(opt.OptimalPrice))
	fmt.Fprintf(w, "  Estimated booked nights : %d\n", opt.OptimalBookedNights)
	fmt.Fprintf(w, "  Maximum profit          : %s\n", utils.FormatMoney(opt.MaxProfit))

	if f := r.Findings; f != nil && len(f.Warnings)+len(f.Info) > 0 {
		fmt.Fprintf(w, "\n NOTES\n%s\n", thin)
		for _, res := range f.Warnings {
			fmt.Fprintf(w, "  ! %s\n", truncate(res.Field+": "+res.Message, reportWidth-4))
		}
		for _, res := range f.Info {
			fmt.Fprintf(w, "  - %s\n", truncate(res.Field+": "+res.Message, reportWidth-4))
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
