package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
)

// CSVWriter writes the price sweep of a report, one row per candidate price
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// Export writes the sweep table to the CSV file. The optimal row is marked.
// A disabled sweep produces a single baseline row.
func (w *CSVWriter) Export(report *models.PricingReport) error {
	// Ensure output directory exists
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"run_id", "price", "booked_nights", "profit", "optimal"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	opt := report.Optimization
	rows := 0
	if opt.SweepDisabled {
		if err := writer.Write(sweepRow(report.RunID, opt.OptimalPrice, opt.OptimalBookedNights, opt.MaxProfit, true)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
		rows = 1
	}
	for i, price := range opt.PriceGrid {
		optimal := price == opt.OptimalPrice
		if err := writer.Write(sweepRow(report.RunID, price, opt.BookedNightsByPrice[i], opt.ProfitByPrice[i], optimal)); err != nil {
			w.logger.Error("Failed to write CSV row for price %.2f: %v", price, err)
			continue
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Price sweep written to: %s (%d rows)", w.filePath, rows)
	return nil
}

func sweepRow(runID string, price float64, nights int, profit float64, optimal bool) []string {
	return []string{
		runID,
		utils.RoundMoney(price).StringFixed(2),
		strconv.Itoa(nights),
		utils.RoundMoney(profit).StringFixed(2),
		strconv.FormatBool(optimal),
	}
}
