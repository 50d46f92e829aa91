package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
)

var (
	_ ReportExporter = (*CSVWriter)(nil)
	_ ReportExporter = (*JSONWriter)(nil)
)

func quietLogger() *utils.Logger {
	return utils.NewLoggerTo(io.Discard, utils.LevelError)
}

func sampleReport() *models.PricingReport {
	return &models.PricingReport{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Market:      models.MarketAssumptions{City: "Roma", BedCount: 2},
		MarketData:  models.MarketData{OccupancyRate: 76, AverageDailyRate: 125},
		Inputs: models.ScenarioInputs{
			NightlyPrice: 125, AvailableNights: 30, OccupancyRate: 76,
			FixedCosts: 500, VariableCostPerNight: 10, Elasticity: 0.2,
		},
		Scenario: models.ScenarioResult{BookedNights: 22, Revenue: 2750, TotalCosts: 720, Profit: 2030},
		Optimization: models.OptimizationResult{
			PriceGrid:           []float64{100, 101, 102},
			ProfitByPrice:       []float64{1660, 1682.5, 1600},
			BookedNightsByPrice: []int{24, 24, 23},
			OptimalPrice:        101,
			OptimalBookedNights: 24,
			MaxProfit:           1682.5,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestCSVWriterExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sweep.csv")
	if err := NewCSVWriter(path, quietLogger()).Export(sampleReport()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	want := []string{"run-1", "101.00", "24", "1682.50", "true"}
	for i, v := range want {
		if rows[2][i] != v {
			t.Errorf("row 2 col %d = %q, want %q", i, rows[2][i], v)
		}
	}
	if rows[1][4] != "false" || rows[3][4] != "false" {
		t.Error("only the optimal row should be marked")
	}
}

func TestCSVWriterSweepDisabled(t *testing.T) {
	r := sampleReport()
	r.Optimization = models.OptimizationResult{
		PriceGrid:           []float64{},
		ProfitByPrice:       []float64{},
		BookedNightsByPrice: []int{},
		OptimalBookedNights: 22,
		MaxProfit:           -720,
		SweepDisabled:       true,
	}
	path := filepath.Join(t.TempDir(), "sweep.csv")
	if err := NewCSVWriter(path, quietLogger()).Export(r); err != nil {
		t.Fatalf("Export: %v", err)
	}
	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + baseline", len(rows))
	}
	if rows[1][1] != "0.00" || rows[1][3] != "-720.00" {
		t.Errorf("unexpected baseline row %v", rows[1])
	}
}

func TestJSONWriterExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewJSONWriter(path, quietLogger()).Export(sampleReport()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got models.PricingReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.RunID != "run-1" || got.Optimization.OptimalPrice != 101 || got.Scenario.Profit != 2030 {
		t.Errorf("unexpected decoded report: %+v", got)
	}
	if len(got.Optimization.PriceGrid) != 3 {
		t.Errorf("price grid = %v", got.Optimization.PriceGrid)
	}
}

func TestExportFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(blocker, "report.json")
	if err := NewJSONWriter(path, quietLogger()).Export(sampleReport()); err == nil {
		t.Error("expected error when parent is a regular file")
	}
	if err := NewCSVWriter(path, quietLogger()).Export(sampleReport()); err == nil {
		t.Error("expected error when parent is a regular file")
	}
}
