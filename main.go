package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/malick97/Rental-Profit/chart"
	"github.com/malick97/Rental-Profit/config"
	"github.com/malick97/Rental-Profit/server"
	"github.com/malick97/Rental-Profit/services"
	"github.com/malick97/Rental-Profit/storage"
	"github.com/malick97/Rental-Profit/utils"
)

// app holds what every command needs after bootstrap
type app struct {
	cfg     *config.Config
	logger  *utils.Logger
	parser  *services.FormParser
	pricing *services.PricingService
}

func main() {
	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	pricing, err := services.NewPricingService(logger).WithSweepRange(cfg.SweepRange())
	if err != nil {
		logger.Error("Invalid price sweep: %v", err)
		os.Exit(1)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		parser: services.NewFormParser(services.FormDefaults{
			BedCount:             services.DefaultFormDefaults.BedCount,
			AvailableNights:      cfg.DefaultAvailableNights,
			FixedCosts:           cfg.DefaultFixedCosts,
			VariableCostPerNight: cfg.DefaultVariableCost,
			Elasticity:           cfg.DefaultElasticity,
		}, logger),
		pricing: pricing,
	}

	rootCmd := &cobra.Command{
		Use:          "rentalprofit",
		Short:        "Short-term rental pricing calculator",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(a.simulateCmd())
	rootCmd.AddCommand(a.marketCmd())
	rootCmd.AddCommand(a.serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		form     services.FormValues
		file     string
		csvPath  string
		jsonPath string
		chartOut string
		export   bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compute profit at the current price and the profit-maximizing price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				scenario, err := config.LoadScenario(file)
				if err != nil {
					return err
				}
				if scenario.Name != "" {
					a.logger.Info("Scenario: %s", scenario.Name)
				}
				form = mergeForm(scenario.Form, form, cmd)
			}
			return a.runSimulate(cmd.Context(), form, csvPath, jsonPath, chartOut, export)
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.City, "city", "", "city name (Roma, Milano, Firenze, ...)")
	f.StringVar(&form.Area, "area", "", "neighbourhood label, shown in the report only")
	f.StringVar(&form.Beds, "beds", "", "number of beds (default 1)")
	f.StringVar(&form.NightlyPrice, "price", "", "nightly price (default: market ADR)")
	f.StringVar(&form.Nights, "nights", "", "available nights in the period")
	f.StringVar(&form.Occupancy, "occupancy", "", "occupancy rate in percent (default: market occupancy)")
	f.StringVar(&form.FixedCosts, "fixed-costs", "", "fixed costs for the period")
	f.StringVar(&form.VariableCost, "variable-cost", "", "variable cost per booked night")
	f.StringVar(&form.Elasticity, "elasticity", "", "demand elasticity, 0 to 1")
	f.StringVarP(&file, "file", "f", "", "YAML scenario file; flags override its values")
	f.StringVar(&csvPath, "csv", "", "write the price sweep to this CSV file")
	f.StringVar(&jsonPath, "json", "", "write the full report to this JSON file")
	f.StringVar(&chartOut, "chart", "", "render the chart PNG to this file (needs Chrome)")
	f.BoolVar(&export, "export", false, "write CSV and JSON into EXPORT_DIR, named by run id")
	return cmd
}

// mergeForm overlays explicitly set flags on values loaded from a scenario file.
func mergeForm(base, flags services.FormValues, cmd *cobra.Command) services.FormValues {
	overrides := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"city", &base.City, flags.City},
		{"area", &base.Area, flags.Area},
		{"beds", &base.Beds, flags.Beds},
		{"price", &base.NightlyPrice, flags.NightlyPrice},
		{"nights", &base.Nights, flags.Nights},
		{"occupancy", &base.Occupancy, flags.Occupancy},
		{"fixed-costs", &base.FixedCosts, flags.FixedCosts},
		{"variable-cost", &base.VariableCost, flags.VariableCost},
		{"elasticity", &base.Elasticity, flags.Elasticity},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dst = o.val
		}
	}
	return base
}

func (a *app) runSimulate(ctx context.Context, form services.FormValues, csvPath, jsonPath, chartOut string, export bool) error {
	assumptions, in, err := a.parser.Parse(form)
	if err != nil {
		return err
	}
	report, err := a.pricing.Simulate(assumptions, in)
	if err != nil {
		return err
	}

	services.PrintPricingReport(os.Stdout, report)

	// ========= Exports ===========================
	if export {
		base := filepath.Join(a.cfg.ExportDir, report.RunID)
		if csvPath == "" {
			csvPath = base + "_sweep.csv"
		}
		if jsonPath == "" {
			jsonPath = base + "_report.json"
		}
	}
	var exporters []storage.ReportExporter
	if csvPath != "" {
		exporters = append(exporters, storage.NewCSVWriter(csvPath, a.logger))
	}
	if jsonPath != "" {
		exporters = append(exporters, storage.NewJSONWriter(jsonPath, a.logger))
	}
	for _, e := range exporters {
		if err := e.Export(report); err != nil {
			a.logger.Error("Export failed: %v", err)
			// Non-fatal: the report is already on screen
		}
	}

	// ========= Chart ===========================
	if chartOut != "" {
		if _, err := a.renderer().RenderFile(ctx, report.Optimization, chartOut); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}
	return nil
}

func (a *app) renderer() *chart.Renderer {
	return chart.NewRenderer(chart.RendererConfig{
		Size:       chart.Size{Width: a.cfg.ChartWidth, Height: a.cfg.ChartHeight},
		ThumbWidth: a.cfg.ChartThumbWidth,
		Timeout:    time.Duration(a.cfg.ChartTimeoutSec) * time.Second,
		MaxRetries: a.cfg.MaxRetries,
		MinDelayMs: 500,
		ExecPath:   a.cfg.ChromePath,
	}, a.logger)
}

func (a *app) marketCmd() *cobra.Command {
	var beds string

	cmd := &cobra.Command{
		Use:   "market [city]",
		Short: "Show the simulated occupancy and ADR for a city",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			form := services.FormValues{Beds: beds}
			if len(args) == 1 {
				form.City = args[0]
			}
			assumptions, err := a.parser.ParseAssumptions(form)
			if err != nil {
				return err
			}
			m := services.LookupAssumptions(assumptions)
			fmt.Printf("%s, %d bed(s): occupancy %.0f%%, ADR %s\n",
				orDefault(assumptions.City, "default market"), assumptions.BedCount,
				m.OccupancyRate, utils.FormatMoney(m.AverageDailyRate))
			return nil
		},
	}
	cmd.Flags().StringVar(&beds, "beds", "", "number of beds (default 1)")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the pricing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gin.SetMode(a.cfg.GinMode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			chartSize := chart.Size{Width: a.cfg.ChartWidth, Height: a.cfg.ChartHeight}
			srv := server.New(port, chartSize, a.parser, a.pricing, a.renderer(), a.logger)
			return srv.Start(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", a.cfg.HTTPPort, "HTTP server port")
	return cmd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
