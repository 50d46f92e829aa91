package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/malick97/Rental-Profit/chart"
	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/services"
	"github.com/malick97/Rental-Profit/utils"
	"github.com/malick97/Rental-Profit/validation"
)

// ChartRenderer produces the chart PNG. *chart.Renderer satisfies it.
type ChartRenderer interface {
	RenderPNG(ctx context.Context, opt models.OptimizationResult) ([]byte, error)
}

// Server exposes the pricing calculator over HTTP.
type Server struct {
	port      int
	chartSize chart.Size
	parser    *services.FormParser
	pricing   *services.PricingService
	renderer  ChartRenderer
	logger    *utils.Logger
}

// New creates a server. renderer may be nil, in which case /api/chart.png
// answers 503.
func New(port int, chartSize chart.Size, parser *services.FormParser, pricing *services.PricingService, renderer ChartRenderer, logger *utils.Logger) *Server {
	return &Server{
		port:      port,
		chartSize: chartSize,
		parser:    parser,
		pricing:   pricing,
		renderer:  renderer,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	api.GET("/market", s.handleMarket)
	api.GET("/simulate", s.handleSimulateQuery)
	api.POST("/simulate", s.handleSimulateJSON)
	api.GET("/chart.svg", s.handleChartSVG)
	api.GET("/chart.png", s.handleChartPNG)

	return r
}

// Start launches the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Pricing server starting on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down pricing server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		msg := "%s %s -> %d (%v)"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Microsecond)}
		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error(msg, args...)
		case status >= http.StatusBadRequest:
			s.logger.Warn(msg, args...)
		default:
			s.logger.Debug(msg, args...)
		}
	}
}

func (s *Server) handleMarket(c *gin.Context) {
	form := services.FormValues{
		City: c.Query("city"),
		Area: c.Query("area"),
		Beds: c.Query("beds"),
	}
	assumptions, err := s.parser.ParseAssumptions(form)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"market":       assumptions,
		"market_data":  services.LookupAssumptions(assumptions),
		"known_cities": services.KnownCities(),
	})
}

func (s *Server) handleSimulateJSON(c *gin.Context) {
	var form services.FormValues
	if err := c.ShouldBindJSON(&form); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", validation.ErrInvalidInput, err))
		return
	}
	s.respondReport(c, form)
}

func (s *Server) handleSimulateQuery(c *gin.Context) {
	var form services.FormValues
	if err := c.ShouldBindQuery(&form); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", validation.ErrInvalidInput, err))
		return
	}
	s.respondReport(c, form)
}

func (s *Server) respondReport(c *gin.Context, form services.FormValues) {
	report, err := s.simulate(form)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleChartSVG(c *gin.Context) {
	var form services.FormValues
	if err := c.ShouldBindQuery(&form); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", validation.ErrInvalidInput, err))
		return
	}
	report, err := s.simulate(form)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := chart.WriteSVG(c.Writer, report.Optimization, s.chartSize); err != nil {
		s.logger.Error("Chart for run %s failed: %v", report.RunID, err)
	}
}

func (s *Server) handleChartPNG(c *gin.Context) {
	if s.renderer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart rendering is not configured"})
		return
	}
	var form services.FormValues
	if err := c.ShouldBindQuery(&form); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", validation.ErrInvalidInput, err))
		return
	}
	report, err := s.simulate(form)
	if err != nil {
		s.fail(c, err)
		return
	}
	png, err := s.renderer.RenderPNG(c.Request.Context(), report.Optimization)
	if err != nil {
		s.logger.Error("Chart for run %s failed: %v", report.RunID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart rendering failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) simulate(form services.FormValues) (*models.PricingReport, error) {
	assumptions, in, err := s.parser.Parse(form)
	if err != nil {
		return nil, err
	}
	return s.pricing.Simulate(assumptions, in)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, validation.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
