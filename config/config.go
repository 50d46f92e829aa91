package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Pricing form defaults
	DefaultAvailableNights int
	DefaultFixedCosts      float64
	DefaultVariableCost    float64 // per booked night
	DefaultElasticity      float64

	// Price sweep, as multiples of the nightly price
	SweepLowFactor  float64
	SweepHighFactor float64
	SweepStep       float64

	// HTTP
	HTTPPort int
	GinMode  string

	// Chart rendering
	ChartOutputPath string
	ChartWidth      int
	ChartHeight     int
	ChartThumbWidth int // 0 disables the thumbnail
	ChartTimeoutSec int
	MaxRetries      int
	ChromePath      string // empty lets chromedp find Chrome

	// Output
	ExportDir string
	LogLevel  string
}

// Load reads configuration from environment variables or falls back to defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DefaultAvailableNights: getEnvInt("DEFAULT_AVAILABLE_NIGHTS", 30),
		DefaultFixedCosts:      getEnvFloat("DEFAULT_FIXED_COSTS", 500),
		DefaultVariableCost:    getEnvFloat("DEFAULT_VARIABLE_COST", 10),
		DefaultElasticity:      getEnvFloat("DEFAULT_ELASTICITY", 0.2),
		SweepLowFactor:         getEnvFloat("SWEEP_LOW_FACTOR", 0.8),
		SweepHighFactor:        getEnvFloat("SWEEP_HIGH_FACTOR", 1.2),
		SweepStep:              getEnvFloat("SWEEP_STEP", 1),
		HTTPPort:               getEnvInt("HTTP_PORT", 8080),
		GinMode:                getEnv("GIN_MODE", "release"),
		ChartOutputPath:        getEnv("CHART_OUTPUT_PATH", "output/pricing_chart.png"),
		ChartWidth:             getEnvInt("CHART_WIDTH", 900),
		ChartHeight:            getEnvInt("CHART_HEIGHT", 500),
		ChartThumbWidth:        getEnvInt("CHART_THUMB_WIDTH", 300),
		ChartTimeoutSec:        getEnvInt("CHART_TIMEOUT_SEC", 30),
		MaxRetries:             getEnvInt("MAX_RETRIES", 3),
		ChromePath:             getEnv("CHROME_PATH", ""),
		ExportDir:              getEnv("EXPORT_DIR", "output"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
