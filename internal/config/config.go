package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"go-trade-dashboard/internal/model"
)

// DefaultKeyIndicators are the trade indicators the dashboard is built around.
var DefaultKeyIndicators = []string{
	"Merchandise exports (current US$)",
	"Merchandise imports (current US$)",
	"Merchandise trade (% of GDP)",
	"Merchandise exports to low- and middle-income economies in East Asia & Pacific (% of total merchandise exports)",
	"Merchandise imports from high-income economies (% of total merchandise imports)",
}

type Config struct {
	DataFile string
	HTTPAddr string
	DBPath   string
	LogLevel string

	Title         string
	ChartKinds    []model.ChartKind
	KeyIndicators []string // empty = no restriction

	OutputDir     string
	ChartWidthIn  float64
	ChartHeightIn float64
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataFile:      getenv("DATA_FILE", "data/trade_lka.csv"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DBPath:        getenv("DB_PATH", "file::memory:?cache=shared"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Title:         getenv("DASHBOARD_TITLE", "Sri Lanka Trade Indicator Analysis"),
		OutputDir:     getenv("OUTPUT_DIR", "outputs"),
		KeyIndicators: DefaultKeyIndicators,
	}

	var err error
	if cfg.ChartWidthIn, err = getfloat("CHART_WIDTH_IN", 10); err != nil {
		return nil, err
	}
	if cfg.ChartHeightIn, err = getfloat("CHART_HEIGHT_IN", 4); err != nil {
		return nil, err
	}

	cfg.ChartKinds = model.AllChartKinds
	if raw := strings.TrimSpace(os.Getenv("CHART_KINDS")); raw != "" {
		kinds, err := ParseChartKinds(raw)
		if err != nil {
			return nil, err
		}
		cfg.ChartKinds = kinds
	}

	if raw, ok := os.LookupEnv("KEY_INDICATORS"); ok {
		cfg.KeyIndicators = ParseKeyIndicators(raw)
	}
	return cfg, nil
}

// ParseChartKinds parses a comma separated list of chart kinds, dropping duplicates.
func ParseChartKinds(raw string) ([]model.ChartKind, error) {
	seen := make(map[model.ChartKind]bool)
	var kinds []model.ChartKind
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := model.ParseChartKind(part)
		if err != nil {
			return nil, fmt.Errorf("CHART_KINDS: %w", err)
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("CHART_KINDS: no chart kinds listed")
	}
	return kinds, nil
}

// ParseKeyIndicators splits on ';' since indicator names contain commas. "*" or "" means all.
func ParseKeyIndicators(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getfloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, v)
	}
	return f, nil
}
