package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go-scenario-fx/coinbase"
)

// Config holds server configuration.
type Config struct {
	// Addr the HTTP listen address
	Addr string
	// CoinbaseURL base URL of the coinbase REST API
	CoinbaseURL string
	// RateRefresh how often cached rates are refreshed
	RateRefresh time.Duration
	// ScenarioShocks multiplicative rate shock per scenario. Empty means one broadcast rate.
	ScenarioShocks []float64
}

// Load loads configuration from environment variables and a .env file if present.
// Environment variables take precedence over the .env file.
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("COINBASE_URL", coinbase.ApiUrlBase)
	v.SetDefault("RATE_REFRESH", "1m")
	v.SetDefault("SCENARIO_SHOCKS", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Addr:        v.GetString("ADDR"),
		CoinbaseURL: v.GetString("COINBASE_URL"),
	}

	refresh, err := time.ParseDuration(v.GetString("RATE_REFRESH"))
	if err != nil {
		return nil, fmt.Errorf("RATE_REFRESH: %w", err)
	}
	if refresh <= 0 {
		return nil, fmt.Errorf("RATE_REFRESH: must be positive, got %v", refresh)
	}
	cfg.RateRefresh = refresh

	cfg.ScenarioShocks, err = parseShocks(v.GetString("SCENARIO_SHOCKS"))
	if err != nil {
		return nil, fmt.Errorf("SCENARIO_SHOCKS: %w", err)
	}

	return cfg, nil
}

// parseShocks parses a comma separated list such as "0.9,1,1.1"
func parseShocks(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var shocks []float64
	for _, field := range strings.Split(s, ",") {
		shock, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("bad shock [%v]: %w", field, err)
		}
		shocks = append(shocks, shock)
	}
	return shocks, nil
}
