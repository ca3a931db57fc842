package main

import (
	"context"
	"fmt"
	nhttp "net/http"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-scenario-fx"
	"go-scenario-fx/coinbase"
	"go-scenario-fx/config"
	"go-scenario-fx/convert"
	"go-scenario-fx/fx"
	"go-scenario-fx/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	logger = level.NewFilter(logger, level.AllowInfo())

	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}

// run serves until the listener fails
func run(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// cancelled on exit to stop periodic rate refreshes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coinbaseService := coinbase.NewService(cfg.CoinbaseURL)
	coinbaseService = coinbase.NewLoggingService(log.With(logger, "component", "coinbase_rest"), coinbaseService)
	coinbaseService = coinbase.NewCachingService(cfg.RateRefresh, log.With(logger, "component", "coinbase_cache"), coinbaseService)
	coinbaseService = coinbase.NewLoggingService(log.With(logger, "component", "coinbase_cache"), coinbaseService)

	// the cache refresh outlives requests, so lookups run on the server's context
	rateSource := fx.NewLookupSource(func(_ context.Context, base scenario.Currency) (fx.RateTable, error) {
		return coinbaseService.ExchangeRates(ctx, base)
	})
	if len(cfg.ScenarioShocks) > 0 {
		rateSource = fx.NewShockedSource(rateSource, cfg.ScenarioShocks)
	}
	rateSource = fx.NewLoggingSource(log.With(logger, "component", "fx"), rateSource)

	convertService := convert.NewService(rateSource)
	convertService = convert.NewLoggingService(log.With(logger, "component", "convert"), convertService)

	handler := http.NewServer(convertService)

	logger.Log("msg", "listening", "addr", cfg.Addr, "scenario_shocks", len(cfg.ScenarioShocks))
	return nhttp.ListenAndServe(cfg.Addr, handler)
}
