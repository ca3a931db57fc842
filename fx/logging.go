package fx

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-scenario-fx"
)

// loggingSource decorates a scenario.RateSource with logging
type loggingSource struct {
	next   scenario.RateSource
	logger log.Logger
}

// NewLoggingSource returns a new logging RateSource
func NewLoggingSource(logger log.Logger, s scenario.RateSource) scenario.RateSource {
	return &loggingSource{
		next:   s,
		logger: logger,
	}
}

func (s *loggingSource) FxRates(ctx context.Context, pair scenario.CurrencyPair, scenarioCount int) (rates scenario.ScenarioRates, err error) {
	defer func(begin time.Time) {
		logger := level.Debug(s.logger)
		if err != nil {
			logger = level.Error(s.logger)
		}
		logger.Log(
			"method", "fx_rates",
			"pair", pair,
			"scenarios", scenarioCount,
			"rates", rates.ScenarioCount(),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FxRates(ctx, pair, scenarioCount)
}
