package convert

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"go-scenario-fx"
)

// loggingService decorates a convert.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Convert(ctx context.Context, values *scenario.CurrencyValuesArray, reporting scenario.Currency) (converted *scenario.CurrencyValuesArray, err error) {
	defer func(begin time.Time) {
		var from scenario.Currency
		var scenarios int
		if values != nil {
			from, scenarios = values.Currency(), values.Len()
		}
		s.logger.Log(
			"method", "convert",
			"from", from,
			"to", reporting,
			"scenarios", scenarios,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, values, reporting)
}
