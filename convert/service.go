package convert

import (
	"context"
	"errors"
	"fmt"

	"go-scenario-fx"
)

// ErrMissingValues is returned when there are no values to convert
var ErrMissingValues = errors.New("missing values")

// Service converts scenario values into a reporting currency
type Service interface {
	Convert(ctx context.Context, values *scenario.CurrencyValuesArray, reporting scenario.Currency) (*scenario.CurrencyValuesArray, error)
}

// service converts with rates from a single rate source
type service struct {
	// rates source of broadcast or per-scenario exchange rates
	rates scenario.RateSource
}

// NewService constructs a valid Service
func NewService(rates scenario.RateSource) Service {
	return &service{
		rates: rates,
	}
}

// Convert converts values into the reporting currency.
func (s *service) Convert(ctx context.Context, values *scenario.CurrencyValuesArray, reporting scenario.Currency) (*scenario.CurrencyValuesArray, error) {
	if values == nil {
		return nil, fmt.Errorf("convert to [%v]: %w", reporting, ErrMissingValues)
	}
	converted, err := values.ConvertedTo(ctx, reporting, s.rates)
	if err != nil {
		return nil, fmt.Errorf("convert from [%v] to [%v]: %w", values.Currency(), reporting, err)
	}
	return converted, nil
}
