// Package fx provides exchange rate sources for converting scenario values.
package fx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-scenario-fx"
)

var (
	// ErrRateNotFound is returned when a source holds no quote for a currency pair
	ErrRateNotFound = errors.New("rate not found")

	// ErrShockCount is returned when the number of scenario shocks differs from the scenario count
	ErrShockCount = errors.New("shock count does not match scenario count")
)

// RateTable maps counter currencies to the rate from a single base currency
type RateTable map[scenario.Currency]float64

// LookupFunc for looking up the rate table of a base currency.
// Implementations must be concurrency-safe when invoked.
// Returned tables must be safe for concurrent reads.
type LookupFunc func(ctx context.Context, base scenario.Currency) (RateTable, error)

// lookupSource broadcasts the current rate from a rate table to every scenario
type lookupSource struct {
	lookup LookupFunc
}

// NewLookupSource returns a source answering every request with the single rate found in the
// base currency's rate table.
func NewLookupSource(lookup LookupFunc) scenario.RateSource {
	return &lookupSource{lookup: lookup}
}

func (s *lookupSource) FxRates(ctx context.Context, pair scenario.CurrencyPair, _ int) (scenario.ScenarioRates, error) {
	if pair.IsIdentity() {
		return scenario.ScenarioRates{{Pair: pair, Value: 1}}, nil
	}
	rates, err := s.lookup(ctx, pair.Base)
	if err != nil {
		return nil, fmt.Errorf("lookup [%v]: %w", pair.Base, err)
	}
	rate, ok := rates[pair.Counter]
	if !ok {
		return nil, fmt.Errorf("unknown 'to' currency %v: %w", pair.Counter, ErrRateNotFound)
	}
	return scenario.ScenarioRates{{Pair: pair, Value: rate}}, nil
}

// MapSource an in-memory set of quotes, each holding one broadcast rate or one rate per scenario.
// MapSource is concurrency safe.
type MapSource struct {
	lock   sync.RWMutex
	quotes map[scenario.CurrencyPair][]float64
}

// NewMapSource returns an empty MapSource.
func NewMapSource() *MapSource {
	return &MapSource{quotes: map[scenario.CurrencyPair][]float64{}}
}

// Set stores the rates quoted for a pair, replacing any previous quote.
func (s *MapSource) Set(pair scenario.CurrencyPair, values ...float64) *MapSource {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.quotes[pair] = append([]float64(nil), values...)
	return s
}

// FxRates returns the quote for the pair, or the inverted quote of the inverse pair.
func (s *MapSource) FxRates(_ context.Context, pair scenario.CurrencyPair, _ int) (scenario.ScenarioRates, error) {
	if pair.IsIdentity() {
		return scenario.ScenarioRates{{Pair: pair, Value: 1}}, nil
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if values, ok := s.quotes[pair]; ok {
		rates := make(scenario.ScenarioRates, len(values))
		for i, v := range values {
			rates[i] = scenario.Rate{Pair: pair, Value: v}
		}
		return rates, nil
	}
	if values, ok := s.quotes[pair.Inverse()]; ok {
		rates := make(scenario.ScenarioRates, len(values))
		for i, v := range values {
			rates[i] = scenario.Rate{Pair: pair.Inverse(), Value: v}.Inverse()
		}
		return rates, nil
	}
	return nil, fmt.Errorf("quote [%v]: %w", pair, ErrRateNotFound)
}

// shockedSource derives one rate per scenario by shocking a broadcast rate
type shockedSource struct {
	next   scenario.RateSource
	shocks []float64
}

// NewShockedSource returns a source multiplying the broadcast rate of next by one shock per scenario,
// e.g. shocks of 0.9, 1 and 1.1 give three scenarios moving the rate down 10%, flat and up 10%.
// Requests must be for exactly len(shocks) scenarios. Per-scenario rates from next are passed through.
func NewShockedSource(next scenario.RateSource, shocks []float64) scenario.RateSource {
	return &shockedSource{
		next:   next,
		shocks: append([]float64(nil), shocks...),
	}
}

func (s *shockedSource) FxRates(ctx context.Context, pair scenario.CurrencyPair, scenarioCount int) (scenario.ScenarioRates, error) {
	if scenarioCount != len(s.shocks) {
		return nil, fmt.Errorf("%d scenarios, %d shocks: %w", scenarioCount, len(s.shocks), ErrShockCount)
	}
	rates, err := s.next.FxRates(ctx, pair, scenarioCount)
	if err != nil {
		return nil, err
	}
	if rates.ScenarioCount() != 1 {
		return rates, nil
	}

	base := rates[0]
	shocked := make(scenario.ScenarioRates, len(s.shocks))
	for i, shock := range s.shocks {
		shocked[i] = scenario.Rate{Pair: base.Pair, Value: base.Value * shock}
	}
	return shocked, nil
}
