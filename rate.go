package scenario

import (
	"context"
	"fmt"
)

// Rate an exchange rate: Value units of Pair.Counter for one unit of Pair.Base
type Rate struct {
	Pair  CurrencyPair
	Value float64
}

// RateOf returns the rate converting base into counter.
func RateOf(base, counter Currency, value float64) Rate {
	return Rate{Pair: PairOf(base, counter), Value: value}
}

// Inverse returns the same quote expressed from the other side of the pair.
func (r Rate) Inverse() Rate {
	return Rate{Pair: r.Pair.Inverse(), Value: 1 / r.Value}
}

// Convert converts amount from one currency of the pair into the other.
// Converting a currency into itself returns amount untouched.
func (r Rate) Convert(amount float64, from, to Currency) (float64, error) {
	switch {
	case from == to:
		return amount, nil
	case from == r.Pair.Base && to == r.Pair.Counter:
		return amount * r.Value, nil
	case from == r.Pair.Counter && to == r.Pair.Base:
		return amount / r.Value, nil
	default:
		return 0, fmt.Errorf("convert %v to %v with %v: %w", from, to, r.Pair, ErrRateMismatch)
	}
}

// ScenarioRates the rates for one currency pair, either a single rate shared by every scenario
// or one rate per scenario.
type ScenarioRates []Rate

// ScenarioCount is the number of rates held. A count of one means the rate is broadcast.
func (rs ScenarioRates) ScenarioCount() int {
	return len(rs)
}

// At returns the rate for scenario i. A single rate is returned for every scenario.
func (rs ScenarioRates) At(i int) Rate {
	if len(rs) == 1 {
		return rs[0]
	}
	return rs[i]
}

// RateSource looks up exchange rates for a currency pair across scenarios.
// Implementations return exactly one rate or exactly scenarioCount rates, and must be concurrency-safe.
type RateSource interface {
	FxRates(ctx context.Context, pair CurrencyPair, scenarioCount int) (ScenarioRates, error)
}

// RateSourceFunc adapts an ordinary function to a RateSource
type RateSourceFunc func(ctx context.Context, pair CurrencyPair, scenarioCount int) (ScenarioRates, error)

// FxRates calls f.
func (f RateSourceFunc) FxRates(ctx context.Context, pair CurrencyPair, scenarioCount int) (ScenarioRates, error) {
	return f(ctx, pair, scenarioCount)
}
