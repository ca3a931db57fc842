package fx

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scenario "go-scenario-fx"
)

func TestMapSource_FxRates(t *testing.T) {
	source := NewMapSource().
		Set(scenario.PairOf(scenario.GBP, scenario.USD), 2).
		Set(scenario.PairOf(scenario.EUR, scenario.USD), 1.1, 1.2, 1.3)

	tests := []struct {
		name    string
		pair    scenario.CurrencyPair
		want    scenario.ScenarioRates
		wantErr error
	}{
		{
			"direct broadcast",
			scenario.PairOf(scenario.GBP, scenario.USD),
			scenario.ScenarioRates{scenario.RateOf(scenario.GBP, scenario.USD, 2)},
			nil,
		},
		{
			"inverse broadcast",
			scenario.PairOf(scenario.USD, scenario.GBP),
			scenario.ScenarioRates{scenario.RateOf(scenario.USD, scenario.GBP, 0.5)},
			nil,
		},
		{
			"direct per scenario",
			scenario.PairOf(scenario.EUR, scenario.USD),
			scenario.ScenarioRates{
				scenario.RateOf(scenario.EUR, scenario.USD, 1.1),
				scenario.RateOf(scenario.EUR, scenario.USD, 1.2),
				scenario.RateOf(scenario.EUR, scenario.USD, 1.3),
			},
			nil,
		},
		{
			"identity",
			scenario.PairOf(scenario.JPY, scenario.JPY),
			scenario.ScenarioRates{scenario.RateOf(scenario.JPY, scenario.JPY, 1)},
			nil,
		},
		{
			"unknown",
			scenario.PairOf(scenario.JPY, scenario.CHF),
			nil,
			ErrRateNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := source.FxRates(context.Background(), tt.pair, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapSource_ConvertedTo(t *testing.T) {
	source := NewMapSource().Set(scenario.PairOf(scenario.EUR, scenario.USD), 1, 2, 3)

	values, err := scenario.NewCurrencyValuesArray(scenario.EUR, []float64{10, 10, 10})
	require.NoError(t, err)

	converted, err := values.ConvertedTo(context.Background(), scenario.USD, source)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, converted.Values())

	// two rates for three scenarios
	source.Set(scenario.PairOf(scenario.EUR, scenario.USD), 1, 2)
	_, err = values.ConvertedTo(context.Background(), scenario.USD, source)
	assert.ErrorIs(t, err, scenario.ErrRateCountMismatch)
}

func TestMapSource_Concurrent(t *testing.T) {
	pair := scenario.PairOf(scenario.GBP, scenario.USD)
	source := NewMapSource().Set(pair, 1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			source.Set(pair, float64(i%2+1))
		}(i)
		go func() {
			defer wg.Done()
			rates, err := source.FxRates(context.Background(), pair.Inverse(), 1)
			if assert.NoError(t, err) && assert.Equal(t, 1, rates.ScenarioCount()) {
				assert.Contains(t, []float64{1, 0.5}, rates.At(0).Value)
			}
		}()
	}
	wg.Wait()

	rates, err := source.FxRates(context.Background(), pair, 1)
	require.NoError(t, err)
	assert.Contains(t, []float64{1, 2}, rates.At(0).Value)
}

func TestLookupSource_FxRates(t *testing.T) {
	allRates := map[scenario.Currency]RateTable{
		"GBP": {"FOO": 4.0, "BAR": 5.0},
	}
	var lookup LookupFunc = func(_ context.Context, base scenario.Currency) (RateTable, error) {
		rates, ok := allRates[base]
		if !ok {
			return nil, errors.New("bad rate")
		}
		return rates, nil
	}
	source := NewLookupSource(lookup)

	got, err := source.FxRates(context.Background(), scenario.PairOf("GBP", "FOO"), 10)
	require.NoError(t, err)
	assert.Equal(t, scenario.ScenarioRates{scenario.RateOf("GBP", "FOO", 4)}, got)

	_, err = source.FxRates(context.Background(), scenario.PairOf("GBP", "XYZ"), 10)
	assert.ErrorIs(t, err, ErrRateNotFound)

	_, err = source.FxRates(context.Background(), scenario.PairOf("ABC", "XYZ"), 10)
	assert.Error(t, err)

	got, err = source.FxRates(context.Background(), scenario.PairOf("ABC", "ABC"), 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.At(0).Value)
}

func TestShockedSource_FxRates(t *testing.T) {
	pair := scenario.PairOf(scenario.GBP, scenario.USD)
	source := NewShockedSource(NewMapSource().Set(pair, 2), []float64{0.5, 1, 1.5})

	got, err := source.FxRates(context.Background(), pair, 3)
	require.NoError(t, err)
	assert.Equal(t, scenario.ScenarioRates{
		scenario.RateOf(scenario.GBP, scenario.USD, 1),
		scenario.RateOf(scenario.GBP, scenario.USD, 2),
		scenario.RateOf(scenario.GBP, scenario.USD, 3),
	}, got)

	_, err = source.FxRates(context.Background(), pair, 2)
	assert.ErrorIs(t, err, ErrShockCount)

	_, err = source.FxRates(context.Background(), scenario.PairOf(scenario.EUR, scenario.CHF), 3)
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestShockedSource_PerScenarioPassThrough(t *testing.T) {
	pair := scenario.PairOf(scenario.GBP, scenario.USD)
	source := NewShockedSource(NewMapSource().Set(pair, 2, 3), []float64{10, 10})

	got, err := source.FxRates(context.Background(), pair, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, []float64{got[0].Value, got[1].Value})
}

func TestLoggingSource_FxRates(t *testing.T) {
	var buf bytes.Buffer
	pair := scenario.PairOf(scenario.GBP, scenario.USD)
	source := NewLoggingSource(log.NewLogfmtLogger(&buf), NewMapSource().Set(pair, 2))

	got, err := source.FxRates(context.Background(), pair, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ScenarioCount())
	assert.Contains(t, buf.String(), "method=fx_rates")
	assert.Contains(t, buf.String(), "pair=GBP/USD")
	assert.Contains(t, buf.String(), "scenarios=4")

	buf.Reset()
	_, err = source.FxRates(context.Background(), scenario.PairOf(scenario.EUR, scenario.CHF), 4)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "level=error")
}
