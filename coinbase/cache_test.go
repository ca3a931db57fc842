package coinbase

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	scenario "go-scenario-fx"
	"go-scenario-fx/fx"
)

type mock struct {
	count int32
	err   error
}

func (m *mock) ExchangeRates(_ context.Context, _ scenario.Currency) (fx.RateTable, error) {
	atomic.AddInt32(&m.count, 1)
	if m.err != nil {
		return nil, m.err
	}
	return fx.RateTable{"USD": 1.25}, nil
}

func TestCachingService(t *testing.T) {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx) // must cancel to stop go-routine started by this test
	defer cancel()

	var underlyingService mock
	s := NewCachingService(1*time.Minute, log.NewNopLogger(), &underlyingService)

	rates, _ := s.ExchangeRates(ctx, "ABC")
	assert.Equal(t, int32(1), atomic.LoadInt32(&underlyingService.count))
	assert.Equal(t, 1.25, rates["USD"])

	_, _ = s.ExchangeRates(ctx, "ABC")
	assert.Equal(t, int32(1), atomic.LoadInt32(&underlyingService.count))

	_, _ = s.ExchangeRates(ctx, "DEF")
	assert.Equal(t, int32(2), atomic.LoadInt32(&underlyingService.count))
}

func TestCachingService_PeriodicRefresh(t *testing.T) {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx) // must cancel to stop go-routine started by this test
	defer cancel()

	var underlyingService mock
	s := NewCachingService(1*time.Millisecond, log.NewNopLogger(), &underlyingService)

	_, _ = s.ExchangeRates(ctx, "ABC")

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&underlyingService.count) > 1
	}, time.Second, time.Millisecond)
}

func TestCachingService_Error(t *testing.T) {
	underlyingService := mock{err: errors.New("unavailable")}
	s := NewCachingService(1*time.Minute, log.NewNopLogger(), &underlyingService)

	_, err := s.ExchangeRates(context.Background(), "ABC")
	assert.ErrorContains(t, err, "refreshing cache [ABC]")

	// failures are not cached
	_, _ = s.ExchangeRates(context.Background(), "ABC")
	assert.Equal(t, int32(2), atomic.LoadInt32(&underlyingService.count))
}

func TestLoggingService(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), &mock{})

	_, err := s.ExchangeRates(context.Background(), "GBP")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "method=exchange_rates")
	assert.Contains(t, buf.String(), "currency=GBP")
	assert.Contains(t, buf.String(), "rates=1")
}
