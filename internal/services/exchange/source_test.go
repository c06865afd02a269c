package exchange

import (
	"context"
	"errors"
	"testing"

	"solifin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func testTables() config.RateTables {
	return config.RateTables{
		APIFallback: map[string]map[string]float64{
			"USD": {"EUR": 0.92, "XOF": 602.5},
		},
		EstimateToUSD: map[string]float64{
			"USD": 1,
			"EUR": 1.08,
			"XOF": 0.00166,
		},
	}
}

func TestSource_GetRates(t *testing.T) {
	t.Run("live rates pass through", func(t *testing.T) {
		fetcher := new(MockFetcher)
		live := map[string]float64{"EUR": 0.95}
		fetcher.On("FetchRates", mock.Anything, "USD").Return(live, nil)

		source := NewSource(fetcher, testTables())
		rates := source.GetRates(context.Background(), "USD")

		assert.Equal(t, live, rates)
		fetcher.AssertExpectations(t)
	})

	t.Run("fetch failure falls back to static table", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("FetchRates", mock.Anything, "USD").Return(nil, errors.New("timeout"))

		source := NewSource(fetcher, testTables())
		rates := source.GetRates(context.Background(), "USD")

		assert.Equal(t, 602.5, rates["XOF"])
		fetcher.AssertExpectations(t)
	})

	t.Run("unknown base yields empty table, never nil", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("FetchRates", mock.Anything, "GBP").Return(nil, errors.New("timeout"))

		source := NewSource(fetcher, testTables())
		rates := source.GetRates(context.Background(), "GBP")

		assert.NotNil(t, rates)
		assert.Empty(t, rates)
	})
}

func TestSource_EstimateToUSD(t *testing.T) {
	source := NewSource(new(MockFetcher), testTables())

	rate, ok := source.EstimateToUSD("XOF")
	assert.True(t, ok)
	assert.Equal(t, 0.00166, rate)

	_, ok = source.EstimateToUSD("GBP")
	assert.False(t, ok)
}

func TestDefaultTables_FallbackCurrencies(t *testing.T) {
	tables := config.LoadRateTables()

	assert.Equal(t, 602.5, tables.APIFallback["USD"]["XOF"])
	assert.Equal(t, 1.0, tables.EstimateToUSD["USD"])
	// CFA is a legacy spelling kept alongside XOF in the estimate table.
	assert.Equal(t, tables.EstimateToUSD["XOF"], tables.EstimateToUSD["CFA"])
}
