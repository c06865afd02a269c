package currency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) GetRates(ctx context.Context, base string) map[string]float64 {
	args := m.Called(ctx, base)
	return args.Get(0).(map[string]float64)
}

func (m *MockRateSource) EstimateToUSD(currency string) (float64, bool) {
	args := m.Called(currency)
	return args.Get(0).(float64), args.Bool(1)
}

func TestNormalizer_ToUSD(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		from      string
		setupMock func(*MockRateSource)
		want      float64
	}{
		{
			name:   "USD is identity, no rate fetch",
			amount: 250,
			from:   "USD",
			want:   250,
		},
		{
			name:   "inverted lookup on USD-based table",
			amount: 602.5,
			from:   "XOF",
			setupMock: func(src *MockRateSource) {
				src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{"XOF": 602.5})
			},
			want: 602.5 * (1 / 602.5),
		},
		{
			name:   "missing from table, estimate fallback",
			amount: 100,
			from:   "EUR",
			setupMock: func(src *MockRateSource) {
				src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{})
				src.On("EstimateToUSD", "EUR").Return(1.08, true)
			},
			want: 108,
		},
		{
			name:   "zero rate treated as missing",
			amount: 100,
			from:   "EUR",
			setupMock: func(src *MockRateSource) {
				src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0})
				src.On("EstimateToUSD", "EUR").Return(1.08, true)
			},
			want: 108,
		},
		{
			name:   "unknown currency keeps amount unchanged",
			amount: 42.7,
			from:   "ZZZ",
			setupMock: func(src *MockRateSource) {
				src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{})
				src.On("EstimateToUSD", "ZZZ").Return(0.0, false)
			},
			want: 42.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockRateSource)
			if tt.setupMock != nil {
				tt.setupMock(src)
			}

			n := NewNormalizer(src)
			got := n.ToUSD(context.Background(), tt.amount, tt.from)

			assert.InDelta(t, tt.want, got, 1e-9)
			src.AssertExpectations(t)
		})
	}
}

func TestNormalizer_Convert(t *testing.T) {
	t.Run("same currency skips the rate fetch", func(t *testing.T) {
		src := new(MockRateSource)
		n := NewNormalizer(src)

		converted, rate, err := n.Convert(context.Background(), 10.456, "EUR", "EUR")

		assert.NoError(t, err)
		assert.Equal(t, 10.46, converted)
		assert.Equal(t, 1.0, rate)
		src.AssertExpectations(t)
	})

	t.Run("direct lookup on from-based table", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{"XOF": 602.5})

		n := NewNormalizer(src)
		converted, rate, err := n.Convert(context.Background(), 10, "USD", "XOF")

		assert.NoError(t, err)
		assert.Equal(t, 6025.0, converted)
		assert.Equal(t, 602.5, rate)
	})

	t.Run("converted amount rounded to 2 decimals, rate unrounded", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0.9273})

		n := NewNormalizer(src)
		converted, rate, err := n.Convert(context.Background(), 10, "USD", "EUR")

		assert.NoError(t, err)
		assert.Equal(t, 9.27, converted)
		assert.Equal(t, 0.9273, rate)
	})

	t.Run("unsupported target fails loudly", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", mock.Anything, "USD").Return(map[string]float64{})

		n := NewNormalizer(src)
		_, _, err := n.Convert(context.Background(), 10, "USD", "ZZZ")

		assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	})
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 10.46, RoundTo(10.456, 2))
	assert.Equal(t, 10.0, RoundTo(10.4, 0))
	assert.Equal(t, 11.0, RoundTo(10.5, 0))
	assert.Equal(t, -2.0, RoundTo(-1.5, 0))
}
