package pricing_test

import (
	"roombook/internal/domains/pricing"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rate(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

func TestInitialPrice(t *testing.T) {
	start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		rate     decimal.NullDecimal
		expected string
		wantErr  error
	}{
		{
			name:     "two hours at 15 per hour",
			end:      start.Add(2 * time.Hour),
			rate:     rate("15"),
			expected: "30.00",
		},
		{
			name:     "one hour at 10 per hour",
			end:      start.Add(time.Hour),
			rate:     rate("10.00"),
			expected: "10.00",
		},
		{
			name:     "fifteen minutes at 10 per hour",
			end:      start.Add(15 * time.Minute),
			rate:     rate("10"),
			expected: "2.50",
		},
		{
			name:     "rounds half up",
			end:      start.Add(time.Minute),
			rate:     rate("0.30"),
			expected: "0.01",
		},
		{
			name:     "twenty minutes keeps cent precision",
			end:      start.Add(20 * time.Minute),
			rate:     rate("10"),
			expected: "3.33",
		},
		{
			name:     "free room",
			end:      start.Add(3 * time.Hour),
			rate:     rate("0"),
			expected: "0.00",
		},
		{
			name:     "four centuries past the time.Duration range",
			end:      start.AddDate(400, 0, 0),
			rate:     rate("1"),
			expected: "3506328.00",
		},
		{
			name:     "sub-second remainder",
			end:      start.Add(90*time.Minute + 500*time.Millisecond),
			rate:     rate("3600"),
			expected: "5400.50",
		},
		{
			name:    "missing rate",
			end:     start.Add(time.Hour),
			rate:    decimal.NullDecimal{},
			wantErr: pricing.ErrRateRequired,
		},
		{
			name:    "negative rate",
			end:     start.Add(time.Hour),
			rate:    rate("-1"),
			wantErr: pricing.ErrNegativeRate,
		},
		{
			name:    "end equals start",
			end:     start,
			rate:    rate("10"),
			wantErr: pricing.ErrNonPositiveSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.InitialPrice(start, tt.end, tt.rate)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestExtensionCost(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		rate     decimal.NullDecimal
		expected string
		wantErr  error
	}{
		{name: "thirty minutes at 15 per hour", minutes: 30, rate: rate("15"), expected: "7.50"},
		{name: "ninety minutes at 12.50 per hour", minutes: 90, rate: rate("12.50"), expected: "18.75"},
		{name: "one minute at 10 per hour", minutes: 1, rate: rate("10"), expected: "0.17"},
		{name: "one year and a day", minutes: pricing.MaxExtensionMinutes, rate: rate("1"), expected: "8784.00"},
		{name: "beyond the cap", minutes: pricing.MaxExtensionMinutes + 1, rate: rate("1"), wantErr: pricing.ErrTooManyMinutes},
		{name: "zero minutes", minutes: 0, rate: rate("15"), wantErr: pricing.ErrNonPositiveMinutes},
		{name: "negative minutes", minutes: -30, rate: rate("15"), wantErr: pricing.ErrNonPositiveMinutes},
		{name: "room removed", minutes: 30, rate: decimal.NullDecimal{}, wantErr: pricing.ErrRateRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ExtensionCost(tt.minutes, tt.rate)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestRepeatedExtensionsDoNotDrift(t *testing.T) {
	total := decimal.Zero

	for range 30 {
		cost, err := pricing.ExtensionCost(10, rate("0.10"))
		assert.NoError(t, err)

		total = total.Add(cost)
	}

	// 10 minutes at 0.10/h is 0.0166.. which rounds to 0.02 each time
	assert.Equal(t, "0.60", total.StringFixed(2))
}

func TestHoursToMinutes(t *testing.T) {
	tests := []struct {
		hours   string
		minutes int
		ok      bool
	}{
		{hours: "0.5", minutes: 30, ok: true},
		{hours: "1.25", minutes: 75, ok: true},
		{hours: "2", minutes: 120, ok: true},
		{hours: "8784", minutes: pricing.MaxExtensionMinutes, ok: true},
		{hours: "8784.5", ok: false},
		{hours: "5124095.6", ok: false},
		{hours: "1e30", ok: false},
		{hours: "0.01", ok: false},
		{hours: "0", ok: false},
		{hours: "-1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.hours, func(t *testing.T) {
			minutes, ok := pricing.HoursToMinutes(decimal.RequireFromString(tt.hours))

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}
