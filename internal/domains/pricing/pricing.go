// Package pricing computes booking charges from an hourly room rate.
//
// All amounts are fixed-point decimals rounded half-up to two places.
package pricing

import (
	"errors"
	"roombook/shared/constant"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrRateRequired       = errors.New("room hourly rate is required to price a booking")
	ErrNegativeRate       = errors.New("room hourly rate must not be negative")
	ErrNonPositiveSpan    = errors.New("end time must be after start time")
	ErrNonPositiveMinutes = errors.New("extension duration must be a positive number of minutes")
	ErrTooManyMinutes     = errors.New("extension duration must not exceed one year")
)

// MaxExtensionMinutes caps a single extension at 366 days.
const MaxExtensionMinutes = 366 * 24 * constant.MinutesPerHour

var (
	secondsPerHour = decimal.NewFromInt(int64(time.Hour / time.Second))
	nanosPerSecond = decimal.NewFromInt(int64(time.Second))
	minutesPerHour = decimal.NewFromInt(constant.MinutesPerHour)
	maxMinutes     = decimal.NewFromInt(MaxExtensionMinutes)
)

func checkRate(rate decimal.NullDecimal) error {
	if !rate.Valid {
		return ErrRateRequired
	}

	if rate.Decimal.IsNegative() {
		return ErrNegativeRate
	}

	return nil
}

// InitialPrice returns round(hours(end-start) * rate, 2).
func InitialPrice(start, end time.Time, rate decimal.NullDecimal) (decimal.Decimal, error) {
	if err := checkRate(rate); err != nil {
		return decimal.Zero, err
	}

	if !end.After(start) {
		return decimal.Zero, ErrNonPositiveSpan
	}

	// time.Duration saturates after about 292 years, so the span is built from Unix seconds.
	seconds := decimal.NewFromInt(end.Unix() - start.Unix()).
		Add(decimal.NewFromInt(int64(end.Nanosecond() - start.Nanosecond())).Div(nanosPerSecond))

	return seconds.
		Mul(rate.Decimal).
		Div(secondsPerHour).
		Round(constant.MoneyScale), nil
}

// ExtensionCost returns round(minutes/60 * rate, 2).
func ExtensionCost(minutes int, rate decimal.NullDecimal) (decimal.Decimal, error) {
	if err := checkRate(rate); err != nil {
		return decimal.Zero, err
	}

	if minutes <= 0 {
		return decimal.Zero, ErrNonPositiveMinutes
	}

	if minutes > MaxExtensionMinutes {
		return decimal.Zero, ErrTooManyMinutes
	}

	return decimal.NewFromInt(int64(minutes)).
		Mul(rate.Decimal).
		Div(minutesPerHour).
		Round(constant.MoneyScale), nil
}

// HoursToMinutes converts a decimal hour count to whole minutes. ok is false when
// the result is not a positive whole number or exceeds MaxExtensionMinutes.
func HoursToMinutes(hours decimal.Decimal) (minutes int, ok bool) {
	total := hours.Mul(minutesPerHour)
	if !total.IsInteger() || !total.IsPositive() || total.GreaterThan(maxMinutes) {
		return 0, false
	}

	return int(total.IntPart()), true
}
