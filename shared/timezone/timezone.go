package timezone

import (
	"fmt"
	"roombook/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var appLocation atomic.Pointer[time.Location]

func init() {
	SetLocation(Load(config.Get().App.Timezone))
}

// Load resolves an IANA timezone name, falling back to UTC.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	return loc
}

// SetLocation replaces the application timezone. A nil location means UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	appLocation.Store(loc)
}

// GetLocation returns the application timezone.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts t to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses value with layout in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
	}

	return t, nil
}

// AddMinutes shifts t by minutes without going through time.Duration, which
// overflows past about 292 years. Whole days are added in UTC.
func AddMinutes(t time.Time, minutes int) time.Time {
	days, rest := minutes/minutesPerDay, minutes%minutesPerDay

	return t.UTC().AddDate(0, 0, days).Add(time.Duration(rest) * time.Minute).In(t.Location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

const minutesPerDay = 24 * 60

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp parses an RFC 3339 timestamp. Values without an offset are
// interpreted in the application timezone.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	var lastErr error

	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, value, GetLocation())
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, lastErr)
}
