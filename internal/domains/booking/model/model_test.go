package model_test

import (
	"database/sql"
	"errors"
	"roombook/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	tests := []struct {
		status   model.Status
		expected bool
	}{
		{status: model.StatusBooked, expected: true},
		{status: model.StatusCheckedIn, expected: false},
		{status: model.StatusCheckedOut, expected: false},
		{status: model.StatusCancelled, expected: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, model.Booking{Status: tt.status}.CanCancel())
		})
	}
}

func TestTransition(t *testing.T) {
	at := time.Date(2030, 5, 1, 10, 5, 0, 0, time.UTC)
	stamp := sql.NullTime{Time: at, Valid: true}

	tests := []struct {
		name        string
		from        model.Status
		to          model.Status
		changed     bool
		wantErr     string
		wantStamped func(b model.Booking) sql.NullTime
	}{
		{
			name:        "check in",
			from:        model.StatusBooked,
			to:          model.StatusCheckedIn,
			changed:     true,
			wantStamped: func(b model.Booking) sql.NullTime { return b.CheckedInAt },
		},
		{
			name:        "check out",
			from:        model.StatusCheckedIn,
			to:          model.StatusCheckedOut,
			changed:     true,
			wantStamped: func(b model.Booking) sql.NullTime { return b.CheckedOutAt },
		},
		{
			name:        "cancel",
			from:        model.StatusBooked,
			to:          model.StatusCancelled,
			changed:     true,
			wantStamped: func(b model.Booking) sql.NullTime { return b.CancelledAt },
		},
		{
			name:    "same status is a no-op",
			from:    model.StatusCheckedIn,
			to:      model.StatusCheckedIn,
			changed: false,
		},
		{
			name:    "cancel after check in",
			from:    model.StatusCheckedIn,
			to:      model.StatusCancelled,
			wantErr: "booking cannot be cancelled while checked_in",
		},
		{
			name:    "cancel after check out",
			from:    model.StatusCheckedOut,
			to:      model.StatusCancelled,
			wantErr: "booking cannot be cancelled while checked_out",
		},
		{
			name:    "check out without check in",
			from:    model.StatusBooked,
			to:      model.StatusCheckedOut,
			wantErr: "booking cannot move from booked to checked_out",
		},
		{
			name:    "reopen cancelled booking",
			from:    model.StatusCancelled,
			to:      model.StatusBooked,
			wantErr: "booking cannot move from cancelled to booked",
		},
		{
			name:    "unknown status",
			from:    model.StatusBooked,
			to:      model.Status("pending"),
			wantErr: `unknown booking status "pending"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{Status: tt.from}

			changed, err := booking.Transition(tt.to, at)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.False(t, changed)
				assert.Equal(t, tt.from, booking.Status)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.to, booking.Status)

			if tt.wantStamped != nil {
				assert.Equal(t, stamp, tt.wantStamped(booking))
			}
		})
	}
}

func TestTransitionNoOpKeepsTimestamps(t *testing.T) {
	first := sql.NullTime{Time: time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC), Valid: true}
	booking := model.Booking{Status: model.StatusCheckedIn, CheckedInAt: first}

	changed, err := booking.Transition(model.StatusCheckedIn, first.Time.Add(time.Hour))

	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, booking.CheckedInAt)
}

func TestTransitionErrorType(t *testing.T) {
	booking := model.Booking{Status: model.StatusCheckedIn}

	_, err := booking.Transition(model.StatusCancelled, time.Now())

	var transitionErr *model.TransitionError
	assert.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, model.StatusCheckedIn, transitionErr.From)
	assert.Equal(t, model.StatusCancelled, transitionErr.To)
}

func TestStatusFields(t *testing.T) {
	at := sql.NullTime{Time: time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC), Valid: true}
	booking := model.Booking{Status: model.StatusBooked}

	_, err := booking.Transition(model.StatusCancelled, at.Time)
	assert.NoError(t, err)

	assert.Equal(t, map[string]any{
		model.FieldStatus:      model.StatusCancelled,
		model.FieldCancelledAt: at,
	}, booking.StatusFields())
}

func TestOriginalEndTime(t *testing.T) {
	end := time.Date(2030, 5, 1, 13, 15, 0, 0, time.UTC)
	booking := model.Booking{EndTime: end}

	assert.Equal(t, end, booking.OriginalEndTime(0))
	assert.Equal(t, time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC), booking.OriginalEndTime(30+45))

	// extensions totalling more minutes than a time.Duration can express
	long := model.Booking{EndTime: time.Date(2630, 5, 1, 13, 15, 0, 0, time.UTC)}
	assert.Equal(t, int64(300_000_000)*60, long.EndTime.Unix()-long.OriginalEndTime(300_000_000).Unix())
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, model.StatusBooked.IsActive())
	assert.True(t, model.StatusCheckedIn.IsActive())
	assert.False(t, model.StatusCheckedOut.IsActive())
	assert.False(t, model.StatusCancelled.IsActive())

	assert.True(t, model.StatusBooked.CanTransitionTo(model.StatusCheckedIn))
	assert.False(t, model.StatusCheckedOut.CanTransitionTo(model.StatusCheckedIn))
}
