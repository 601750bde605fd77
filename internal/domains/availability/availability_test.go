package availability_test

import (
	"context"
	"errors"
	"roombook/infras/otel/mocks"
	"roombook/internal/domains/availability"
	bookingMocks "roombook/internal/domains/booking/mocks"
	"roombook/internal/domains/booking/model"
	gDto "roombook/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIsAvailable(t *testing.T) {
	start := time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC)
	end := time.Date(2030, 5, 1, 10, 45, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(repo *bookingMocks.MockBooking)
		expected  bool
		wantErr   bool
	}{
		{
			name: "free when nothing overlaps",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().CountTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(0, nil)
			},
			expected: true,
		},
		{
			name: "taken when an active booking overlaps",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().CountTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(1, nil)
			},
			expected: false,
		},
		{
			name: "storage failure",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().CountTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(0, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			tt.setupMock(repo)

			checker := availability.New(repo, mocks.NewOtel())

			available, err := checker.IsAvailable(context.Background(), nil, "room-1", start, end, "booking-1")
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, available)
		})
	}
}

func TestOverlapFilter(t *testing.T) {
	start := time.Date(2030, 5, 1, 11, 0, 0, 0, time.UTC)
	end := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

	group := availability.OverlapFilter("room-1", start, end, "")
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "room_bookings.room_id = :room_id")
	assert.Contains(t, where, "room_bookings.start_time < :requested_end")
	assert.Contains(t, where, "room_bookings.end_time > :requested_start")
	assert.Contains(t, where, "room_bookings.status IN (:status_0, :status_1)")
	assert.NotContains(t, where, "excluding_id")
	assert.Equal(t, end, args["requested_end"])
	assert.Equal(t, start, args["requested_start"])
	assert.Equal(t, model.StatusBooked, args["status_0"])
	assert.Equal(t, model.StatusCheckedIn, args["status_1"])

	excluding := availability.OverlapFilter("room-1", start, end, "booking-9")
	where, args = excluding.GetWhereClause()

	assert.Contains(t, where, "room_bookings.id != :excluding_id")
	assert.Equal(t, "booking-9", args["excluding_id"])
}

// overlapsExisting evaluates the rendered time predicate of group against a
// stored booking occupying [existingStart, existingEnd).
func overlapsExisting(t *testing.T, group gDto.FilterGroup, existingStart, existingEnd time.Time) bool {
	t.Helper()

	where, args := group.GetWhereClause()
	require.Contains(t, where, "room_bookings.start_time < :requested_end")
	require.Contains(t, where, "room_bookings.end_time > :requested_start")

	requestedEnd, ok := args["requested_end"].(time.Time)
	require.True(t, ok)

	requestedStart, ok := args["requested_start"].(time.Time)
	require.True(t, ok)

	return existingStart.Before(requestedEnd) && existingEnd.After(requestedStart)
}

func TestOverlapFilter_Intervals(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2030, 5, 1, hour, minute, 0, 0, time.UTC)
	}

	existingStart, existingEnd := at(10, 0), at(11, 0)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{name: "touching after", start: at(11, 0), end: at(12, 0), expected: false},
		{name: "touching before", start: at(9, 0), end: at(10, 0), expected: false},
		{name: "inside", start: at(10, 30), end: at(10, 45), expected: true},
		{name: "covering", start: at(9, 0), end: at(12, 0), expected: true},
		{name: "straddling start", start: at(9, 30), end: at(10, 30), expected: true},
		{name: "straddling end", start: at(10, 59), end: at(11, 30), expected: true},
		{name: "identical", start: at(10, 0), end: at(11, 0), expected: true},
		{name: "disjoint", start: at(13, 0), end: at(14, 0), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := availability.OverlapFilter("room-1", tt.start, tt.end, "")

			assert.Equal(t, tt.expected, overlapsExisting(t, group, existingStart, existingEnd))
		})
	}
}
