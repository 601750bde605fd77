package model

import (
	"database/sql"
	"fmt"
	"roombook/shared/model"
	"roombook/shared/timezone"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldStatus       = "status"
	FieldTotalPrice   = "total_price"
	FieldBookedAt     = "booked_at"
	FieldCheckedInAt  = "checked_in_at"
	FieldCheckedOutAt = "checked_out_at"
	FieldCancelledAt  = "cancelled_at"

	RoomTableName = "rooms"
	RoomFieldCode = "code"
)

type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// ActiveStatuses are the statuses that hold a room.
var ActiveStatuses = []Status{StatusBooked, StatusCheckedIn}

var transitions = map[Status][]Status{
	StatusBooked:    {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions[s], to)
}

func (s Status) IsActive() bool {
	return slices.Contains(ActiveStatuses, s)
}

// TransitionError is returned for a move the state machine does not allow.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	if e.To == StatusCancelled {
		return fmt.Sprintf("booking cannot be cancelled while %s", e.From)
	}

	return fmt.Sprintf("booking cannot move from %s to %s", e.From, e.To)
}

type Booking struct {
	ID           string              `db:"id"`
	RoomID       sql.NullString      `db:"room_id"`
	RoomCode     sql.NullString      `column:"code"           db:"room_code" table:"rooms"`
	RoomRate     decimal.NullDecimal `column:"price_per_hour" db:"room_rate" table:"rooms"`
	StartTime    time.Time           `db:"start_time"`
	EndTime      time.Time           `db:"end_time"`
	Status       Status              `db:"status"`
	TotalPrice   decimal.Decimal     `db:"total_price"`
	BookedAt     time.Time           `db:"booked_at"`
	CheckedInAt  sql.NullTime        `db:"checked_in_at"`
	CheckedOutAt sql.NullTime        `db:"checked_out_at"`
	CancelledAt  sql.NullTime        `db:"cancelled_at"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = room_bookings.room_id"
}

// CanCancel is true only while the guest has not checked in.
func (b Booking) CanCancel() bool {
	return b.Status == StatusBooked
}

// Transition moves the booking to status to and stamps the matching timestamp with at.
// Moving to the current status is a no-op and reports changed == false.
func (b *Booking) Transition(to Status, at time.Time) (changed bool, err error) {
	if !to.IsValid() {
		return false, fmt.Errorf("unknown booking status %q", to)
	}

	if b.Status == to {
		return false, nil
	}

	if to == StatusCancelled && !b.CanCancel() {
		return false, &TransitionError{From: b.Status, To: to}
	}

	if !b.Status.CanTransitionTo(to) {
		return false, &TransitionError{From: b.Status, To: to}
	}

	stamp := sql.NullTime{Time: at, Valid: true}

	switch to {
	case StatusCheckedIn:
		b.CheckedInAt = stamp
	case StatusCheckedOut:
		b.CheckedOutAt = stamp
	case StatusCancelled:
		b.CancelledAt = stamp
	case StatusBooked:
	}

	b.Status = to

	return true, nil
}

// StatusFields returns the columns written by the last Transition.
func (b Booking) StatusFields() map[string]any {
	fields := map[string]any{FieldStatus: b.Status}

	switch b.Status {
	case StatusCheckedIn:
		fields[FieldCheckedInAt] = b.CheckedInAt
	case StatusCheckedOut:
		fields[FieldCheckedOutAt] = b.CheckedOutAt
	case StatusCancelled:
		fields[FieldCancelledAt] = b.CancelledAt
	case StatusBooked:
	}

	return fields
}

// OriginalEndTime recovers the end time before any extension was applied.
func (b Booking) OriginalEndTime(extendedMinutes int) time.Time {
	return timezone.AddMinutes(b.EndTime, -extendedMinutes)
}
