package dto

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"roombook/internal/domains/booking/model"
	customerModel "roombook/internal/domains/customer/model"
	customerDto "roombook/internal/domains/customer/model/dto"
	extensionModel "roombook/internal/domains/extension/model"
	extensionDto "roombook/internal/domains/extension/model/dto"
	roomModel "roombook/internal/domains/room/model"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	errStartInPast    = errors.New("start_time must be in the future")
	errEndBeforeStart = errors.New("end_time must be after start_time")
)

type CreateBookingRequest struct {
	RoomCode  string                              `json:"room_code"  validate:"required,max=20"`
	StartTime string                              `json:"start_time" validate:"required"`
	EndTime   string                              `json:"end_time"   validate:"required"`
	Customers []customerDto.CreateCustomerRequest `json:"customers"  validate:"required,min=1,dive"`
}

// Interval parses the requested times and checks them against now.
// The start must lie strictly after now and the end strictly after the start.
func (c *CreateBookingRequest) Interval(now time.Time) (start, end time.Time, err error) {
	start, err = timezone.ParseTimestamp(c.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("start_time: %w", err)
	}

	end, err = timezone.ParseTimestamp(c.EndTime)
	if err != nil {
		return start, end, fmt.Errorf("end_time: %w", err)
	}

	if !start.After(now) {
		return start, end, errStartInPast
	}

	if !end.After(start) {
		return start, end, errEndBeforeStart
	}

	return start, end, nil
}

func (c *CreateBookingRequest) ToModel(room roomModel.Room, start, end time.Time, price decimal.Decimal, user string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:         uuid.NewString(),
		RoomID:     sql.NullString{String: room.ID, Valid: true},
		RoomCode:   sql.NullString{String: room.Code, Valid: true},
		RoomRate:   decimal.NewNullDecimal(room.PricePerHour),
		StartTime:  start,
		EndTime:    end,
		Status:     model.StatusBooked,
		TotalPrice: price,
		BookedAt:   now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func (c *CreateBookingRequest) CustomerModels(bookingID, user string) []customerModel.Customer {
	customers := make([]customerModel.Customer, len(c.Customers))
	for i := range c.Customers {
		customers[i] = c.Customers[i].ToModel(bookingID, user)
	}

	return customers
}

// UpdateBookingRequest only moves a booking through its lifecycle.
type UpdateBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=booked checked_in checked_out cancelled"`
}

type BookingResponse struct {
	ID              string                           `json:"id"`
	RoomCode        *string                          `json:"room_code"`
	StartTime       string                           `json:"start_time"`
	EndTime         string                           `json:"end_time"`
	OriginalEndTime string                           `json:"original_end_time,omitempty"`
	Status          string                           `json:"status"`
	TotalPrice      string                           `json:"total_price"`
	BookedAt        string                           `json:"booked_at"`
	CheckedInAt     *string                          `json:"checked_in_at"`
	CheckedOutAt    *string                          `json:"checked_out_at"`
	CancelledAt     *string                          `json:"cancelled_at"`
	Customers       []customerDto.CustomerResponse   `json:"customers,omitempty"`
	Extensions      []extensionDto.ExtensionResponse `json:"extensions,omitempty"`
	gDto.Metadata
}

func formatNullTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}

	formatted := timezone.Format(t.Time, constant.DateFormat)

	return &formatted
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID

	if booking.RoomCode.Valid {
		code := booking.RoomCode.String
		r.RoomCode = &code
	}

	r.StartTime = timezone.Format(booking.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(booking.EndTime, constant.DateFormat)
	r.Status = string(booking.Status)
	r.TotalPrice = booking.TotalPrice.StringFixed(constant.MoneyScale)
	r.BookedAt = timezone.Format(booking.BookedAt, constant.DateFormat)
	r.CheckedInAt = formatNullTime(booking.CheckedInAt)
	r.CheckedOutAt = formatNullTime(booking.CheckedOutAt)
	r.CancelledAt = formatNullTime(booking.CancelledAt)
	r.Metadata.FromModel(booking.Metadata)
}

// WithDetails attaches the guests and the extension ledger, and derives the
// end time the booking had before any extension.
func (r *BookingResponse) WithDetails(booking model.Booking, customers []customerModel.Customer, extensions []extensionModel.Extension) {
	r.Customers = customerDto.FromModels(customers)
	r.Extensions = extensionDto.FromModels(extensions)
	r.OriginalEndTime = timezone.Format(booking.OriginalEndTime(extensionModel.TotalMinutes(extensions)), constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	gDto.Pagination
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.Pagination.FromCount(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

const (
	QueryStatus    = "status"
	QueryRoomCode  = "room_code"
	QueryFrom      = "from"
	QueryTo        = "to"
	QueryGuestName = "guest_name"
)

// guestQuery keeps bookings with at least one guest whose name matches.
const guestQuery = `EXISTS (
	SELECT 1 FROM customer_details c
	WHERE c.booking_id = room_bookings.id
	AND LOWER(c.name) LIKE LOWER(:guest_name))`

type BookingFilter struct {
	Status    string
	RoomCode  string
	From      *time.Time
	To        *time.Time
	GuestName string
}

func (f *BookingFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Status = query.Get(QueryStatus)
	if f.Status != "" && !model.Status(f.Status).IsValid() {
		return fmt.Errorf("%s must be one of booked checked_in checked_out cancelled", QueryStatus)
	}

	f.RoomCode = query.Get(QueryRoomCode)
	f.GuestName = query.Get(QueryGuestName)

	for _, bound := range []struct {
		key    string
		target **time.Time
	}{{QueryFrom, &f.From}, {QueryTo, &f.To}} {
		raw := query.Get(bound.key)
		if raw == "" {
			continue
		}

		parsed, err := timezone.ParseTimestamp(raw)
		if err != nil {
			return fmt.Errorf("%s must be an RFC 3339 timestamp", bound.key)
		}

		*bound.target = &parsed
	}

	if f.From != nil && f.To != nil && !f.To.After(*f.From) {
		return fmt.Errorf("%s must be after %s", QueryTo, QueryFrom)
	}

	return nil
}

// ToFilterGroup keeps bookings overlapping [From, To) when either bound is set.
func (f *BookingFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Status != "" {
		group.And(gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: f.Status, Table: model.TableName})
	}

	if f.RoomCode != "" {
		group.And(gDto.Filter{
			ArgName: QueryRoomCode, Field: model.RoomFieldCode, Operator: gDto.FilterOperatorEq,
			Value: f.RoomCode, Table: model.RoomTableName,
		})
	}

	if f.To != nil {
		group.And(gDto.Filter{ArgName: QueryTo, Field: model.FieldStartTime, Operator: gDto.FilterOperatorLess, Value: *f.To, Table: model.TableName})
	}

	if f.From != nil {
		group.And(gDto.Filter{ArgName: QueryFrom, Field: model.FieldEndTime, Operator: gDto.FilterOperatorGreater, Value: *f.From, Table: model.TableName})
	}

	if f.GuestName != "" {
		group.And(gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value:    guestQuery,
			Args:     map[string]any{QueryGuestName: fmt.Sprintf("%%%s%%", f.GuestName)},
		})
	}

	return group
}
