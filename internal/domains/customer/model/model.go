package model

import (
	"database/sql"
	"roombook/shared/model"
)

const (
	TableName  = "customer_details"
	EntityName = "customer"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldName        = "name"
	FieldAge         = "age"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldGender      = "gender"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Customer is a guest attached to a booking. BookingID is null once the booking is deleted.
type Customer struct {
	ID          string         `db:"id"`
	BookingID   sql.NullString `db:"booking_id"`
	Name        string         `db:"name"`
	Age         int            `db:"age"`
	Email       sql.NullString `db:"email"`
	PhoneNumber sql.NullString `db:"phone_number"`
	Gender      Gender         `db:"gender"`
	model.Metadata
}
