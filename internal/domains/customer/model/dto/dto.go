package dto

import (
	"database/sql"
	"fmt"
	"net/http"
	"roombook/internal/domains/customer/model"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name        string `json:"name"         validate:"required,max=255"`
	Age         *int   `json:"age"          validate:"required,gte=0"`
	Email       string `json:"email"        validate:"omitempty,email,max=254"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Gender      string `json:"gender"       validate:"required,oneof=male female other"`
}

func (c *CreateCustomerRequest) ToModel(bookingID, user string) model.Customer {
	now := timezone.Now()

	return model.Customer{
		ID:          uuid.NewString(),
		BookingID:   sql.NullString{String: bookingID, Valid: bookingID != ""},
		Name:        c.Name,
		Age:         *c.Age,
		Email:       sql.NullString{String: c.Email, Valid: c.Email != ""},
		PhoneNumber: sql.NullString{String: c.PhoneNumber, Valid: c.PhoneNumber != ""},
		Gender:      model.Gender(c.Gender),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CustomerResponse struct {
	ID          string  `json:"id"`
	BookingID   *string `json:"booking_id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Email       string  `json:"email,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Gender      string  `json:"gender"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(customer model.Customer) {
	r.ID = customer.ID

	if customer.BookingID.Valid {
		bookingID := customer.BookingID.String
		r.BookingID = &bookingID
	}

	r.Name = customer.Name
	r.Age = customer.Age
	r.Email = customer.Email.String
	r.PhoneNumber = customer.PhoneNumber.String
	r.Gender = string(customer.Gender)
	r.Metadata.FromModel(customer.Metadata)
}

func FromModels(customers []model.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		res[i].FromModel(customer)
	}

	return res
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	gDto.Pagination
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.Pagination.FromCount(totalData, limit)
	r.Customers = FromModels(models)
}

const (
	QueryBookingID = "booking_id"
	QueryName      = "name"
	QueryGender    = "gender"
)

type CustomerFilter struct {
	BookingID string
	Name      string
	Gender    string
}

func (f *CustomerFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.BookingID = query.Get(QueryBookingID)
	if f.BookingID != "" {
		if err := uuid.Validate(f.BookingID); err != nil {
			return fmt.Errorf("%s must be a valid UUID", QueryBookingID)
		}
	}

	f.Name = query.Get(QueryName)

	f.Gender = query.Get(QueryGender)
	if f.Gender != "" && !model.Gender(f.Gender).IsValid() {
		return fmt.Errorf("%s must be one of male female other", QueryGender)
	}

	return nil
}

func (f *CustomerFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.BookingID != "" {
		group.And(gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: f.BookingID, Table: model.TableName})
	}

	if f.Name != "" {
		group.And(gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: f.Name, Table: model.TableName})
	}

	if f.Gender != "" {
		group.And(gDto.Filter{Field: model.FieldGender, Operator: gDto.FilterOperatorEq, Value: f.Gender, Table: model.TableName})
	}

	return group
}
