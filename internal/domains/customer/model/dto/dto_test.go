package dto_test

import (
	"net/http/httptest"
	"roombook/internal/domains/customer/model/dto"
	"roombook/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCustomerRequest_Validation(t *testing.T) {
	age := 30
	negative := -1

	tests := []struct {
		name    string
		req     dto.CreateCustomerRequest
		wantErr string
	}{
		{name: "valid", req: dto.CreateCustomerRequest{Name: "Ayu", Age: &age, Gender: "female", PhoneNumber: "+628123456789"}},
		{name: "zero age is allowed", req: dto.CreateCustomerRequest{Name: "Baby", Age: new(int), Gender: "other"}},
		{name: "missing age", req: dto.CreateCustomerRequest{Name: "Ayu", Gender: "female"}, wantErr: "age is required"},
		{
			name:    "negative age",
			req:     dto.CreateCustomerRequest{Name: "Ayu", Age: &negative, Gender: "female"},
			wantErr: "age must be greater than or equal to 0",
		},
		{
			name:    "unknown gender",
			req:     dto.CreateCustomerRequest{Name: "Ayu", Age: &age, Gender: "unknown"},
			wantErr: "gender must be one of male female other",
		},
		{
			name:    "phone too long",
			req:     dto.CreateCustomerRequest{Name: "Ayu", Age: &age, Gender: "female", PhoneNumber: "+62812345678901234567"},
			wantErr: "phone_number must be at most 20 characters",
		},
		{
			name:    "bad email",
			req:     dto.CreateCustomerRequest{Name: "Ayu", Age: &age, Gender: "female", Email: "ayu"},
			wantErr: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCustomerFilter(t *testing.T) {
	var filter dto.CustomerFilter

	err := filter.FromRequest(httptest.NewRequest("GET", "/v1/customers?booking_id=not-a-uuid", nil))
	assert.EqualError(t, err, "booking_id must be a valid UUID")

	err = filter.FromRequest(httptest.NewRequest("GET", "/v1/customers?gender=robot", nil))
	assert.EqualError(t, err, "gender must be one of male female other")

	err = filter.FromRequest(httptest.NewRequest("GET", "/v1/customers?name=ay&gender=female", nil))
	assert.NoError(t, err)

	group := filter.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "LOWER(customer_details.name) LIKE LOWER(:name)")
	assert.Contains(t, where, "customer_details.gender = :gender")
	assert.Equal(t, "%ay%", args["name"])
}
