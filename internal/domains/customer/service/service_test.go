package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombook/infras/otel/mocks"
	bookingMocks "roombook/internal/domains/booking/mocks"
	customerMocks "roombook/internal/domains/customer/mocks"
	"roombook/internal/domains/customer/model"
	"roombook/internal/domains/customer/model/dto"
	"roombook/internal/domains/customer/service"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
)

func TestCustomerService_Create(t *testing.T) {
	age := 30

	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer, bookingRepo *bookingMocks.MockBooking)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(repo *customerMocks.MockCustomer, bookingRepo *bookingMocks.MockBooking) {
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, customer model.Customer) error {
						assert.Equal(t, sql.NullString{String: "booking-id", Valid: true}, customer.BookingID)
						assert.False(t, customer.Email.Valid)
						assert.Equal(t, model.GenderFemale, customer.Gender)

						return nil
					})
			},
		},
		{
			name: "booking not found",
			setupMock: func(_ *customerMocks.MockCustomer, bookingRepo *bookingMocks.MockBooking) {
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking deleted concurrently",
			setupMock: func(repo *customerMocks.MockCustomer, bookingRepo *bookingMocks.MockBooking) {
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (customer): %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(repo *customerMocks.MockCustomer, bookingRepo *bookingMocks.MockBooking) {
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := customerMocks.NewMockCustomer(ctrl)
			bookingRepo := bookingMocks.NewMockBooking(ctrl)
			tt.setupMock(repo, bookingRepo)

			svc := service.New(repo, bookingRepo, mocks.NewOtel())

			req := dto.CreateCustomerRequest{Name: "Ayu", Age: &age, Gender: "female"}

			res, err := svc.Create(context.Background(), req, "booking-id")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Ayu", res.Name)
			assert.Equal(t, "booking-id", *res.BookingID)
		})
	}
}

func TestCustomerService_GetAllByBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customerMocks.NewMockCustomer(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(repo, bookingRepo, mocks.NewOtel())

	params := gDto.QueryParams{Page: 1, Limit: 10}

	bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "booking-id", args[model.FieldBookingID])

			return 2, nil
		})
	repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Customer{
		{ID: "c1", Name: "Ayu", Gender: model.GenderFemale},
		{ID: "c2", Name: "Budi", Gender: model.GenderMale, BookingID: sql.NullString{String: "booking-id", Valid: true}},
	}, nil)

	res, err := svc.GetAllByBooking(context.Background(), params, "booking-id")

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Customers, 2)
	assert.Nil(t, res.Customers[0].BookingID)

	bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err = svc.GetAllByBooking(context.Background(), params, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCustomerService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{ID: "c1", Name: "Ayu"}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := customerMocks.NewMockCustomer(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, bookingMocks.NewMockBooking(ctrl), mocks.NewOtel())

			res, err := svc.Get(context.Background(), "c1")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "c1", res.ID)
		})
	}
}
