package service

import (
	"context"
	"fmt"
	"roombook/infras/otel"
	bookingModel "roombook/internal/domains/booking/model"
	bookingRepo "roombook/internal/domains/booking/repository"
	"roombook/internal/domains/customer/model"
	"roombook/internal/domains/customer/model/dto"
	"roombook/internal/domains/customer/repository"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	gRepo "roombook/shared/repository"

	"github.com/rs/zerolog/log"
)

type Customer interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest, bookingID string) (dto.CustomerResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	GetAllByBooking(ctx context.Context, req gDto.QueryParams, bookingID string) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
}

type serviceImpl struct {
	repo        repository.Customer
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(repo repository.Customer, bookingRepo bookingRepo.Booking, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) ensureBooking(ctx context.Context, bookingID string) error {
	exist, err := s.bookingRepo.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest, bookingID string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.ensureBooking(ctx, bookingID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	customer := req.ToModel(bookingID, user)

	if err = s.repo.Insert(ctx, customer); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.NotFound("booking not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create customer")

		return res, fmt.Errorf("failed to create customer: %w", err)
	}

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	customers, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(customers, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetAllByBooking(ctx context.Context, req gDto.QueryParams, bookingID string) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllByBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.ensureBooking(ctx, bookingID); err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}
