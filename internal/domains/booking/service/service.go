package service

import (
	"context"
	"errors"
	"fmt"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/internal/domains/availability"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/repository"
	customerModel "roombook/internal/domains/customer/model"
	customerRepo "roombook/internal/domains/customer/repository"
	extensionModel "roombook/internal/domains/extension/model"
	extensionRepo "roombook/internal/domains/extension/repository"
	"roombook/internal/domains/pricing"
	roomModel "roombook/internal/domains/room/model"
	roomRepo "roombook/internal/domains/room/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/event"
	"roombook/shared/failure"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.Booking
	roomRepo      roomRepo.Room
	customerRepo  customerRepo.Customer
	extensionRepo extensionRepo.Extension
	checker       availability.Checker
	transactor    postgres.Transactor
	publisher     event.Publisher
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	repo repository.Booking, roomRepo roomRepo.Room, customerRepo customerRepo.Customer, extensionRepo extensionRepo.Extension,
	checker availability.Checker, transactor postgres.Transactor, publisher event.Publisher, cache cache.RedisCache, otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:          repo,
		roomRepo:      roomRepo,
		customerRepo:  customerRepo,
		extensionRepo: extensionRepo,
		checker:       checker,
		transactor:    transactor,
		publisher:     publisher,
		cache:         cache,
		otel:          otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func unavailable(roomCode string, start, end time.Time) error {
	msg := fmt.Sprintf("room %s is not available from %s to %s",
		roomCode, timezone.Format(start, constant.DateFormat), timezone.Format(end, constant.DateFormat))

	return failure.Conflict(msg) // nolint:wrapcheck
}

// Create books a room for the requested interval. The room row stays locked
// until commit so concurrent bookings of the same room are serialized.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	start, end, err := req.Interval(timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		booking   model.Booking
		customers []customerModel.Customer
	)

	err = s.transactor.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		room, txErr := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.RoomCode, roomModel.FieldCode, roomModel.TableName))
		if txErr != nil {
			return fmt.Errorf("failed to lock room: %w", txErr)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if !room.IsBookable() {
			return failure.BadRequestFromString(fmt.Sprintf("room_code: room %s is %s; only open rooms can be booked", room.Code, room.Status)) // nolint:wrapcheck
		}

		price, txErr := pricing.InitialPrice(start, end, decimal.NewNullDecimal(room.PricePerHour))
		if txErr != nil {
			return failure.BadRequest(txErr) // nolint:wrapcheck
		}

		booking = req.ToModel(room, start, end, price, user)

		if txErr = s.repo.InsertTx(ctx, tx, booking); txErr != nil {
			return fmt.Errorf("failed to insert booking: %w", txErr)
		}

		available, txErr := s.checker.IsAvailable(ctx, tx, room.ID, start, end, booking.ID)
		if txErr != nil {
			return txErr
		}

		if !available {
			return unavailable(room.Code, start, end)
		}

		customers = req.CustomerModels(booking.ID, user)
		if txErr = s.customerRepo.InsertBulkTx(ctx, tx, customers); txErr != nil {
			return fmt.Errorf("failed to insert customers: %w", txErr)
		}

		return nil
	})
	if err != nil {
		if gRepo.IsExclusionViolation(err) {
			return res, unavailable(req.RoomCode, start, end)
		}

		log.Error().Err(err).Str("room_code", req.RoomCode).Msg("failed to create booking")

		return res, err
	}

	res.FromModel(booking)
	res.WithDetails(booking, customers, nil)

	event.PublishAsync(ctx, s.publisher, event.New(event.BookingCreated, booking.ID, res))
	s.invalidateRooms(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	customers, err := s.customerRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, customerModel.FieldBookingID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking customers")

		return res, fmt.Errorf("failed to get booking customers: %w", err)
	}

	ledger := gDto.QueryParams{SortBy: extensionModel.FieldAddedAt, SortDir: gDto.SortDirAsc}

	extensions, err := s.extensionRepo.GetAll(ctx, ledger, shared.FilterByID(id, extensionModel.FieldBookingID, extensionModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking extensions")

		return res, fmt.Errorf("failed to get booking extensions: %w", err)
	}

	res.FromModel(booking)
	res.WithDetails(booking, customers, extensions)

	return res, nil
}

// UpdateStatus moves the booking along its lifecycle with the booking row locked.
// Requesting the current status changes nothing.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		booking model.Booking
		from    model.Status
		changed bool
	)

	err = s.transactor.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.repo.GetForUpdateTx(ctx, tx, byID(id))
		if txErr != nil {
			return fmt.Errorf("failed to lock booking: %w", txErr)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		from = booking.Status

		changed, txErr = booking.Transition(model.Status(req.Status), timezone.Now())
		if txErr != nil {
			var transitionErr *model.TransitionError
			if errors.As(txErr, &transitionErr) {
				return failure.Conflict(transitionErr.Error()) // nolint:wrapcheck
			}

			return failure.BadRequest(txErr) // nolint:wrapcheck
		}

		if !changed {
			return nil
		}

		fields := booking.StatusFields()
		fields[constant.FieldModifiedAt] = timezone.Now()
		fields[constant.FieldModifiedBy] = user

		if txErr = s.repo.UpdateTx(ctx, tx, fields, byID(id)); txErr != nil {
			return fmt.Errorf("failed to update booking status: %w", txErr)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return res, err
	}

	res.FromModel(booking)

	if changed {
		event.PublishAsync(ctx, s.publisher, event.New(event.BookingStatusChanged, booking.ID, map[string]any{
			"from":    from,
			"to":      booking.Status,
			"booking": res,
		}))
		s.invalidateRooms(ctx)
	}

	return res, nil
}

// Delete detaches the guests and the extension ledger from the booking and removes it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdateTx(ctx, tx, byID(id))
		if txErr != nil {
			return fmt.Errorf("failed to lock booking: %w", txErr)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		now := timezone.Now()

		detachCustomers := map[string]any{
			customerModel.FieldBookingID: nil,
			constant.FieldModifiedAt:     now,
			constant.FieldModifiedBy:     user,
		}

		if txErr = s.customerRepo.UpdateTx(ctx, tx, detachCustomers,
			shared.FilterByID(id, customerModel.FieldBookingID, customerModel.TableName)); txErr != nil {
			return fmt.Errorf("failed to detach customers: %w", txErr)
		}

		detachExtensions := map[string]any{
			extensionModel.FieldBookingID: nil,
			constant.FieldModifiedAt:      now,
			constant.FieldModifiedBy:      user,
		}

		if txErr = s.extensionRepo.UpdateTx(ctx, tx, detachExtensions,
			shared.FilterByID(id, extensionModel.FieldBookingID, extensionModel.TableName)); txErr != nil {
			return fmt.Errorf("failed to detach extensions: %w", txErr)
		}

		if txErr = s.repo.DeleteTx(ctx, tx, byID(id)); txErr != nil {
			return fmt.Errorf("failed to delete booking: %w", txErr)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return err
	}

	event.PublishAsync(ctx, s.publisher, event.New(event.BookingDeleted, id, nil))
	s.invalidateRooms(ctx)

	return nil
}

// invalidateRooms drops cached room lists, whose availability filter depends on bookings.
func (s *serviceImpl) invalidateRooms(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, roomModel.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, roomModel.CacheCount)
	}()
}
