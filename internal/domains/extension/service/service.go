package service

import (
	"context"
	"errors"
	"fmt"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/internal/domains/availability"
	bookingModel "roombook/internal/domains/booking/model"
	bookingRepo "roombook/internal/domains/booking/repository"
	"roombook/internal/domains/extension/model"
	"roombook/internal/domains/extension/model/dto"
	"roombook/internal/domains/extension/repository"
	"roombook/internal/domains/pricing"
	roomModel "roombook/internal/domains/room/model"
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
)

type Extension interface {
	Extend(ctx context.Context, req dto.CreateExtensionRequest, bookingID string) (dto.ExtensionResponse, error)
	GetAllByBooking(ctx context.Context, req gDto.QueryParams, bookingID string) (dto.GetExtensionsResponse, error)
	Get(ctx context.Context, id string) (dto.ExtensionResponse, error)
	Update(ctx context.Context, req dto.UpdateExtensionRequest, id string) error
}

type serviceImpl struct {
	repo        repository.Extension
	bookingRepo bookingRepo.Booking
	checker     availability.Checker
	transactor  postgres.Transactor
	publisher   event.Publisher
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Extension, bookingRepo bookingRepo.Booking, checker availability.Checker,
	transactor postgres.Transactor, publisher event.Publisher, cache cache.RedisCache, otel otel.Otel,
) Extension {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		checker:     checker,
		transactor:  transactor,
		publisher:   publisher,
		cache:       cache,
		otel:        otel,
	}
}

type extendedPayload struct {
	Extension  dto.ExtensionResponse `json:"extension"`
	EndTime    string                `json:"end_time"`
	TotalPrice string                `json:"total_price"`
}

func unavailable(roomCode string, start, end time.Time) error {
	msg := fmt.Sprintf("room %s is not available from %s to %s",
		roomCode, timezone.Format(start, constant.DateFormat), timezone.Format(end, constant.DateFormat))

	return failure.Conflict(msg) // nolint:wrapcheck
}

// Extend appends an extension to the ledger and pushes the booking's end time and
// total price forward by the extension, all in one transaction.
func (s *serviceImpl) Extend(ctx context.Context, req dto.CreateExtensionRequest, bookingID string) (res dto.ExtensionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Extend")
	defer scope.End()
	defer scope.TraceIfError(&err)

	minutes, err := req.Minutes()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		booking   bookingModel.Booking
		extension model.Extension
		oldEnd    time.Time
	)

	err = s.transactor.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.bookingRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
		if txErr != nil {
			return fmt.Errorf("failed to lock booking: %w", txErr)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !booking.Status.IsActive() {
			return failure.Conflictf("booking is %s; only booked or checked_in bookings can be extended", booking.Status) // nolint:wrapcheck
		}

		if !booking.RoomID.Valid {
			return failure.BadRequestFromString("booking no longer references a room") // nolint:wrapcheck
		}

		cost, txErr := pricing.ExtensionCost(minutes, booking.RoomRate)
		if txErr != nil {
			return failure.BadRequest(txErr) // nolint:wrapcheck
		}

		oldEnd = booking.EndTime
		newEnd := timezone.AddMinutes(oldEnd, minutes)

		available, txErr := s.checker.IsAvailable(ctx, tx, booking.RoomID.String, oldEnd, newEnd, booking.ID)
		if txErr != nil {
			return txErr
		}

		if !available {
			return unavailable(booking.RoomCode.String, oldEnd, newEnd)
		}

		extension = dto.NewExtension(booking.ID, minutes, cost, user)
		if txErr = s.repo.InsertTx(ctx, tx, extension); txErr != nil {
			return fmt.Errorf("failed to insert extension: %w", txErr)
		}

		booking.EndTime = newEnd
		booking.TotalPrice = booking.TotalPrice.Add(cost)

		fields := map[string]any{
			bookingModel.FieldEndTime:    booking.EndTime,
			bookingModel.FieldTotalPrice: booking.TotalPrice,
			constant.FieldModifiedAt:     timezone.Now(),
			constant.FieldModifiedBy:     user,
		}

		if txErr = s.bookingRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); txErr != nil {
			return fmt.Errorf("failed to update booking: %w", txErr)
		}

		return nil
	})
	if err != nil {
		if gRepo.IsExclusionViolation(err) {
			return res, unavailable(booking.RoomCode.String, oldEnd, booking.EndTime)
		}

		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to extend booking")

		return res, err
	}

	res.FromModel(extension)

	event.PublishAsync(ctx, s.publisher, event.New(event.BookingExtended, booking.ID, extendedPayload{
		Extension:  res,
		EndTime:    timezone.Format(booking.EndTime, constant.DateFormat),
		TotalPrice: booking.TotalPrice.StringFixed(constant.MoneyScale),
	}))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, roomModel.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, roomModel.CacheCount)
	}()

	return res, nil
}

func (s *serviceImpl) GetAllByBooking(ctx context.Context, req gDto.QueryParams, bookingID string) (res dto.GetExtensionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllByBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exist, err := s.bookingRepo.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return res, fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(bookingID, model.FieldBookingID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count extensions")

		return res, fmt.Errorf("failed to count extensions: %w", err)
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldAddedAt
		req.SortDir = gDto.SortDirAsc
	}

	extensions, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get extensions")

		return res, fmt.Errorf("failed to get extensions: %w", err)
	}

	res.FromModels(extensions, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExtensionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	extension, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get extension")

		return res, fmt.Errorf("failed to get extension: %w", err)
	}

	if extension.ID == constant.Empty {
		return res, failure.NotFound("time extension not found") // nolint:wrapcheck
	}

	res.FromModel(extension)

	return res, nil
}

var errImmutable = errors.New("time extension is immutable")

// Update always refuses to change an existing extension.
func (s *serviceImpl) Update(ctx context.Context, _ dto.UpdateExtensionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check extension existence")

		return fmt.Errorf("failed to check extension existence: %w", err)
	}

	if !exist {
		return failure.NotFound("time extension not found") // nolint:wrapcheck
	}

	return failure.Conflict(errImmutable.Error()) // nolint:wrapcheck
}
