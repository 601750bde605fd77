package service

import (
	"context"
	"fmt"
	"roombook/config"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/infras/s3"
	bookingModel "roombook/internal/domains/booking/model"
	bookingRepo "roombook/internal/domains/booking/repository"
	"roombook/internal/domains/room/model"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, code string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, code string) (dto.RoomResponse, error)
	Delete(ctx context.Context, code string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, code string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo        repository.Room
	bookingRepo bookingRepo.Booking
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.Room, bookingRepo bookingRepo.Booking, transactor postgres.Transactor,
	cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func byCode(code string) gDto.FilterGroup {
	return shared.FilterByID(code, model.FieldCode, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.Check(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, byCode(req.Code))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if exist {
		return res, failure.Conflictf("room with code %s already exists", req.Code) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflictf("room with code %s already exists", req.Code) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, err
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return total, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, code string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, code)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, byCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, code string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = req.Check(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := byCode(code)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		log.Error().Str("code", code).Msg("room not found")

		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, code)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated room")

		return res, fmt.Errorf("failed to get updated room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

// Delete detaches every booking from the room and removes it in one transaction.
// Bookings survive with a null room reference.
func (s *serviceImpl) Delete(ctx context.Context, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var room model.Room

	err = s.transactor.WithinTx(ctx, nil, func(tx *sqlx.Tx) error {
		var txErr error

		room, txErr = s.repo.GetForUpdateTx(ctx, tx, byCode(code))
		if txErr != nil {
			return fmt.Errorf("failed to lock room: %w", txErr)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		detach := map[string]any{
			bookingModel.FieldRoomID: nil,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if txErr = s.bookingRepo.UpdateTx(ctx, tx, detach, shared.FilterByID(room.ID, bookingModel.FieldRoomID, bookingModel.TableName)); txErr != nil {
			return fmt.Errorf("failed to detach bookings: %w", txErr)
		}

		if txErr = s.repo.DeleteTx(ctx, tx, shared.FilterByID(room.ID, model.FieldID, model.TableName)); txErr != nil {
			return fmt.Errorf("failed to delete room: %w", txErr)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to delete room")

		return err
	}

	s.invalidate(ctx, code)

	if room.Image != constant.Empty {
		go func() {
			s.removeImage(context.WithoutCancel(ctx), room.Image)
		}()
	}

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, code string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := byCode(code)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	url, err := s.s3.Upload(ctx, model.EntityName, req.ObjectName(code), req.ContentType(), req.ImageFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload room image: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields := map[string]any{
		model.FieldImage:         url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to save room image")

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	s.invalidate(ctx, code)

	if previous := room.Image; previous != constant.Empty {
		go func() {
			s.removeImage(context.WithoutCancel(ctx), previous)
		}()
	}

	room.Image = url
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	objectName := s.s3.ObjectNameFromURL(url)
	if objectName == constant.Empty {
		log.Warn().Str("url", url).Msg("failed to extract object name from URL")

		return
	}

	if err := s.s3.Delete(ctx, model.EntityName, objectName); err != nil {
		log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete room image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, code string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, code)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()
}
