package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	postgresMocks "roombook/infras/postgres/mocks"
	s3Mocks "roombook/infras/s3/mocks"
	bookingMocks "roombook/internal/domains/booking/mocks"
	bookingModel "roombook/internal/domains/booking/model"
	roomMocks "roombook/internal/domains/room/mocks"
	"roombook/internal/domains/room/model"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/service"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
)

type fixture struct {
	repo        *roomMocks.MockRoom
	bookingRepo *bookingMocks.MockBooking
	transactor  *postgresMocks.MockTransactor
	cache       *cacheMocks.MockRedisCache
	s3          *s3Mocks.MockS3
	svc         service.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := &fixture{
		repo:        roomMocks.NewMockRoom(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		transactor:  postgresMocks.NewMockTransactor(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.repo, f.bookingRepo, f.transactor, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f *fixture) allowCacheWrites() {
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f *fixture) runInTx() {
	f.transactor.EXPECT().
		WithinTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.TxOptions, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func sampleRoom() model.Room {
	return model.Room{
		ID:           "room-id",
		Code:         "R101",
		Capacity:     2,
		Status:       model.StatusOpen,
		PricePerHour: decimal.RequireFromString("10"),
		BedConfig:    model.BedConfig{"double": 1},
	}
}

func TestRoomService_Create(t *testing.T) {
	price := decimal.RequireFromString("10.5")
	negative := decimal.RequireFromString("-1")

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(f *fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  dto.CreateRoomRequest{Code: "R101", Capacity: 2, PricePerHour: &price},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, model.StatusOpen, room.Status)
						assert.Equal(t, "10.5", room.PricePerHour.String())
						assert.NotNil(t, room.BedConfig)
						assert.Equal(t, "admin-id", room.CreatedBy)

						return nil
					})
			},
		},
		{
			name:     "negative price",
			req:      dto.CreateRoomRequest{Code: "R101", Capacity: 2, PricePerHour: &negative},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate code",
			req:  dto.CreateRoomRequest{Code: "R101", Capacity: 2, PricePerHour: &price},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "duplicate code detected by the unique index",
			req:  dto.CreateRoomRequest{Code: "R101", Capacity: 2, PricePerHour: &price},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (room): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.CreateRoomRequest{Code: "R101", Capacity: 2, PricePerHour: &price},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCacheWrites()

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Create(userCtx(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "R101", res.Code)
			assert.Equal(t, "10.50", res.PricePerHour)
			assert.Equal(t, "open", res.Status)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.GetRoomsResponse)
						res.TotalData = 7

						return nil
					})
			},
			wantTotal: 7,
		},
		{
			name: "cache miss reads through",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Room{sampleRoom()}, nil)
				f.allowCacheWrites()
			},
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "get all error",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return(nil, errors.New("database error"))
				f.allowCacheWrites()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "room:get:R101", gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.allowCacheWrites()
			},
		},
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "R101")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "R101", res.Code)
			assert.Equal(t, "10.00", res.PricePerHour)
			assert.Equal(t, model.BedConfig{"double": 1}, res.BedConfig)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	capacity := 4
	negative := decimal.RequireFromString("-5")

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f *fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateRoomRequest{Capacity: &capacity},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 4, fields[model.FieldCapacity])
						assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])

						return nil
					})

				updated := sampleRoom()
				updated.Capacity = 4
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
			},
		},
		{
			name:     "empty request",
			req:      dto.UpdateRoomRequest{},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative price",
			req:      dto.UpdateRoomRequest{PricePerHour: &negative},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Capacity: &capacity},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			req:  dto.UpdateRoomRequest{Capacity: &capacity},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCacheWrites()

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Update(userCtx(), tt.req, "R101")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 4, res.Capacity)
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "detaches bookings then deletes",
			setupMock: func(f *fixture) {
				f.runInTx()

				room := sampleRoom()
				room.Image = "https://cdn.example.com/room/R101-old.png"

				gomock.InOrder(
					f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil),
					f.bookingRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
							value, ok := fields[bookingModel.FieldRoomID]
							assert.True(t, ok)
							assert.Nil(t, value)

							_, args := filter.GetWhereClause()
							assert.Equal(t, "room-id", args[bookingModel.FieldRoomID])

							return nil
						}),
					f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
				)

				f.s3.EXPECT().ObjectNameFromURL(room.Image).Return("R101-old.png")
				f.s3.EXPECT().Delete(gomock.Any(), model.EntityName, "R101-old.png").Return(nil)
			},
		},
		{
			name: "room not found",
			setupMock: func(f *fixture) {
				f.runInTx()
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "detach error rolls back",
			setupMock: func(f *fixture) {
				f.runInTx()
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.bookingRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCacheWrites()
			tt.setupMock(f)

			err := f.svc.Delete(userCtx(), "R101")

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

type nopFile struct {
	*strings.Reader
}

func (nopFile) Close() error { return nil }

func TestRoomService_UploadImage(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "front.png",
		Size:     128,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{"image/png"}},
	}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "replaces the previous image",
			setupMock: func(f *fixture) {
				room := sampleRoom()
				room.Image = "https://cdn.example.com/room/old.png"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.s3.EXPECT().Upload(gomock.Any(), model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, fileName, _ string, _ io.Reader) (string, error) {
						assert.True(t, strings.HasPrefix(fileName, "R101-"))
						assert.True(t, strings.HasSuffix(fileName, ".png"))

						return "https://cdn.example.com/room/new.png", nil
					})
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "https://cdn.example.com/room/new.png", fields[model.FieldImage])

						return nil
					})
				f.s3.EXPECT().ObjectNameFromURL("https://cdn.example.com/room/old.png").Return("old.png")
				f.s3.EXPECT().Delete(gomock.Any(), model.EntityName, "old.png").Return(nil)
			},
		},
		{
			name: "room not found",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "upload error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 unavailable"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCacheWrites()
			tt.setupMock(f)

			req := dto.UploadImageRequest{Image: header, ImageFile: nopFile{strings.NewReader("png")}}

			res, err := f.svc.UploadImage(userCtx(), req, "R101")

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "https://cdn.example.com/room/new.png", res.Image)
		})
	}
}
