package seed_test

import (
	"context"
	"errors"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/seed"
	"roombook/internal/seed/mocks"
	"roombook/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	rooms  *mocks.MockRoomCreator
	admin  *mocks.MockAdminEnsurer
	seeder *seed.Seeder
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		rooms: mocks.NewMockRoomCreator(ctrl),
		admin: mocks.NewMockAdminEnsurer(ctrl),
	}
	f.seeder = seed.New(f.rooms, f.admin)

	return f
}

func TestDefaultRooms(t *testing.T) {
	rooms, err := seed.DefaultRooms()
	require.NoError(t, err)
	require.NotEmpty(t, rooms)

	codes := map[string]bool{}

	for _, room := range rooms {
		assert.NotEmpty(t, room.Code)
		assert.False(t, codes[room.Code], "duplicate code %s", room.Code)
		codes[room.Code] = true

		require.NotNil(t, room.PricePerHour, room.Code)
		assert.False(t, room.PricePerHour.IsNegative(), room.Code)
		assert.Positive(t, room.Capacity, room.Code)
		assert.NoError(t, room.BedConfig.Validate(), room.Code)
	}

	assert.Equal(t, "10", rooms[0].PricePerHour.String())
}

func TestRooms(t *testing.T) {
	rooms := []dto.CreateRoomRequest{{Code: "R101"}, {Code: "R102"}, {Code: "R103"}}

	t.Run("skips existing codes", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Create(gomock.Any(), rooms[0]).Return(dto.RoomResponse{}, nil)
		f.rooms.EXPECT().Create(gomock.Any(), rooms[1]).Return(dto.RoomResponse{}, failure.Conflict("room with code R102 already exists"))
		f.rooms.EXPECT().Create(gomock.Any(), rooms[2]).Return(dto.RoomResponse{}, nil)

		res, err := f.seeder.Rooms(context.Background(), rooms)

		require.NoError(t, err)
		assert.Equal(t, 2, res.RoomsCreated)
		assert.Equal(t, 1, res.RoomsSkipped)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Create(gomock.Any(), rooms[0]).Return(dto.RoomResponse{}, nil)
		f.rooms.EXPECT().Create(gomock.Any(), rooms[1]).Return(dto.RoomResponse{}, errors.New("connection refused"))

		res, err := f.seeder.Rooms(context.Background(), rooms)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "R102")
		assert.Equal(t, 1, res.RoomsCreated)
	})
}

func TestAdmin(t *testing.T) {
	t.Run("skipped without credentials", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.seeder.Admin(context.Background(), "admin@example.com", "")

		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("creates admin", func(t *testing.T) {
		f := newFixture(t)

		f.admin.EXPECT().EnsureAdmin(gomock.Any(), "admin@example.com", "secret123").Return(true, nil)

		created, err := f.seeder.Admin(context.Background(), "admin@example.com", "secret123")

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("propagates errors", func(t *testing.T) {
		f := newFixture(t)

		f.admin.EXPECT().EnsureAdmin(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		_, err := f.seeder.Admin(context.Background(), "admin@example.com", "secret123")

		assert.ErrorContains(t, err, "failed to seed admin")
	})
}

func TestRun(t *testing.T) {
	f := newFixture(t)

	rooms, err := seed.DefaultRooms()
	require.NoError(t, err)

	f.rooms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{}, nil).Times(len(rooms))
	f.admin.EXPECT().EnsureAdmin(gomock.Any(), "admin@example.com", "secret123").Return(false, nil)

	res, err := f.seeder.Run(context.Background(), "admin@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, len(rooms), res.RoomsCreated)
	assert.False(t, res.AdminCreated)
}
