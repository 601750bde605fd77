package seed

//go:generate go run go.uber.org/mock/mockgen -source=./seed.go -destination=./mocks/seed_mock.go -package=mocks

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"roombook/internal/domains/room/model/dto"
	"roombook/shared/constant"
	"roombook/shared/failure"

	"github.com/rs/zerolog/log"
)

//go:embed rooms.json
var roomsData []byte

type RoomCreator interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
}

type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, email, plainPassword string) (bool, error)
}

// Result counts what a seeding run changed.
type Result struct {
	RoomsCreated int
	RoomsSkipped int
	AdminCreated bool
}

type Seeder struct {
	rooms RoomCreator
	admin AdminEnsurer
}

func New(rooms RoomCreator, admin AdminEnsurer) *Seeder {
	return &Seeder{rooms: rooms, admin: admin}
}

// DefaultRooms decodes the embedded room catalog.
func DefaultRooms() ([]dto.CreateRoomRequest, error) {
	var rooms []dto.CreateRoomRequest
	if err := json.Unmarshal(roomsData, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode embedded rooms: %w", err)
	}

	return rooms, nil
}

// Rooms creates every room whose code is not taken yet. A failure other
// than a duplicate code stops the run.
func (s *Seeder) Rooms(ctx context.Context, rooms []dto.CreateRoomRequest) (res Result, err error) {
	for _, room := range rooms {
		_, err = s.rooms.Create(ctx, room)

		switch {
		case err == nil:
			res.RoomsCreated++

			log.Info().Str("code", room.Code).Msg("room seeded")
		case failure.GetCode(err) == http.StatusConflict:
			res.RoomsSkipped++

			log.Debug().Str("code", room.Code).Msg("room already exists, skipping")
		default:
			log.Error().Err(err).Str("code", room.Code).Msg("failed to seed room")

			return res, fmt.Errorf("failed to seed room %s: %w", room.Code, err)
		}
	}

	return res, nil
}

// Admin creates the admin account when both credentials are configured.
func (s *Seeder) Admin(ctx context.Context, email, password string) (bool, error) {
	if email == constant.Empty || password == constant.Empty {
		log.Info().Msg("admin credentials not configured, skipping admin seed")

		return false, nil
	}

	created, err := s.admin.EnsureAdmin(ctx, email, password)
	if err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}

	return created, nil
}

// Run seeds the embedded rooms followed by the admin account.
func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string) (Result, error) {
	rooms, err := DefaultRooms()
	if err != nil {
		return Result{}, err
	}

	res, err := s.Rooms(ctx, rooms)
	if err != nil {
		return res, err
	}

	res.AdminCreated, err = s.Admin(ctx, adminEmail, adminPassword)

	return res, err
}
