//go:build wireinject
// +build wireinject

package di

import (
	"roombook/config"
	"roombook/infras/jwt"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/infras/redis"
	"roombook/infras/s3"
	"roombook/permissions"
	"roombook/shared/cache"
	"roombook/shared/event"
	"roombook/transport/http"
	"roombook/transport/http/middleware"
	"roombook/transport/http/router"

	"github.com/google/wire"

	authService "roombook/internal/domains/auth/service"
	"roombook/internal/domains/availability"
	bookingRepository "roombook/internal/domains/booking/repository"
	bookingService "roombook/internal/domains/booking/service"
	customerRepository "roombook/internal/domains/customer/repository"
	customerService "roombook/internal/domains/customer/service"
	extensionRepository "roombook/internal/domains/extension/repository"
	extensionService "roombook/internal/domains/extension/service"
	roomRepository "roombook/internal/domains/room/repository"
	roomService "roombook/internal/domains/room/service"
	userRepository "roombook/internal/domains/user/repository"

	authHandler "roombook/internal/handlers/auth"
	bookingHandler "roombook/internal/handlers/booking"
	customerHandler "roombook/internal/handlers/customer"
	extensionHandler "roombook/internal/handlers/extension"
	roomHandler "roombook/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	availability.New,
	bookingService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var extensionDomain = wire.NewSet(
	extensionRepository.New,
	extensionService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomDomain,
	bookingDomain,
	customerDomain,
	extensionDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	customerHandler.New,
	extensionHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeAuthService builds the auth service alone for the seed command.
func InitializeAuthService() authService.Auth {
	wire.Build(
		configurations,
		infrastructures,
		authDomain,
	)

	return nil
}

// InitializeRoomService builds the room service alone for the seed command.
func InitializeRoomService() roomService.Room {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		bookingRepository.New,
		roomDomain,
	)

	return nil
}
