//go:build wireinject
// +build wireinject

package di

import (
	"carvia/config"
	"carvia/infras/jwt"
	"carvia/infras/otel"
	"carvia/infras/postgres"
	"carvia/infras/redis"
	"carvia/infras/s3"
	"carvia/permissions"
	"carvia/shared/cache"
	"carvia/transport/http"
	"carvia/transport/http/middleware"
	"carvia/transport/http/router"

	bookingRepository "carvia/internal/domains/booking/repository"
	bookingService "carvia/internal/domains/booking/service"
	carRepository "carvia/internal/domains/car/repository"
	carService "carvia/internal/domains/car/service"
	contactRepository "carvia/internal/domains/contact/repository"
	contactService "carvia/internal/domains/contact/service"
	locationRepository "carvia/internal/domains/location/repository"
	locationService "carvia/internal/domains/location/service"
	userRepository "carvia/internal/domains/user/repository"
	userService "carvia/internal/domains/user/service"

	authService "carvia/internal/domains/auth/service"

	authHandler "carvia/internal/handlers/auth"
	bookingHandler "carvia/internal/handlers/booking"
	carHandler "carvia/internal/handlers/car"
	contactHandler "carvia/internal/handlers/contact"
	locationHandler "carvia/internal/handlers/location"
	userHandler "carvia/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var carDomain = wire.NewSet(
	carRepository.New,
	carService.New,
)

var locationDomain = wire.NewSet(
	locationRepository.New,
	locationService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	carDomain,
	locationDomain,
	bookingDomain,
	contactDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	carHandler.New,
	locationHandler.New,
	contactHandler.New,
	bookingHandler.New,
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
