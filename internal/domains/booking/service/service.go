package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"carvia/config"
	"carvia/infras/otel"
	"carvia/internal/domains/booking/model"
	"carvia/internal/domains/booking/model/dto"
	"carvia/internal/domains/booking/repository"
	carModel "carvia/internal/domains/car/model"
	carRepo "carvia/internal/domains/car/repository"
	locationModel "carvia/internal/domains/location/model"
	locationRepo "carvia/internal/domains/location/repository"
	"carvia/shared"
	"carvia/shared/cache"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	hoursPerDay = 24
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	carRepo      carRepo.Car
	locationRepo locationRepo.Location
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Booking, carRepo carRepo.Car, locationRepo locationRepo.Location, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:         repo,
		carRepo:      carRepo,
		locationRepo: locationRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// TotalDays charges any started 24h block as a full day.
func TotalDays(pickupAt, dropoffAt time.Time) int {
	return int(math.Ceil(dropoffAt.Sub(pickupAt).Hours() / hoursPerDay))
}

// TotalPrice is the charge for the rental, rounded to cents.
func TotalPrice(totalDays int, dailyPrice float64) float64 {
	return shared.RoundMoney(float64(totalDays) * dailyPrice)
}

func validateInterval(pickupAt, dropoffAt time.Time) error {
	if !pickupAt.Before(dropoffAt) {
		return failure.BadRequestFromString("pickup_at must be before dropoff_at")
	}

	return nil
}

// CheckAvailability reports whether the car can be booked over the requested
// interval. Any storage error fails closed rather than reporting the car free.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateInterval(req.PickupAt, req.DropoffAt); err != nil {
		return res, err
	}

	car, err := s.carRepo.Get(ctx, shared.FilterByID(req.CarID, carModel.FieldID, carModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return res, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty || car.Status != carModel.StatusAvailable {
		return dto.AvailabilityResponse{Available: false}, nil
	}

	count, err := s.repo.CountOverlapping(ctx, req.CarID, req.PickupAt, req.DropoffAt)
	if err != nil {
		log.Error().Err(err).Msg("failed to count overlapping bookings")

		return res, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return dto.AvailabilityResponse{Available: count == 0}, nil
}

// Create admits a new booking. The charge is always recomputed from the car's
// daily rate; whatever total the client sent along is ignored.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = validateInterval(req.PickupAt, req.DropoffAt); err != nil {
		return res, err
	}

	for _, locationID := range []string{req.PickupLocationID, req.DropoffLocationID} {
		exist, existErr := s.locationRepo.Exist(ctx, shared.FilterByID(locationID, locationModel.FieldID, locationModel.TableName))
		if existErr != nil {
			log.Error().Err(existErr).Msg("failed to check if location exists")

			return res, fmt.Errorf("failed to check if location exists: %w", existErr)
		}

		if !exist {
			return res, failure.BadRequestFromString("location does not exist") // nolint:wrapcheck
		}
	}

	car, err := s.carRepo.Get(ctx, shared.FilterByID(req.CarID, carModel.FieldID, carModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return res, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		return res, failure.BadRequestFromString("car does not exist") // nolint:wrapcheck
	}

	if car.Status != carModel.StatusAvailable {
		return res, failure.Conflict("car is not available for booking") // nolint:wrapcheck
	}

	totalDays := TotalDays(req.PickupAt, req.DropoffAt)
	booking := req.ToModel(user, totalDays, TotalPrice(totalDays, car.DailyPrice))

	if err = s.repo.InsertIfVacant(ctx, booking); err != nil {
		switch err {
		case repository.ErrCarNotFound:
			return res, failure.BadRequestFromString("car does not exist") // nolint:wrapcheck
		case repository.ErrCarUnavailable:
			return res, failure.Conflict("car is not available for booking") // nolint:wrapcheck
		case repository.ErrIntervalTaken:
			return res, failure.Conflict("car is already booked for the requested dates") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update applies partial changes. Status changes follow the lifecycle, and
// moving the dates is only allowed while the booking is still pending; a moved
// interval goes through the same overlap check as a fresh booking and the
// charge is recomputed.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if req.Status != constant.Empty {
		next := model.Status(req.Status)
		if next != booking.Status && !booking.Status.CanTransitionTo(next) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, next)) // nolint:wrapcheck
		}
	}

	for _, locationID := range []string{req.PickupLocationID, req.DropoffLocationID} {
		if locationID == constant.Empty {
			continue
		}

		exist, existErr := s.locationRepo.Exist(ctx, shared.FilterByID(locationID, locationModel.FieldID, locationModel.TableName))
		if existErr != nil {
			log.Error().Err(existErr).Msg("failed to check if location exists")

			return fmt.Errorf("failed to check if location exists: %w", existErr)
		}

		if !exist {
			return failure.BadRequestFromString("location does not exist") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)

	if req.PickupAt != nil || req.DropoffAt != nil {
		if booking.Status != model.StatusPending {
			return failure.BadRequestFromString("booking dates can only be changed while the booking is pending") // nolint:wrapcheck
		}

		pickupAt, dropoffAt := booking.PickupAt, booking.DropoffAt
		if req.PickupAt != nil {
			pickupAt = *req.PickupAt
		}

		if req.DropoffAt != nil {
			dropoffAt = *req.DropoffAt
		}

		if err = validateInterval(pickupAt, dropoffAt); err != nil {
			return err
		}

		count, countErr := s.repo.CountOverlappingExcluding(ctx, booking.CarID, pickupAt, dropoffAt, booking.ID)
		if countErr != nil {
			log.Error().Err(countErr).Msg("failed to count overlapping bookings")

			return fmt.Errorf("failed to count overlapping bookings: %w", countErr)
		}

		if count > 0 {
			return failure.Conflict("car is already booked for the requested dates") // nolint:wrapcheck
		}

		car, carErr := s.carRepo.Get(ctx, shared.FilterByID(booking.CarID, carModel.FieldID, carModel.TableName))
		if carErr != nil {
			log.Error().Err(carErr).Msg("failed to get car")

			return fmt.Errorf("failed to get car: %w", carErr)
		}

		totalDays := TotalDays(pickupAt, dropoffAt)
		updatedFields[model.FieldPickupAt] = pickupAt
		updatedFields[model.FieldDropoffAt] = dropoffAt
		updatedFields[model.FieldTotalDays] = totalDays
		updatedFields[model.FieldTotalPrice] = TotalPrice(totalDays, car.DailyPrice)
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		// The overlap recheck above runs outside the update statement, so a
		// concurrent admission can still land first; the exclusion constraint
		// reports that clash the same way the admission path does.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return failure.Conflict("car is already booked for the requested dates") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}
