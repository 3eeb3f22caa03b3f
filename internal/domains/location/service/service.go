package service

import (
	"context"
	"fmt"

	"carvia/config"
	"carvia/infras/otel"
	bookingModel "carvia/internal/domains/booking/model"
	bookingRepo "carvia/internal/domains/booking/repository"
	"carvia/internal/domains/location/model"
	"carvia/internal/domains/location/model/dto"
	"carvia/internal/domains/location/repository"
	"carvia/shared"
	"carvia/shared/cache"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetLocation    = "location:get"
	cacheGetAllLocation = "location:gets"
	cacheCountLocation  = "location:count"
)

type Location interface {
	Create(ctx context.Context, req dto.CreateLocationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLocationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.LocationResponse, error)
	Update(ctx context.Context, req dto.UpdateLocationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Location
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Location, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Location {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLocationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllLocation)
		shared.InvalidateCaches(c, s.cache, cacheCountLocation)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLocationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLocation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for locations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count locations")

		return res, fmt.Errorf("failed to count locations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get locations")

		return res, fmt.Errorf("failed to get locations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save locations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLocation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for location count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count locations")

		return res, fmt.Errorf("failed to count locations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save location count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetLocation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for location")

		return res, nil
	}

	location, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get location")

		return res, fmt.Errorf("failed to get location: %w", err)
	}

	if location.ID == constant.Empty {
		return res, failure.NotFound("location not found") // nolint:wrapcheck
	}

	res.FromModel(location)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save location to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLocationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check location existence")

		return err
	}

	if !exist {
		log.Error().Msg("location not found")

		return failure.NotFound("location not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update location")

		return fmt.Errorf("failed to update location: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLocation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete location cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLocation)
		shared.InvalidateCaches(c, s.cache, cacheCountLocation)
	}()

	return nil
}

// Delete refuses to remove a location that bookings still reference.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if location exists")

		return fmt.Errorf("failed to check if location exists: %w", err)
	}

	if !exist {
		log.Error().Msg("location not found")

		return failure.NotFound("location not found") // nolint:wrapcheck
	}

	referenced, err := s.bookingRepo.Exist(ctx, locationReferenceFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check location references")

		return fmt.Errorf("failed to check location references: %w", err)
	}

	if referenced {
		return failure.Conflict("location is still referenced by bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete location")

		return fmt.Errorf("failed to delete location: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLocation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete location from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLocation)
		shared.InvalidateCaches(c, s.cache, cacheCountLocation)
	}()

	return nil
}

func locationReferenceFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldPickupLocationID,
				Table:    bookingModel.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				ArgName:  "pickup_location_ref",
			},
			gDto.Filter{
				Field:    bookingModel.FieldDropoffLocationID,
				Table:    bookingModel.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				ArgName:  "dropoff_location_ref",
			},
		},
	}
}
