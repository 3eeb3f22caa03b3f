package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carvia/config"
	"carvia/infras/otel"
	"carvia/infras/s3"
	"carvia/internal/domains/car/model"
	"carvia/internal/domains/car/model/dto"
	"carvia/internal/domains/car/repository"
	"carvia/shared"
	"carvia/shared/base64"
	"carvia/shared/cache"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/failure"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCar    = "car:get"
	cacheGetAllCar = "car:gets"
	cacheCountCar  = "car:count"
)

type Car interface {
	Create(ctx context.Context, req dto.CreateCarRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCarsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CarResponse, error)
	Update(ctx context.Context, req dto.UpdateCarRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Car
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Car, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Car {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// uploadImage decodes a base64 data URI and stores it as an object named
// after a fresh UUID, keeping the extension implied by the content type.
func (s *serviceImpl) uploadImage(ctx context.Context, image string) (url, objectName string, err error) {
	contentType := base64.GetContentType(image)

	data, err := base64.Decode(image)
	if err != nil {
		return constant.Empty, constant.Empty, failure.BadRequestFromString("image must be a base64 data URI") // nolint:wrapcheck
	}

	filename := uuid.NewString()
	if ext, found := strings.CutPrefix(contentType, "image/"); found {
		filename = fmt.Sprintf("%s.%s", filename, ext)
	}

	url, err = s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, filename, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, filename, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCarRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty
	var uploadedObjectName string

	if req.Image != constant.Empty {
		imageURL, uploadedObjectName, err = s.uploadImage(ctx, req.Image)
		if err != nil {
			return err
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("a car with this plate already exists") // nolint:wrapcheck
		}

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCar)
		shared.InvalidateCaches(c, s.cache, cacheCountCar)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCarsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCar, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cars")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cars")

		return res, fmt.Errorf("failed to get cars: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cars to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCar, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCar, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car")

		return res, nil
	}

	car, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return res, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		return res, failure.NotFound("car not found") // nolint:wrapcheck
	}

	res.FromModel(car)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCarRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentCar, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check car existence")

		return err
	}

	if currentCar.ID == constant.Empty {
		log.Error().Msg("car not found")

		return failure.NotFound("car not found") // nolint:wrapcheck
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	bucketName := s.cfg.External.S3.BucketName

	if req.Image != constant.Empty {
		imageURL, uploadedObjectName, err = s.uploadImage(ctx, req.Image)
		if err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update car")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("a car with this plate already exists") // nolint:wrapcheck
		}

		return fmt.Errorf("failed to update car: %w", err)
	}

	if imageURL != constant.Empty && currentCar.Image != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, currentCar.Image)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCar, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete car cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCar)
		shared.InvalidateCaches(c, s.cache, cacheCountCar)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	car, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get car for deletion")

		return fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		log.Error().Msg("car not found")

		return failure.NotFound("car not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete car")

		return fmt.Errorf("failed to delete car: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCar, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete car from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCar)
		shared.InvalidateCaches(c, s.cache, cacheCountCar)

		if car.Image != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName

			objectName := s.s3.GetObjectNameFromURL(bucketName, car.Image)
			if objectName != constant.Empty {
				if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
					log.Error().Err(err).Msg("failed to delete car image from S3")
				}
			}
		}
	}()

	return nil
}
