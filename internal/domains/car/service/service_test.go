package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carvia/config"
	"carvia/infras/otel/mocks"
	s3Mocks "carvia/infras/s3/mocks"
	carMocks "carvia/internal/domains/car/mocks"
	"carvia/internal/domains/car/model"
	"carvia/internal/domains/car/model/dto"
	"carvia/internal/domains/car/service"
	cacheMocks "carvia/shared/cache/mocks"
	"carvia/shared/constant"
	"carvia/shared/failure"
	gModel "carvia/shared/model"
	"carvia/shared/timezone"
)

// 1x1 transparent PNG.
const pngDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestCarService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := carMocks.NewMockCar(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	validReq := dto.CreateCarRequest{
		Name:       "Avanza",
		Brand:      "Toyota",
		CarModel:   "Avanza G",
		Year:       2023,
		Plate:      "B 1234 XYZ",
		DailyPrice: 40,
	}

	tests := []struct {
		name      string
		req       dto.CreateCarRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation without image",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, car model.Car) error {
						assert.Equal(t, model.StatusAvailable, car.Status)
						assert.True(t, car.Active)
						return nil
					})
			},
		},
		{
			name: "successful creation with image",
			req: func() dto.CreateCarRequest {
				req := validReq
				req.Image = pngDataURI
				return req
			}(),
			setupMock: func() {
				mockS3.EXPECT().
					UploadFileBytes(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					Return("https://cdn.example.com/car/abc.png", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, car model.Car) error {
						assert.Equal(t, "https://cdn.example.com/car/abc.png", car.Image)
						return nil
					})
			},
		},
		{
			name: "malformed image payload",
			req: func() dto.CreateCarRequest {
				req := validReq
				req.Image = "not-a-data-uri"
				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate plate",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "upload failure cleans nothing up",
			req: func() dto.CreateCarRequest {
				req := validReq
				req.Image = pngDataURI
				return req
			}(),
			setupMock: func() {
				mockS3.EXPECT().
					UploadFileBytes(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					Return("", errors.New("s3 error"))
			},
			wantErr: true,
		},
		{
			name: "insert failure removes the uploaded image",
			req: func() dto.CreateCarRequest {
				req := validReq
				req.Image = pngDataURI
				return req
			}(),
			setupMock: func() {
				mockS3.EXPECT().
					UploadFileBytes(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					Return("https://cdn.example.com/car/abc.png", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCarService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := carMocks.NewMockCar(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	existingCar := model.Car{
		ID:         "car-id",
		Name:       "Avanza",
		Status:     model.StatusAvailable,
		DailyPrice: 40,
		Image:      "https://cdn.example.com/car/old.png",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	newStatus := "maintenance"

	tests := []struct {
		name      string
		req       dto.UpdateCarRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "status change",
			req:  dto.UpdateCarRequest{Status: newStatus},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingCar, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "car not found",
			req:  dto.UpdateCarRequest{Status: newStatus},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Car{}, nil)
			},
			wantErr: true,
		},
		{
			name: "image replacement deletes the old object",
			req:  dto.UpdateCarRequest{Image: pngDataURI},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingCar, nil)

				mockS3.EXPECT().
					UploadFileBytes(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					Return("https://cdn.example.com/car/new.png", nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "https://cdn.example.com/car/new.png", fields[model.FieldImage])
						return nil
					})

				mockS3.EXPECT().
					GetObjectNameFromURL("test-bucket", existingCar.Image).
					Return("car/old.png")

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, "car/old.png").
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "car-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCarService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := carMocks.NewMockCar(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockS3.EXPECT().GetObjectNameFromURL(gomock.Any(), gomock.Any()).Return("car/old.png").AnyTimes()
	mockS3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "car-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Car{ID: "car-id", Image: "https://cdn.example.com/car/old.png"}, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "car not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Car{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
