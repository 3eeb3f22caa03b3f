package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carvia/infras/otel"
	"carvia/infras/postgres"
	"carvia/internal/domains/booking/model"
	carModel "carvia/internal/domains/car/model"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/logger"
	gRepo "carvia/shared/repository"

	"github.com/lib/pq"
)

var (
	ErrCarNotFound    = errors.New("car not found")
	ErrCarUnavailable = errors.New("car is not available")
	ErrIntervalTaken  = errors.New("interval already booked")
)

// Two bookings clash when their half-open intervals intersect:
// existing.pickup_at < candidate.dropoff_at AND existing.dropoff_at > candidate.pickup_at.
// Back-to-back bookings share an instant and do not clash. This is the SQL
// form of model.Overlaps; keep the two in sync.
const countOverlappingQuery = `
	SELECT COUNT(id) FROM bookings
	WHERE car_id = $1
	  AND status = ANY($2)
	  AND pickup_at < $4
	  AND dropoff_at > $3`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertIfVacant(ctx context.Context, model model.Booking) error
	CountOverlapping(ctx context.Context, carID string, pickupAt, dropoffAt time.Time) (int, error)
	CountOverlappingExcluding(ctx context.Context, carID string, pickupAt, dropoffAt time.Time, excludeID string) (int, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func occupyingStatuses() pq.StringArray {
	statuses := make(pq.StringArray, len(model.OccupyingStatuses))
	for i, status := range model.OccupyingStatuses {
		statuses[i] = string(status)
	}

	return statuses
}

// CountOverlapping counts occupying bookings on the car whose interval
// intersects [pickupAt, dropoffAt).
func (repo *repositoryImpl) CountOverlapping(ctx context.Context, carID string, pickupAt, dropoffAt time.Time) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, countOverlappingQuery)

	err = repo.db.Read.GetContext(ctx, &count, countOverlappingQuery, carID, occupyingStatuses(), pickupAt, dropoffAt)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

// CountOverlappingExcluding is CountOverlapping with one booking left out,
// used when re-checking a booking whose own interval is being moved.
func (repo *repositoryImpl) CountOverlappingExcluding(ctx context.Context, carID string, pickupAt, dropoffAt time.Time, excludeID string) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlappingExcluding")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := countOverlappingQuery + " AND id != $5"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &count, query, carID, occupyingStatuses(), pickupAt, dropoffAt, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

// InsertIfVacant admits the booking inside a single transaction: it locks the
// car row, re-checks the status gate and the calendar, and only then inserts.
// Concurrent admissions for the same car serialize on the row lock, and the
// exclusion constraint on (car_id, interval) backstops anything that slips by.
func (repo *repositoryImpl) InsertIfVacant(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertIfVacant")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	var carStatus string

	err = tx.GetContext(ctx, &carStatus, "SELECT status FROM cars WHERE id = $1 FOR UPDATE", booking.CarID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCarNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock car row: %w", err)
	}

	if carStatus != string(carModel.StatusAvailable) {
		return ErrCarUnavailable
	}

	var count int

	err = tx.GetContext(ctx, &count, countOverlappingQuery, booking.CarID, occupyingStatuses(), booking.PickupAt, booking.DropoffAt)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	if count > 0 {
		return ErrIntervalTaken
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return ErrIntervalTaken
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}
