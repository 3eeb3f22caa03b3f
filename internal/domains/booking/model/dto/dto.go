package dto

import (
	"time"

	"carvia/internal/domains/booking/model"
	"carvia/shared"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	gModel "carvia/shared/model"
	"carvia/shared/timezone"

	"github.com/google/uuid"
)

type AvailabilityRequest struct {
	CarID     string    `json:"car_id"     validate:"required"`
	PickupAt  time.Time `json:"pickup_at"  validate:"required"`
	DropoffAt time.Time `json:"dropoff_at" validate:"required"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type CreateBookingRequest struct {
	CarID             string    `json:"car_id"              validate:"required"`
	PickupLocationID  string    `json:"pickup_location_id"  validate:"required"`
	DropoffLocationID string    `json:"dropoff_location_id" validate:"required"`
	PickupAt          time.Time `json:"pickup_at"           validate:"required"`
	DropoffAt         time.Time `json:"dropoff_at"          validate:"required"`
	// TotalPrice is what the client's form displayed. The server recomputes
	// the charge from the car's daily rate and persists its own figure.
	TotalPrice float64 `json:"total_price" validate:"omitempty,gte=0"`
}

func (c *CreateBookingRequest) ToModel(user string, totalDays int, totalPrice float64) model.Booking {
	return model.Booking{
		ID:                uuid.NewString(),
		CarID:             c.CarID,
		PickupLocationID:  c.PickupLocationID,
		DropoffLocationID: c.DropoffLocationID,
		PickupAt:          c.PickupAt,
		DropoffAt:         c.DropoffAt,
		TotalDays:         totalDays,
		TotalPrice:        totalPrice,
		Status:            model.StatusPending,
		PaymentStatus:     model.PaymentUnpaid,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	PickupLocationID  string     `db:"pickup_location_id"  json:"pickup_location_id"  validate:"omitempty"`
	DropoffLocationID string     `db:"dropoff_location_id" json:"dropoff_location_id" validate:"omitempty"`
	PickupAt          *time.Time `json:"pickup_at"                                    validate:"omitempty"`
	DropoffAt         *time.Time `json:"dropoff_at"                                   validate:"omitempty"`
	Status            string     `db:"status"              json:"status"              validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentStatus     string     `db:"payment_status"      json:"payment_status"      validate:"omitempty,oneof=unpaid paid refunded"`
}

type BookingResponse struct {
	ID                string  `json:"id"`
	CarID             string  `json:"car_id"`
	PickupLocationID  string  `json:"pickup_location_id"`
	DropoffLocationID string  `json:"dropoff_location_id"`
	PickupAt          string  `json:"pickup_at"`
	DropoffAt         string  `json:"dropoff_at"`
	TotalDays         int     `json:"total_days"`
	TotalPrice        float64 `json:"total_price"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CarID = model.CarID
	r.PickupLocationID = model.PickupLocationID
	r.DropoffLocationID = model.DropoffLocationID
	r.PickupAt = timezone.Format(model.PickupAt, constant.DateFormat)
	r.DropoffAt = timezone.Format(model.DropoffAt, constant.DateFormat)
	r.TotalDays = model.TotalDays
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.PaymentStatus = string(model.PaymentStatus)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
