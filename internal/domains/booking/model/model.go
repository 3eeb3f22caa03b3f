package model

import (
	"slices"
	"time"

	"carvia/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldCarID             = "car_id"
	FieldPickupLocationID  = "pickup_location_id"
	FieldDropoffLocationID = "dropoff_location_id"
	FieldPickupAt          = "pickup_at"
	FieldDropoffAt         = "dropoff_at"
	FieldTotalDays         = "total_days"
	FieldTotalPrice        = "total_price"
	FieldStatus            = "status"
	FieldPaymentStatus     = "payment_status"
	FieldCreatedBy         = "created_by"
)

// Status is the booking lifecycle state. Only pending and confirmed
// bookings occupy their car's calendar.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// OccupyingStatuses are the states that block other bookings on the same car.
var OccupyingStatuses = []Status{StatusPending, StatusConfirmed}

// Overlaps reports whether the half-open intervals [aPickup, aDropoff) and
// [bPickup, bDropoff) intersect. Two bookings that meet exactly at one
// instant, one dropping off as the other picks up, do not overlap. The
// repository's overlap query and the bookings_no_overlap exclusion constraint
// implement this same predicate in SQL.
func Overlaps(aPickup, aDropoff, bPickup, bDropoff time.Time) bool {
	return aPickup.Before(bDropoff) && bPickup.Before(aDropoff)
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

func (s Status) Occupying() bool {
	return slices.Contains(OccupyingStatuses, s)
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// PaymentStatus tracks payment bookkeeping. It never participates in
// availability decisions.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

// Booking holds a rental over the half-open interval [PickupAt, DropoffAt).
// A booking dropping off at the same instant another picks up does not clash.
type Booking struct {
	ID                string        `db:"id"`
	CarID             string        `db:"car_id"`
	PickupLocationID  string        `db:"pickup_location_id"`
	DropoffLocationID string        `db:"dropoff_location_id"`
	PickupAt          time.Time     `db:"pickup_at"`
	DropoffAt         time.Time     `db:"dropoff_at"`
	TotalDays         int           `db:"total_days"`
	TotalPrice        float64       `db:"total_price"`
	Status            Status        `db:"status"`
	PaymentStatus     PaymentStatus `db:"payment_status"`
	model.Metadata
}
