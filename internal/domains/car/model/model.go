package model

import "carvia/shared/model"

const (
	TableName  = "cars"
	EntityName = "car"

	FieldID         = "id"
	FieldName       = "name"
	FieldBrand      = "brand"
	FieldCarModel   = "model"
	FieldYear       = "year"
	FieldPlate      = "plate"
	FieldStatus     = "status"
	FieldDailyPrice = "daily_price"
	FieldImage      = "image"
	FieldActive     = "active"
)

// Status is the fleet-level gate. A car that is not available never admits
// bookings, regardless of its calendar.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusRented      Status = "rented"
	StatusMaintenance Status = "maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance:
		return true
	default:
		return false
	}
}

type Car struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Brand      string  `db:"brand"`
	CarModel   string  `db:"model"`
	Year       int     `db:"year"`
	Plate      string  `db:"plate"`
	Status     Status  `db:"status"`
	DailyPrice float64 `db:"daily_price"`
	Image      string  `db:"image"`
	Active     bool    `db:"active"`
	model.Metadata
}
