package model

import "carvia/shared/model"

const (
	TableName  = "locations"
	EntityName = "location"

	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldCity    = "city"
	FieldActive  = "active"
)

type Location struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	City    string `db:"city"`
	Active  bool   `db:"active"`
	model.Metadata
}
