package model

import "carvia/shared/model"

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
	FieldRead    = "read"
)

type Contact struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	Message string `db:"message"`
	Read    bool   `db:"read"`
	model.Metadata
}
