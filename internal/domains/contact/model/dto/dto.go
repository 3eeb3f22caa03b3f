package dto

import (
	"carvia/internal/domains/contact/model"
	"carvia/shared"
	gDto "carvia/shared/dto"
	gModel "carvia/shared/model"
	"carvia/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"omitempty,max=30"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (c *CreateContactRequest) ToModel(user string) model.Contact {
	return model.Contact{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Message: c.Message,
		Read:    false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateContactRequest struct {
	Read *bool `db:"read" json:"read" validate:"omitempty"`
}

type ContactResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Message = model.Message
	r.Read = model.Read
	r.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
