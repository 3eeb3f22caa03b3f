package dto

import (
	"carvia/internal/domains/car/model"
	"carvia/shared"
	gDto "carvia/shared/dto"
	gModel "carvia/shared/model"
	"carvia/shared/timezone"

	"github.com/google/uuid"
)

type CreateCarRequest struct {
	Name     string `json:"name"  validate:"required,max=100"`
	Brand    string `json:"brand" validate:"required,max=100"`
	CarModel string `json:"model" validate:"required,max=100"`
	Year     int    `json:"year"  validate:"required,min=1980,max=2100"`
	Plate    string `json:"plate" validate:"required,max=20"`
	Status   string `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	// DailyPrice is the rate a full rental day is charged at.
	DailyPrice float64 `json:"daily_price" validate:"required,gt=0"`
	// Image is a base64 data URI; the stored value is the uploaded object's URL.
	Image  string `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	Active *bool  `json:"active" validate:"omitempty"`
}

func (c *CreateCarRequest) ToModel(user string, imageURL string) model.Car {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	status := model.StatusAvailable
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Car{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Brand:      c.Brand,
		CarModel:   c.CarModel,
		Year:       c.Year,
		Plate:      c.Plate,
		Status:     status,
		DailyPrice: c.DailyPrice,
		Image:      imageURL,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCarRequest struct {
	Name       string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Brand      string   `db:"brand"       json:"brand"       validate:"omitempty,max=100"`
	CarModel   string   `db:"model"       json:"model"       validate:"omitempty,max=100"`
	Year       *int     `db:"year"        json:"year"        validate:"omitempty,min=1980,max=2100"`
	Plate      string   `db:"plate"       json:"plate"       validate:"omitempty,max=20"`
	Status     string   `db:"status"      json:"status"      validate:"omitempty,oneof=available rented maintenance"`
	DailyPrice *float64 `db:"daily_price" json:"daily_price" validate:"omitempty,gt=0"`
	Image      string   `json:"image"                        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	Active     *bool    `db:"active"      json:"active"      validate:"omitempty"`
}

type CarResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	CarModel   string  `json:"model"`
	Year       int     `json:"year"`
	Plate      string  `json:"plate"`
	Status     string  `json:"status"`
	DailyPrice float64 `json:"daily_price"`
	Image      string  `json:"image"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *CarResponse) FromModel(model model.Car) {
	r.ID = model.ID
	r.Name = model.Name
	r.Brand = model.Brand
	r.CarModel = model.CarModel
	r.Year = model.Year
	r.Plate = model.Plate
	r.Status = string(model.Status)
	r.DailyPrice = model.DailyPrice
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCarsResponse struct {
	Cars      []CarResponse `json:"cars"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetCarsResponse) FromModels(models []model.Car, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cars = make([]CarResponse, len(models))
	for i, mod := range models {
		r.Cars[i].FromModel(mod)
	}
}
