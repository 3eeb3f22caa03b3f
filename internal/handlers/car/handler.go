package car

import (
	"net/http"

	"carvia/infras/otel"
	"carvia/internal/domains/car/model"
	"carvia/internal/domains/car/model/dto"
	"carvia/internal/domains/car/service"
	"carvia/shared"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/validator"
	"carvia/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Car
	otel    otel.Otel
}

func New(service service.Car, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cars", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCar)
		routerGroup.Get("/", handler.GetCars)
		routerGroup.Get("/{id}", handler.GetCarByID)
		routerGroup.Patch("/{id}", handler.UpdateCar)
		routerGroup.Delete("/{id}", handler.DeleteCar)
	})
}

// CreateCar handles the creation of a new car.
// @Summary Create a new car
// @Description Create a new car in the fleet. The image field accepts a base64 data URI.
// @Tags Car
// @Accept json
// @Produce json
// @Param request body dto.CreateCarRequest true "Create Car Request"
// @Success 201 {object} response.Message "Car created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars [post]
// @Security BearerAuth
func (handler *Handler) CreateCar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCar")
	defer scope.End()

	req := dto.CreateCarRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create car")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Car created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Car created successfully")
}

// GetCars retrieves all cars based on query parameters.
// @Summary Get all cars
// @Description Retrieve all cars with optional filtering and pagination.
// @Tags Car
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param brand query string false "Filter by brand"
// @Param status query string false "Filter by status (available, rented, maintenance)"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetCarsResponse] "List of cars"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars [get]
func (handler *Handler) GetCars(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCars")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	brand := r.URL.Query().Get(model.FieldBrand)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if brand != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBrand,
			Operator: gDto.FilterOperatorLike,
			Value:    brand,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	cars, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cars")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cars retrieved successfully")

	response.WithJSON(w, http.StatusOK, cars)
}

// GetCarByID retrieves a car by its ID.
// @Summary Get a car by ID
// @Description Retrieve a car by its unique identifier.
// @Tags Car
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Data[dto.CarResponse] "Car details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars/{id} [get]
func (handler *Handler) GetCarByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCarByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	car, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get car by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Car retrieved successfully")

	response.WithJSON(w, http.StatusOK, car)
}

// UpdateCar updates an existing car by its ID.
// @Summary Update a car by ID
// @Description Update the details of an existing car.
// @Tags Car
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Param request body dto.UpdateCarRequest true "Update Car Request"
// @Success 200 {object} response.Message "Car updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCarRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update car")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Car updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Car updated successfully")
}

// DeleteCar deletes a car by its ID.
// @Summary Delete a car by ID
// @Description Delete a car using its unique identifier.
// @Tags Car
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Message "Car deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete car")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Car deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Car deleted successfully")
}
