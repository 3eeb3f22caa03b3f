package location

import (
	"net/http"

	"carvia/infras/otel"
	"carvia/internal/domains/location/model"
	"carvia/internal/domains/location/model/dto"
	"carvia/internal/domains/location/service"
	"carvia/shared"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/validator"
	"carvia/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Location
	otel    otel.Otel
}

func New(service service.Location, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/locations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLocation)
		routerGroup.Get("/", handler.GetLocations)
		routerGroup.Get("/{id}", handler.GetLocationByID)
		routerGroup.Patch("/{id}", handler.UpdateLocation)
		routerGroup.Delete("/{id}", handler.DeleteLocation)
	})
}

// CreateLocation handles the creation of a new pickup/dropoff location.
// @Summary Create a new location
// @Description Create a new pickup/dropoff location.
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.CreateLocationRequest true "Create Location Request"
// @Success 201 {object} response.Message "Location created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations [post]
// @Security BearerAuth
func (handler *Handler) CreateLocation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLocation")
	defer scope.End()

	req := dto.CreateLocationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create location")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Location created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Location created successfully")
}

// GetLocations retrieves all locations based on query parameters.
// @Summary Get all locations
// @Description Retrieve all locations with optional filtering and pagination.
// @Tags Location
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param city query string false "Filter by city"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetLocationsResponse] "List of locations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations [get]
func (handler *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	city := r.URL.Query().Get(model.FieldCity)

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

	if city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorLike,
			Value:    city,
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

	locations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Locations retrieved successfully")

	response.WithJSON(w, http.StatusOK, locations)
}

// GetLocationByID retrieves a location by its ID.
// @Summary Get a location by ID
// @Description Retrieve a location by its unique identifier.
// @Tags Location
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Data[dto.LocationResponse] "Location details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations/{id} [get]
func (handler *Handler) GetLocationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	location, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get location by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Location retrieved successfully")

	response.WithJSON(w, http.StatusOK, location)
}

// UpdateLocation updates an existing location by its ID.
// @Summary Update a location by ID
// @Description Update the details of an existing location.
// @Tags Location
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "Update Location Request"
// @Success 200 {object} response.Message "Location updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLocation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateLocationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update location")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Location updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Location updated successfully")
}

// DeleteLocation deletes a location by its ID.
// @Summary Delete a location by ID
// @Description Delete a location that no bookings reference.
// @Tags Location
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Message "Location deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLocation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete location")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Location deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Location deleted successfully")
}
