package contact

import (
	"net/http"

	"carvia/infras/otel"
	"carvia/internal/domains/contact/model"
	"carvia/internal/domains/contact/model/dto"
	"carvia/internal/domains/contact/service"
	"carvia/shared"
	"carvia/shared/constant"
	gDto "carvia/shared/dto"
	"carvia/shared/validator"
	"carvia/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
		routerGroup.Get("/{id}", handler.GetContactByID)
		routerGroup.Patch("/{id}", handler.UpdateContact)
		routerGroup.Delete("/{id}", handler.DeleteContact)
	})
}

// CreateContact handles messages submitted through the public contact form.
// @Summary Submit a contact message
// @Description Submit a message through the contact form.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Create Contact Request"
// @Success 201 {object} response.Message "Message submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [post]
func (handler *Handler) CreateContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contact message submitted successfully")

	response.WithMessage(writer, http.StatusCreated, "Message submitted successfully")
}

// GetContacts retrieves all contact messages based on query parameters.
// @Summary Get all contact messages
// @Description Retrieve all contact messages with optional filtering and pagination.
// @Tags Contact
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Param read query boolean false "Filter by read status"
// @Success 200 {object} response.Data[dto.GetContactsResponse] "List of contact messages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	email := r.URL.Query().Get(model.FieldEmail)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	if read := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldRead)); read != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRead,
			Operator: gDto.FilterOperatorEq,
			Value:    *read,
			Table:    model.TableName,
		})
	}

	contacts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, contacts)
}

// GetContactByID retrieves a contact message by its ID.
// @Summary Get a contact message by ID
// @Description Retrieve a contact message by its unique identifier.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Data[dto.ContactResponse] "Contact message details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	contact, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact message by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact message retrieved successfully")

	response.WithJSON(w, http.StatusOK, contact)
}

// UpdateContact updates a contact message, typically to mark it as read.
// @Summary Update a contact message by ID
// @Description Update a contact message, typically to mark it as read.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Update Contact Request"
// @Success 200 {object} response.Message "Contact message updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact message updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Contact message updated successfully")
}

// DeleteContact deletes a contact message by its ID.
// @Summary Delete a contact message by ID
// @Description Delete a contact message using its unique identifier.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Message "Contact message deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact message deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Contact message deleted successfully")
}
