package extension

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/extension/model/dto"
	"roombook/internal/domains/extension/service"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Extension
	otel    otel.Otel
}

func New(service service.Extension, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/extensions", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetExtensionByID)
		routerGroup.Patch("/{id}", handler.UpdateExtension)
	})
}

// BookingRouter registers the routes nested under /bookings.
func (handler *Handler) BookingRouter(router chi.Router) {
	router.Get("/{id}/extensions", handler.GetBookingExtensions)
	router.Post("/{id}/extensions", handler.ExtendBooking)
}

// ExtendBooking pushes the end of a booking forward.
// @Summary Extend a booking
// @Description Extend a booked or checked in booking by a duration in hours. The extra cost uses the room's current hourly rate.
// @Tags Extension
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CreateExtensionRequest true "Create Extension Request"
// @Success 201 {object} response.Data[dto.ExtensionResponse] "Created time extension"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/extensions [post]
func (handler *Handler) ExtendBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendBooking")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)
	req := dto.CreateExtensionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	extension, err := handler.service.Extend(ctx, req, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to extend booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + bookingID + " extended")

	response.WithCreated(writer, "/v1/extensions/"+extension.ID, extension)
}

// GetBookingExtensions retrieves the extension ledger of a booking.
// @Summary Get the time extensions of a booking
// @Description Retrieve the time extensions of a booking, oldest first unless sorted otherwise.
// @Tags Extension
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetExtensionsResponse] "List of time extensions"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/extensions [get]
func (handler *Handler) GetBookingExtensions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingExtensions")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	extensions, err := handler.service.GetAllByBooking(ctx, queryParams, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking extensions")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, extensions)
}

// GetExtensionByID retrieves a time extension by its ID.
// @Summary Get a time extension by ID
// @Description Retrieve a time extension by its unique identifier.
// @Tags Extension
// @Accept json
// @Produce json
// @Param id path string true "Time extension ID"
// @Success 200 {object} response.Data[dto.ExtensionResponse] "Time extension details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extensions/{id} [get]
func (handler *Handler) GetExtensionByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExtensionByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	extension, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time extension by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, extension)
}

// UpdateExtension is always refused because time extensions are immutable.
// @Summary Update a time extension
// @Description Time extensions are append-only. Existing extensions answer 409.
// @Tags Extension
// @Accept json
// @Produce json
// @Param id path string true "Time extension ID"
// @Param request body dto.UpdateExtensionRequest true "Update Extension Request"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extensions/{id} [patch]
func (handler *Handler) UpdateExtension(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExtension")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateExtensionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	err := handler.service.Update(ctx, req, id)

	scope.TraceError(err)
	log.Warn().Err(err).Str("extension_id", id).Msg("refused time extension update")

	response.WithError(writer, err)
}
