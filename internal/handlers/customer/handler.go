package customer

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/customer/model/dto"
	"roombook/internal/domains/customer/service"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/{id}", handler.GetCustomerByID)
	})
}

// BookingRouter registers the routes nested under /bookings.
func (handler *Handler) BookingRouter(router chi.Router) {
	router.Get("/{id}/customers", handler.GetBookingCustomers)
	router.Post("/{id}/customers", handler.CreateCustomer)
}

// CreateCustomer adds a guest to a booking.
// @Summary Add a customer to a booking
// @Description Attach a guest to an existing booking.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CreateCustomerRequest true "Create Customer Request"
// @Success 201 {object} response.Data[dto.CustomerResponse] "Created customer"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/customers [post]
func (handler *Handler) CreateCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCustomer")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)
	req := dto.CreateCustomerRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	customer, err := handler.service.Create(ctx, req, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create customer")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Customer added to booking " + bookingID)

	response.WithCreated(writer, "/v1/customers/"+customer.ID, customer)
}

// GetCustomers retrieves customer details based on query parameters.
// @Summary Get all customers
// @Description Retrieve customer details with optional filtering and pagination.
// @Tags Customer
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking ID"
// @Param name query string false "Filter by name (substring)"
// @Param gender query string false "Filter by gender" Enums(male, female, other)
// @Success 200 {object} response.Data[dto.GetCustomersResponse] "List of customers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
func (handler *Handler) GetCustomers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := dto.CustomerFilter{}
	if err := filter.FromRequest(request); err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse customer filter")

		response.WithError(writer, err)

		return
	}

	customers, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, customers)
}

// GetBookingCustomers retrieves the guests of a booking.
// @Summary Get the customers of a booking
// @Description Retrieve the customer details attached to a booking.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetCustomersResponse] "List of customers"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/customers [get]
func (handler *Handler) GetBookingCustomers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingCustomers")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	customers, err := handler.service.GetAllByBooking(ctx, queryParams, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking customers")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, customers)
}

// GetCustomerByID retrieves a customer detail by its ID.
// @Summary Get a customer by ID
// @Description Retrieve a customer detail by its unique identifier.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Data[dto.CustomerResponse] "Customer details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{id} [get]
func (handler *Handler) GetCustomerByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	customer, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, customer)
}
