package room

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/service"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{code}", handler.GetRoomByCode)
		routerGroup.Patch("/{code}", handler.UpdateRoom)
		routerGroup.Delete("/{code}", handler.DeleteRoom)
		routerGroup.Put("/{code}/image", handler.UploadRoomImage)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room with a unique code, capacity, hourly rate and optional bed configuration.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse] "Created room"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithCreated(writer, "/v1/rooms/"+room.Code, room)
}

// GetRooms retrieves rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve rooms with optional filtering, availability window and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(open, closed, maintenance)
// @Param code query string false "Filter by code (substring)"
// @Param min_price query number false "Minimum hourly rate"
// @Param max_price query number false "Maximum hourly rate"
// @Param is_air_conditioned query boolean false "Filter by air conditioning"
// @Param min_capacity query integer false "Minimum capacity"
// @Param available_from query string false "Start of the availability window (RFC 3339)"
// @Param available_to query string false "End of the availability window (RFC 3339)"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := dto.RoomFilter{}
	if err := filter.FromRequest(request); err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse room filter")

		response.WithError(writer, err)

		return
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomByCode retrieves a room by its code.
// @Summary Get a room by code
// @Description Retrieve a room by its human-assigned code.
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [get]
func (handler *Handler) GetRoomByCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByCode")
	defer scope.End()

	code := chi.URLParam(request, constant.RequestParamCode)

	room, err := handler.service.Get(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by code")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(writer, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its code.
// @Summary Update a room by code
// @Description Update capacity, air conditioning, status, hourly rate or bed configuration of a room.
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	code := chi.URLParam(request, constant.RequestParamCode)
	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Update(ctx, req, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, room)
}

// DeleteRoom deletes a room by its code.
// @Summary Delete a room by code
// @Description Delete a room. Its bookings are kept with the room reference cleared.
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	code := chi.URLParam(request, constant.RequestParamCode)

	if err := handler.service.Delete(ctx, code); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// UploadRoomImage replaces the photo of a room.
// @Summary Upload a room image
// @Description Upload a png or jpeg image of at most 1 MB. The previous image is removed.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param code path string true "Room code"
// @Param image formData file true "Room image"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code}/image [put]
// @Security BearerAuth
func (handler *Handler) UploadRoomImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadRoomImage")
	defer scope.End()

	code := chi.URLParam(request, constant.RequestParamCode)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, err)

		return
	}

	req := dto.UploadImageRequest{}

	file, fileHeader, err := request.FormFile(constant.FormFileImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.UploadImage(ctx, req, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload room image")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room image uploaded successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, room)
}
