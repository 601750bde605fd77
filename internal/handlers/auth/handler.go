package auth

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/auth/model/dto"
	"roombook/internal/domains/auth/service"
	"roombook/shared/constant"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/register", handler.Register)
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/refresh-token", handler.RefreshToken)
		routerGroup.Post("/change-password", handler.ChangePassword)
	})
}

// bind decodes and validates the body. On failure the 400 is already written.
func bind[T any](writer http.ResponseWriter, request *http.Request, scope otel.Scope) (T, bool) {
	var req T

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("path", request.URL.Path).Msg("rejected auth request body")

		response.WithError(writer, err)

		return req, false
	}

	return req, true
}

func (handler *Handler) fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(writer, err)
}

// Register creates a staff account with the user level.
// @Summary Register a staff account
// @Description Create a staff account. New accounts get the user level; admins are provisioned by the seed command.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "Account created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req, ok := bind[dto.RegisterRequest](writer, request, scope)
	if !ok {
		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		handler.fail(writer, scope, err, "failed to register staff account")

		return
	}

	scope.AddEvent("Staff account registered")

	response.WithMessage(writer, http.StatusCreated, "Account created")
}

// Login exchanges credentials for an access and refresh token pair.
// @Summary Log in
// @Description Exchange email and password for a JWT access and refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "Token pair"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req, ok := bind[dto.LoginRequest](writer, request, scope)
	if !ok {
		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		handler.fail(writer, scope, err, "failed to log in")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// RefreshToken rotates a token pair.
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new access and refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse] "Token pair"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req, ok := bind[dto.RefreshTokenRequest](writer, request, scope)
	if !ok {
		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		handler.fail(writer, scope, err, "failed to refresh token")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ChangePassword changes the password of the authenticated staff member.
// @Summary Change password
// @Description Change the password of the authenticated staff member.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req, ok := bind[dto.ChangePasswordRequest](writer, request, scope)
	if !ok {
		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		handler.fail(writer, scope, err, "failed to change password")

		return
	}

	scope.AddEvent("Password changed")

	response.WithMessage(writer, http.StatusOK, "Password changed")
}
