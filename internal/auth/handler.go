package auth

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"generic-api/pkg/cerror"
	"generic-api/pkg/logger"
	"generic-api/pkg/server"
)

const (
	BearerSchema      = "Bearer "
	AccessTokenCookie = "access_token"
)

type handler struct {
	authService Service
	validate    *validator.Validate
}

func NewHandler(authService Service) server.Handler {
	return &handler{
		authService: authService,
		validate:    validator.New(),
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	app.Post("/auth/login", h.Login)
	app.Post("/auth/logout", h.Logout)
	app.Get("/auth/profile", h.Profile)
	app.Post("/auth/validate", h.Validate)
	app.Get("/auth/validate", h.Validate)
}

func (h *handler) Login(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "login"))
	logger.InjectContext(ctx.Context(), log)

	var credentials LoginPayload
	err := ctx.BodyParser(&credentials)
	if err != nil {
		return cerror.
			NewError(fiber.StatusBadRequest, "malformed request body", zap.Error(err)).
			SetCode(cerror.CodeBadRequest).
			SetSeverity(zapcore.WarnLevel)
	}

	err = h.validate.Struct(&credentials)
	if err != nil {
		return cerror.
			NewError(fiber.StatusBadRequest, "missing credential fields", zap.Error(err)).
			SetCode(cerror.CodeBadRequest).
			SetPublicMessage("email and password are required").
			SetSeverity(zapcore.WarnLevel)
	}

	loginResult, err := h.authService.Authenticate(ctx.Context(), &credentials)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&successResponse{
			Success: true,
			Message: "login successful",
			Data:    loginResult,
		})
}

func (h *handler) Logout(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "logout"))
	logger.InjectContext(ctx.Context(), log)

	rawJwtToken, err := bearerToken(ctx)
	if err != nil {
		return err
	}

	err = h.authService.Logout(ctx.Context(), rawJwtToken)
	if err != nil {
		return err
	}

	ctx.ClearCookie(AccessTokenCookie)

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&successResponse{
			Success: true,
			Message: "logout successful",
		})
}

func (h *handler) Profile(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "getProfile"))
	logger.InjectContext(ctx.Context(), log)

	rawJwtToken, err := bearerToken(ctx)
	if err != nil {
		return err
	}

	userProfile, err := h.authService.ResolveCurrentUser(ctx.Context(), rawJwtToken)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&successResponse{
			Success: true,
			Message: "profile retrieved successfully",
			Data:    fiber.Map{"user": userProfile},
		})
}

func (h *handler) Validate(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "validateToken"))
	logger.InjectContext(ctx.Context(), log)

	rawJwtToken, err := bearerToken(ctx)
	if err != nil {
		return err
	}

	claims, err := h.authService.VerifyToken(ctx.Context(), rawJwtToken)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&successResponse{
			Success: true,
			Message: "token is valid",
			Data: &TokenStatus{
				Valid:     true,
				UserId:    claims.Subject,
				ExpiresAt: claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
				TokenType: claims.TokenType,
			},
		})
}

// bearerToken extracts the session token from the Authorization header or,
// for the cookie transport, from the access token cookie.
func bearerToken(ctx *fiber.Ctx) (string, error) {
	authorizationHeader := ctx.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authorizationHeader, BearerSchema) {
		return strings.TrimSpace(strings.TrimPrefix(authorizationHeader, BearerSchema)), nil
	}

	cookieToken := ctx.Cookies(AccessTokenCookie)
	if cookieToken != "" {
		return cookieToken, nil
	}

	return "", cerror.
		NewError(fiber.StatusUnauthorized, "missing bearer token").
		SetCode(cerror.CodeInvalidToken).
		SetPublicMessage("invalid token").
		SetSeverity(zapcore.WarnLevel)
}
