package cerror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"generic-api/pkg/logger"
)

// Middleware is the fiber error handler: it logs every CustomError at its
// configured severity and renders the caller-safe projection of it.
func Middleware(ctx *fiber.Ctx, err error) error {
	var cerr *CustomError
	if !errors.As(err, &cerr) {
		var fiberError *fiber.Error
		if errors.As(err, &fiberError) {
			cerr = NewError(fiberError.Code, fiberError.Message)
		} else {
			cerr = NewError(
				fiber.StatusInternalServerError,
				"unexpected error",
				zap.Error(err),
			).SetCode(CodeInternalError)
		}
	}

	log := logger.FromContext(ctx.Context()).Desugar()
	for _, logField := range cerr.LogFields {
		log = log.With(logField)
	}
	log.Log(cerr.LogSeverity, cerr.LogMessage)

	return ctx.
		Status(cerr.HttpStatusCode).
		JSON(&errorResponse{
			Success: false,
			Message: cerr.publicMessageOrDefault(),
			Code:    cerr.Code,
		})
}
