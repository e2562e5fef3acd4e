package document

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"generic-api/pkg/cerror"
	"generic-api/pkg/logger"
	"generic-api/pkg/server"
)

type handler struct {
	documentService Service
}

func NewHandler(documentService Service) server.Handler {
	return &handler{
		documentService: documentService,
	}
}

// RegisterRoutes binds the six entity-agnostic endpoint shapes. The routes
// are registered after the fixed ones so that /auth and /health never reach
// the :entity wildcard.
func (h *handler) RegisterRoutes(app *fiber.App) {
	app.Get("/:entity", h.List)
	app.Get("/:entity/filter", h.Filter)
	app.Get("/:entity/id/:documentId", h.GetById)
	app.Post("/:entity", h.Create)
	app.Put("/:entity/:documentId", h.Update)
	app.Delete("/:entity/:documentId", h.Delete)
}

func (h *handler) List(ctx *fiber.Ctx) error {
	entity := ctx.Params("entity")
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "listDocuments"), zap.String("entity", entity))
	logger.InjectContext(ctx.Context(), log)

	documents, err := h.documentService.List(ctx.Context(), entity)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(documents)
}

func (h *handler) GetById(ctx *fiber.Ctx) error {
	entity := ctx.Params("entity")
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "getDocumentById"), zap.String("entity", entity))
	logger.InjectContext(ctx.Context(), log)

	document, err := h.documentService.GetById(ctx.Context(), entity, ctx.Params("documentId"))
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(document)
}

func (h *handler) Create(ctx *fiber.Ctx) error {
	entity := ctx.Params("entity")
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "createDocument"), zap.String("entity", entity))
	logger.InjectContext(ctx.Context(), log)

	var payload map[string]interface{}
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.
			NewError(
				fiber.StatusBadRequest,
				"malformed request body",
				zap.Error(err),
			).
			SetCode(cerror.CodeBadRequest).
			SetSeverity(zapcore.WarnLevel)
	}

	document, err := h.documentService.Create(ctx.Context(), entity, payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusCreated).
		JSON(document)
}

func (h *handler) Update(ctx *fiber.Ctx) error {
	entity := ctx.Params("entity")
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "updateDocument"), zap.String("entity", entity))
	logger.InjectContext(ctx.Context(), log)

	var patch map[string]interface{}
	err := ctx.BodyParser(&patch)
	if err != nil {
		return cerror.
			NewError(
				fiber.StatusBadRequest,
				"malformed request body",
				zap.Error(err),
			).
			SetCode(cerror.CodeBadRequest).
			SetSeverity(zapcore.WarnLevel)
	}

	document, err := h.documentService.Update(ctx.Context(), entity, ctx.Params("documentId"), patch)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(document)
}

func (h *handler) Delete(ctx *fiber.Ctx) error {
	entity := ctx.Params("entity")
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "deleteDocument"), zap.String("entity", entity))
	logger.InjectContext(ctx.Context(), log)

	document, err := h.documentService.Delete(ctx.Context(), entity, ctx.Params("documentId"))
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&deleteResponse{
			Message:         "document deleted successfully",
			DeletedDocument: document,
		})
}

func (h *handler) Filter(ctx *fiber.Ctx) error {
	entity := ctx.Params("entity")
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "filterDocuments"), zap.String("entity", entity))
	logger.InjectContext(ctx.Context(), log)

	documents, err := h.documentService.Filter(ctx.Context(), entity, ctx.Queries())
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(documents)
}
