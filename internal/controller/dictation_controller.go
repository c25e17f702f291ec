package controller

import (
	"encoding/base64"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDictationController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	AppendChunk(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type dictationController struct {
	dictationService service.IDictationService
	orchestrator     service.IOrchestratorService
}

func NewDictationController(
	dictationService service.IDictationService,
	orchestrator service.IOrchestratorService,
) IDictationController {
	return &dictationController{
		dictationService: dictationService,
		orchestrator:     orchestrator,
	}
}

func (c *dictationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dictation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("start", c.Start)
	h.Post(":id/chunks", c.AppendChunk)
	h.Post(":id/stop", c.Stop)
	h.Get(":id", c.Status)
}

func (c *dictationController) Start(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	var req dto.StartRecordingRequest
	// The body is optional; an empty one means default mime type.
	_ = ctx.BodyParser(&req)

	res, err := c.dictationService.Start(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Recording started", res))
}

func (c *dictationController) AppendChunk(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Sitzungs-ID.")
	}

	var req dto.AppendChunkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	data, err := base64.StdEncoding.DecodeString(req.Chunk)
	if err != nil {
		return serverutils.NewValidationError("Der Audio-Chunk ist nicht gültig base64-kodiert.")
	}

	if err := c.dictationService.AppendChunk(ctx.Context(), ownerId, sessionId, data); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chunk appended", nil))
}

func (c *dictationController) Stop(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Sitzungs-ID.")
	}

	var req dto.StopRecordingRequest
	_ = ctx.BodyParser(&req)

	// The orchestrator decides whether a draft is chained onto the stop.
	stop, draft, err := c.orchestrator.FinishDictation(ctx.Context(), ownerId, sessionId, req.Notes, nil)
	if err != nil {
		return err
	}

	payload := fiber.Map{"recording": stop}
	if draft != nil {
		payload["draft"] = draft
	}
	return ctx.JSON(serverutils.SuccessResponse("Recording stopped", payload))
}

func (c *dictationController) Status(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Sitzungs-ID.")
	}

	res, err := c.dictationService.Status(ctx.Context(), ownerId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session status", res))
}
