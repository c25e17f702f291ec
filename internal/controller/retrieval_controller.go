package controller

import (
	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRetrievalController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	LookupTemplate(ctx *fiber.Ctx) error
	LookupTextBlock(ctx *fiber.Ctx) error
}

type retrievalController struct {
	retrievalService service.IRetrievalService
}

func NewRetrievalController(retrievalService service.IRetrievalService) IRetrievalController {
	return &retrievalController{
		retrievalService: retrievalService,
	}
}

func (c *retrievalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/retrieval/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("templates/:name", c.LookupTemplate)
	h.Get("textblocks/:name", c.LookupTextBlock)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *retrievalController) Create(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	var req dto.CreateRetrievalEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.retrievalService.Create(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Entry created", res))
}

func (c *retrievalController) Update(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Eintrags-ID.")
	}

	var req dto.UpdateRetrievalEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.retrievalService.Update(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewNotFoundError("Der Eintrag wurde nicht gefunden.")
	}

	return ctx.JSON(serverutils.SuccessResponse("Entry updated", res))
}

func (c *retrievalController) Delete(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Eintrags-ID.")
	}

	if err := c.retrievalService.Delete(ctx.Context(), ownerId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Entry deleted", nil))
}

func (c *retrievalController) List(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	res, err := c.retrievalService.List(ctx.Context(), ownerId, ctx.Query("kind"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Entries", res))
}

func (c *retrievalController) lookup(ctx *fiber.Ctx, kind entity.RetrievalEntryKind) error {
	ownerId := ownerIdFromCtx(ctx)
	name := ctx.Params("name")

	result := c.retrievalService.Lookup(ctx.Context(), ownerId, kind, name)

	// A miss is a regular 200 with found=false; the pipeline treats it as
	// "no content available", not as a failure.
	return ctx.JSON(serverutils.SuccessResponse("Lookup result", dto.LookupResponse{
		Found:   result.Found,
		Content: result.Content,
		Message: result.Message,
	}))
}

func (c *retrievalController) LookupTemplate(ctx *fiber.Ctx) error {
	return c.lookup(ctx, entity.RetrievalKindTemplate)
}

func (c *retrievalController) LookupTextBlock(ctx *fiber.Ctx) error {
	return c.lookup(ctx, entity.RetrievalKindTextBlock)
}
