package controller

import (
	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("semantic-search", c.Search)
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/send", c.Send)
}

func (c *documentController) Save(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	var req dto.SaveDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Save(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document saved", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Dokument-ID.")
	}

	res, err := c.documentService.Show(ctx.Context(), ownerId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewNotFoundError("Das Dokument wurde nicht gefunden.")
	}

	return ctx.JSON(serverutils.SuccessResponse("Document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	res, err := c.documentService.List(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Dokument-ID.")
	}

	if err := c.documentService.Delete(ctx.Context(), ownerId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Document deleted", nil))
}

func (c *documentController) Send(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("Ungültige Dokument-ID.")
	}

	var req dto.SendDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.documentService.Send(ctx.Context(), ownerId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Document sent", nil))
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	query := ctx.Query("q")
	if query == "" {
		return serverutils.NewValidationError("Der Suchbegriff darf nicht leer sein.")
	}

	res, err := c.documentService.Search(ctx.Context(), ownerId, query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
