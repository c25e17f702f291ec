package controller

import (
	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDraftingController interface {
	RegisterRoutes(r fiber.Router)
	Draft(ctx *fiber.Ctx) error
	SuggestCitations(ctx *fiber.Ctx) error
	Compose(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type draftingController struct {
	draftingService service.IDraftingService
	citationService service.ICitationService
	orchestrator    service.IOrchestratorService
}

func NewDraftingController(
	draftingService service.IDraftingService,
	citationService service.ICitationService,
	orchestrator service.IOrchestratorService,
) IDraftingController {
	return &draftingController{
		draftingService: draftingService,
		citationService: citationService,
		orchestrator:    orchestrator,
	}
}

func (c *draftingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/drafting/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("draft", c.Draft)
	h.Post("citations", c.SuggestCitations)
	h.Post("compose", c.Compose)
	h.Get("status", c.Status)
}

func ownerIdFromCtx(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *draftingController) Draft(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	var req dto.GenerateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	text, err := c.draftingService.Draft(ctx.Context(), ownerId, req.Notes, req.Metadata)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Draft generated", dto.GenerateDraftResponse{
		DocumentText: text,
	}))
}

func (c *draftingController) SuggestCitations(ctx *fiber.Ctx) error {
	var req dto.SuggestCitationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	citations, err := c.citationService.Suggest(ctx.Context(), req.Notes)
	if err != nil {
		return err
	}

	res := dto.SuggestCitationsResponse{Citations: make([]dto.CitationSuggestion, 0, len(citations))}
	for _, cit := range citations {
		res.Citations = append(res.Citations, dto.CitationSuggestion{
			Type:        string(cit.Kind),
			Citation:    cit.Reference,
			Explanation: cit.Explanation,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Citations suggested", res))
}

func (c *draftingController) Compose(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)

	var req dto.ComposeDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orchestrator.Compose(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Draft composed", res))
}

func (c *draftingController) Status(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromCtx(ctx)
	return ctx.JSON(serverutils.SuccessResponse("Pipeline status", c.orchestrator.Status(ownerId)))
}
