package controller

import (
	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	AnalyzeContract(ctx *fiber.Ctx) error
	CaseStrategy(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("contract", c.AnalyzeContract)
	h.Post("strategy", c.CaseStrategy)
	h.Post("summary", c.Summarize)
}

func (c *analysisController) AnalyzeContract(ctx *fiber.Ctx) error {
	var req dto.AnalyzeContractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	clauses, err := c.analysisService.AnalyzeContract(ctx.Context(), req.ContractText)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Contract analyzed", dto.AnalyzeContractResponse{
		AnalyzedClauses: clauses,
	}))
}

func (c *analysisController) CaseStrategy(ctx *fiber.Ctx) error {
	var req dto.CaseStrategyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	strategy, err := c.analysisService.CaseStrategy(ctx.Context(), req.CaseSummary, req.Documents)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Case strategy generated", dto.CaseStrategyResponse{
		Timeline:         strategy.Timeline,
		DisputedPoints:   strategy.DisputedPoints,
		EvidenceAnalysis: strategy.EvidenceAnalysis,
		ArgumentOutline:  strategy.ArgumentOutline,
	}))
}

func (c *analysisController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	summary, err := c.analysisService.Summarize(ctx.Context(), req.Text, req.Audience)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Text summarized", dto.SummarizeResponse{
		Summary: summary,
	}))
}
