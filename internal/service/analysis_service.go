package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/pkg/drafting/prompt"
	"github.com/besmartbusiness/lawyer-app/pkg/llm"
)

// Summary audiences. Lawyer summaries keep the legal register; client
// summaries translate the text into plain language.
const (
	SummaryAudienceLawyer = "lawyer"
	SummaryAudienceClient = "client"
)

type IAnalysisService interface {
	AnalyzeContract(ctx context.Context, contractText string) ([]entity.AnalyzedClause, error)
	CaseStrategy(ctx context.Context, caseSummary string, documents []string) (*entity.CaseStrategy, error)
	Summarize(ctx context.Context, text string, audience string) (string, error)
}

type analysisService struct {
	provider llm.Provider
	log      logger.ILogger
}

func NewAnalysisService(provider llm.Provider, log logger.ILogger) IAnalysisService {
	return &analysisService{
		provider: provider,
		log:      log,
	}
}

// AnalyzeContract reviews a contract draft clause by clause and returns the
// flagged clauses with counter-proposals. An empty result means the model
// found nothing worth renegotiating, not a failure.
func (s *analysisService) AnalyzeContract(ctx context.Context, contractText string) ([]entity.AnalyzedClause, error) {
	if strings.TrimSpace(contractText) == "" {
		return nil, serverutils.NewValidationError("Der Vertragstext darf nicht leer sein.")
	}

	system, user := prompt.BuildContractAnalysisPrompt(contractText)
	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.2), llm.WithJSONResponse())
	if err != nil {
		return nil, serverutils.NewGenerationError("Der Vertrag konnte nicht analysiert werden.", err)
	}

	var clauses []entity.AnalyzedClause
	if err := json.Unmarshal(llm.CleanJSONResponse(raw), &clauses); err != nil {
		s.log.Warn("analysis", "malformed contract analysis response", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewGenerationError("Der Vertrag konnte nicht analysiert werden.", err)
	}

	// Entries need a clause and a known risk grade to be actionable.
	valid := make([]entity.AnalyzedClause, 0, len(clauses))
	for _, clause := range clauses {
		switch clause.RiskLevel {
		case entity.ClauseRiskLow, entity.ClauseRiskMedium, entity.ClauseRiskHigh:
		default:
			continue
		}
		if strings.TrimSpace(clause.ClauseText) == "" {
			continue
		}
		valid = append(valid, clause)
	}

	s.log.Info("analysis", "contract analyzed", map[string]interface{}{
		"clauses": len(valid),
	})
	return valid, nil
}

// CaseStrategy builds the four-part strategic analysis of a case from the
// lawyer's summary and the supporting documents.
func (s *analysisService) CaseStrategy(ctx context.Context, caseSummary string, documents []string) (*entity.CaseStrategy, error) {
	if len(documents) == 0 {
		return nil, serverutils.NewValidationError("Für die Analyse wird mindestens ein Dokument benötigt.")
	}

	system, user := prompt.BuildCaseStrategyPrompt(caseSummary, documents)
	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.3), llm.WithJSONResponse())
	if err != nil {
		return nil, serverutils.NewGenerationError("Die Fallstrategie konnte nicht erstellt werden.", err)
	}

	var strategy entity.CaseStrategy
	if err := json.Unmarshal(llm.CleanJSONResponse(raw), &strategy); err != nil {
		s.log.Warn("analysis", "malformed case strategy response", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewGenerationError("Die Fallstrategie konnte nicht erstellt werden.", err)
	}

	// Evidence without a known status defaults to available; a stray value
	// from the model must not leak an unknown state to the client.
	for i := range strategy.EvidenceAnalysis {
		item := &strategy.EvidenceAnalysis[i]
		if item.Status != entity.EvidenceAvailable && item.Status != entity.EvidenceMissing {
			item.Status = entity.EvidenceAvailable
		}
		if item.Status == entity.EvidenceAvailable {
			item.Suggestion = ""
		}
	}

	s.log.Info("analysis", "case strategy generated", map[string]interface{}{
		"documents":       len(documents),
		"timeline_events": len(strategy.Timeline),
		"disputed_points": len(strategy.DisputedPoints),
	})
	return &strategy, nil
}

// Summarize condenses a legal text for the given audience. An empty audience
// defaults to the lawyer digest.
func (s *analysisService) Summarize(ctx context.Context, text string, audience string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", serverutils.NewValidationError("Der zusammenzufassende Text darf nicht leer sein.")
	}

	switch audience {
	case "", SummaryAudienceLawyer, SummaryAudienceClient:
	default:
		return "", serverutils.NewValidationError("Unbekannte Zielgruppe für die Zusammenfassung.")
	}

	system, user := prompt.BuildSummaryPrompt(text, audience == SummaryAudienceClient)
	summary, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return "", serverutils.NewGenerationError("Die Zusammenfassung konnte nicht erstellt werden.", err)
	}

	return strings.TrimSpace(summary), nil
}
