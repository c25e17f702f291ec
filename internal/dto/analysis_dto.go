package dto

import "github.com/besmartbusiness/lawyer-app/internal/entity"

// AnalyzeContractRequest carries the contract draft to review as plain text.
// Clients extract the text before the call; the backend never parses PDFs.
type AnalyzeContractRequest struct {
	ContractText string `json:"contract_text" validate:"required"`
}

type AnalyzeContractResponse struct {
	AnalyzedClauses []entity.AnalyzedClause `json:"analyzed_clauses"`
}

// CaseStrategyRequest bundles the lawyer's summary with the case documents
// the strategy is derived from. At least one document is required.
type CaseStrategyRequest struct {
	CaseSummary string   `json:"case_summary" validate:"required"`
	Documents   []string `json:"documents" validate:"required,min=1,dive,required"`
}

// SummarizeRequest condenses a legal text. Audience "lawyer" keeps the legal
// register, "client" produces a plain-language explanation. Empty defaults
// to "lawyer".
type SummarizeRequest struct {
	Text     string `json:"text" validate:"required"`
	Audience string `json:"audience" validate:"omitempty,oneof=lawyer client"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type CaseStrategyResponse struct {
	Timeline         []entity.TimelineEvent   `json:"timeline"`
	DisputedPoints   []entity.DisputedPoint   `json:"disputed_points"`
	EvidenceAnalysis []entity.EvidenceItem    `json:"evidence_analysis"`
	ArgumentOutline  []entity.ArgumentSection `json:"argument_outline"`
}
