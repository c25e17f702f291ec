package entity

// ClauseRisk grades how disadvantageous a contract clause is for the client.
type ClauseRisk string

const (
	ClauseRiskLow    ClauseRisk = "low"
	ClauseRiskMedium ClauseRisk = "medium"
	ClauseRiskHigh   ClauseRisk = "high"
)

// AnalyzedClause is one flagged clause from a contract review, together with
// the counter-proposal the client can negotiate with.
type AnalyzedClause struct {
	ClauseText       string     `json:"clause_text"`
	RiskLevel        ClauseRisk `json:"risk_level"`
	RiskExplanation  string     `json:"risk_explanation"`
	Alternative      string     `json:"alternative_formulation"`
	MarketComparison string     `json:"market_comparison"`
}

// EvidenceStatus marks whether a piece of evidence is already on file.
type EvidenceStatus string

const (
	EvidenceAvailable EvidenceStatus = "available"
	EvidenceMissing   EvidenceStatus = "missing"
)

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

type DisputedPoint struct {
	Point       string `json:"point"`
	Explanation string `json:"explanation"`
}

// EvidenceItem carries a procurement suggestion only when the evidence is
// still missing.
type EvidenceItem struct {
	Evidence   string         `json:"evidence"`
	Status     EvidenceStatus `json:"status"`
	Suggestion string         `json:"suggestion,omitempty"`
}

type ArgumentSection struct {
	Section   string   `json:"section"`
	Arguments []string `json:"arguments"`
}

// CaseStrategy is the four-part strategic analysis produced over the case
// documents and the lawyer's summary.
type CaseStrategy struct {
	Timeline         []TimelineEvent   `json:"timeline"`
	DisputedPoints   []DisputedPoint   `json:"disputed_points"`
	EvidenceAnalysis []EvidenceItem    `json:"evidence_analysis"`
	ArgumentOutline  []ArgumentSection `json:"argument_outline"`
}
