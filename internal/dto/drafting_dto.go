package dto

// CaseMetadataPayload names the parties and the forum so the draft can open
// with a formal caption.
type CaseMetadataPayload struct {
	Court      string `json:"court"`
	CaseNumber string `json:"case_number"`
	Claimant   string `json:"claimant"`
	Defendant  string `json:"defendant"`
	Subject    string `json:"subject"`
}

type GenerateDraftRequest struct {
	Notes    string               `json:"notes" validate:"required"`
	Metadata *CaseMetadataPayload `json:"metadata"`
}

type GenerateDraftResponse struct {
	DocumentText string `json:"document_text"`
}

type SuggestCitationsRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type CitationSuggestion struct {
	Type        string `json:"type"` // "paragraph" or "judgment"
	Citation    string `json:"citation"`
	Explanation string `json:"explanation"`
}

type SuggestCitationsResponse struct {
	Citations []CitationSuggestion `json:"citations"`
}

// ComposeDraftRequest runs drafting and citation suggestion over the same
// notes snapshot in one call.
type ComposeDraftRequest struct {
	Notes    string               `json:"notes" validate:"required"`
	Metadata *CaseMetadataPayload `json:"metadata"`
}

// ComposeDraftResponse reports each branch independently. A citation failure
// leaves citations empty and sets citation_error without touching the draft.
type ComposeDraftResponse struct {
	DocumentText  string               `json:"document_text"`
	Citations     []CitationSuggestion `json:"citations"`
	CitationError string               `json:"citation_error,omitempty"`
	Revision      int64                `json:"revision"`
}

// PipelineStatusResponse is the read-only snapshot of the orchestrator's
// busy flags.
type PipelineStatusResponse struct {
	Recording          bool `json:"recording"`
	Drafting           bool `json:"drafting"`
	SuggestingCitation bool `json:"suggesting_citations"`
	Busy               bool `json:"busy"`
}
