package entity

// CitationKind tags a suggestion as a statute paragraph or a court judgment.
// The tag survives end-to-end so the UI can group the two lists.
type CitationKind string

const (
	CitationKindParagraph CitationKind = "paragraph"
	CitationKindJudgment  CitationKind = "judgment"
)

// Citation is one advisory suggestion produced alongside a draft. It is
// never required for the draft to complete.
type Citation struct {
	Kind        CitationKind `json:"type"`
	Reference   string       `json:"citation"`
	Explanation string       `json:"explanation"`
}
