package dto

import (
	"time"

	"github.com/google/uuid"
)

// SaveDocumentRequest creates a new document when Id is absent, otherwise
// updates the existing record in place.
type SaveDocumentRequest struct {
	Id        *uuid.UUID           `json:"id"`
	Title     string               `json:"title" validate:"required"`
	Content   string               `json:"content" validate:"required"`
	Notes     string               `json:"notes"`
	Citations []CitationSuggestion `json:"citations"`
}

type SaveDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Created   bool      `json:"created"` // false when an existing record was updated
	CreatedAt time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id        uuid.UUID            `json:"id"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Notes     string               `json:"notes"`
	Citations []CitationSuggestion `json:"citations"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt *time.Time           `json:"updated_at"`
}

type SendDocumentRequest struct {
	Id      uuid.UUID
	ToEmail string `json:"to_email" validate:"required,email"`
}

type DocumentSearchResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	SearchType     string     `json:"search_type,omitempty"`     // "literal" | "semantic"
	RelevanceScore *float64   `json:"relevance_score,omitempty"` // only for semantic hits
}
