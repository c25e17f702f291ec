package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRetrievalEntryRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=template text_block"`
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CreateRetrievalEntryResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateRetrievalEntryRequest struct {
	Id      uuid.UUID
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type RetrievalEntryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Name      string     `json:"name"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// LookupResponse mirrors the tagged result of a lookup: a miss is a valid
// outcome, not an error, so found=false travels with a readable message.
type LookupResponse struct {
	Found   bool   `json:"found"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}
