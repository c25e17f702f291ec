package dto

import "github.com/google/uuid"

// PublishEmbedDocumentMessage is the async job payload asking the consumer
// to (re)build the embedding rows of one document.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
