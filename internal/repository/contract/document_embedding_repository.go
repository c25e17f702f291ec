package contract

import (
	"context"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding pairs an embedding row with its cosine similarity
// against the query vector.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, ownerId uuid.UUID, threshold float64) ([]*ScoredDocumentEmbedding, error)
}
