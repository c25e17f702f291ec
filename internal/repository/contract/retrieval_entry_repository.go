package contract

import (
	"context"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"

	"github.com/google/uuid"
)

type RetrievalEntryRepository interface {
	Create(ctx context.Context, entry *entity.RetrievalEntry) error
	Update(ctx context.Context, entry *entity.RetrievalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RetrievalEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
