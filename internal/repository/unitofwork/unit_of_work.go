package unitofwork

import (
	"context"

	"github.com/besmartbusiness/lawyer-app/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RetrievalEntryRepository() contract.RetrievalEntryRepository
	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
}
