package service

import (
	"context"
	"sort"
	"strings"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/repository/contract"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"
	"github.com/besmartbusiness/lawyer-app/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// specFilter interprets the specifications the services actually use, so the
// in-memory fakes behave like the real repositories.
type specFilter struct {
	id      *uuid.UUID
	ownerId *uuid.UUID
	kind    string
	name    *string
	query   string
}

func parseSpecs(specs []specification.Specification) specFilter {
	var f specFilter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			f.id = &id
		case specification.OwnedBy:
			owner := v.OwnerID
			f.ownerId = &owner
		case specification.ByKind:
			f.kind = v.Kind
		case specification.ByName:
			name := v.Name
			f.name = &name
		case specification.TitleOrContentLike:
			f.query = v.Query
		}
	}
	return f
}

// --- retrieval entries ---

type fakeRetrievalEntryRepo struct {
	entries []*entity.RetrievalEntry
}

func (r *fakeRetrievalEntryRepo) matches(e *entity.RetrievalEntry, f specFilter) bool {
	if f.id != nil && e.Id != *f.id {
		return false
	}
	if f.ownerId != nil && e.OwnerId != *f.ownerId {
		return false
	}
	if f.kind != "" && string(e.Kind) != f.kind {
		return false
	}
	if f.name != nil && e.Name != *f.name {
		return false
	}
	return true
}

func (r *fakeRetrievalEntryRepo) Create(ctx context.Context, entry *entity.RetrievalEntry) error {
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeRetrievalEntryRepo) Update(ctx context.Context, entry *entity.RetrievalEntry) error {
	for i, e := range r.entries {
		if e.Id == entry.Id {
			copied := *entry
			r.entries[i] = &copied
		}
	}
	return nil
}

func (r *fakeRetrievalEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeRetrievalEntryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RetrievalEntry, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *fakeRetrievalEntryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalEntry, error) {
	f := parseSpecs(specs)
	var out []*entity.RetrievalEntry
	for _, e := range r.entries {
		if r.matches(e, f) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeRetrievalEntryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- documents ---

type fakeDocumentRepo struct {
	documents []*entity.Document
}

func (r *fakeDocumentRepo) matches(d *entity.Document, f specFilter) bool {
	if f.id != nil && d.Id != *f.id {
		return false
	}
	if f.ownerId != nil && d.OwnerId != *f.ownerId {
		return false
	}
	if f.query != "" {
		q := strings.ToLower(f.query)
		if !strings.Contains(strings.ToLower(d.Title), q) && !strings.Contains(strings.ToLower(d.Content), q) {
			return false
		}
	}
	return true
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	copied := *document
	r.documents = append(r.documents, &copied)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error {
	for i, d := range r.documents {
		if d.Id == document.Id {
			copied := *document
			r.documents[i] = &copied
		}
	}
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.documents[:0]
	for _, d := range r.documents {
		if d.Id != id {
			kept = append(kept, d)
		}
	}
	r.documents = kept
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	f := parseSpecs(specs)
	var out []*entity.Document
	for _, d := range r.documents {
		if r.matches(d, f) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- document embeddings ---

type fakeDocumentEmbeddingRepo struct {
	embeddings []*entity.DocumentEmbedding
	scored     []*contract.ScoredDocumentEmbedding
}

func (r *fakeDocumentEmbeddingRepo) Create(ctx context.Context, embedding *entity.DocumentEmbedding) error {
	r.embeddings = append(r.embeddings, embedding)
	return nil
}

func (r *fakeDocumentEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	r.embeddings = append(r.embeddings, embeddings...)
	return nil
}

func (r *fakeDocumentEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	kept := r.embeddings[:0]
	for _, e := range r.embeddings {
		if e.DocumentId != documentId {
			kept = append(kept, e)
		}
	}
	r.embeddings = kept
	return nil
}

func (r *fakeDocumentEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	return r.embeddings, nil
}

func (r *fakeDocumentEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, ownerId uuid.UUID, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	return r.scored, nil
}

// --- unit of work ---

type fakeUnitOfWork struct {
	retrievalRepo *fakeRetrievalEntryRepo
	documentRepo  *fakeDocumentRepo
	embeddingRepo *fakeDocumentEmbeddingRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) RetrievalEntryRepository() contract.RetrievalEntryRepository {
	return u.retrievalRepo
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.documentRepo
}

func (u *fakeUnitOfWork) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return u.embeddingRepo
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUnitOfWork{
			retrievalRepo: &fakeRetrievalEntryRepo{},
			documentRepo:  &fakeDocumentRepo{},
			embeddingRepo: &fakeDocumentEmbeddingRepo{},
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
