package service

import (
	"context"
	"fmt"
	"time"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"
	"github.com/besmartbusiness/lawyer-app/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// LookupResult is the tagged outcome of a retrieval lookup. A miss and a
// storage error both come back as Found=false with a readable message; the
// drafting side treats either as "no content available" and carries on.
type LookupResult struct {
	Found   bool
	Content string
	Message string
}

type IRetrievalService interface {
	Lookup(ctx context.Context, ownerId uuid.UUID, kind entity.RetrievalEntryKind, name string) *LookupResult

	Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateRetrievalEntryRequest) (*dto.CreateRetrievalEntryResponse, error)
	Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateRetrievalEntryRequest) (*dto.RetrievalEntryResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, ownerId uuid.UUID, kind string) ([]*dto.RetrievalEntryResponse, error)
}

type retrievalService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewRetrievalService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IRetrievalService {
	return &retrievalService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func missMessage(kind entity.RetrievalEntryKind, name string) string {
	if kind == entity.RetrievalKindTemplate {
		return fmt.Sprintf("Vorlage '%s' wurde nicht gefunden.", name)
	}
	return fmt.Sprintf("Textbaustein '%s' wurde nicht gefunden.", name)
}

// Lookup resolves (ownerId, kind, name) to content. It never returns an
// error: the caller cannot do anything useful with one, and a failed lookup
// must not fail the draft. Duplicate names resolve to the oldest entry so
// repeated lookups stay deterministic.
func (s *retrievalService) Lookup(ctx context.Context, ownerId uuid.UUID, kind entity.RetrievalEntryKind, name string) *LookupResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.RetrievalEntryRepository().FindOne(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.ByKind{Kind: string(kind)},
		specification.ByName{Name: name},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		s.log.Error("retrieval", "lookup failed", map[string]interface{}{
			"error": err.Error(),
			"kind":  string(kind),
			"name":  name,
		})
		return &LookupResult{Found: false, Message: missMessage(kind, name)}
	}
	if entry == nil {
		return &LookupResult{Found: false, Message: missMessage(kind, name)}
	}

	return &LookupResult{Found: true, Content: entry.Content}
}

func (s *retrievalService) Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateRetrievalEntryRequest) (*dto.CreateRetrievalEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry := entity.RetrievalEntry{
		Id:        uuid.New(),
		OwnerId:   ownerId,
		Kind:      entity.RetrievalEntryKind(req.Kind),
		Name:      req.Name,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := uow.RetrievalEntryRepository().Create(ctx, &entry); err != nil {
		return nil, err
	}

	return &dto.CreateRetrievalEntryResponse{Id: entry.Id}, nil
}

func (s *retrievalService) Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateRetrievalEntryRequest) (*dto.RetrievalEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.RetrievalEntryRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	now := time.Now()
	entry.Name = req.Name
	entry.Content = req.Content
	entry.UpdatedAt = &now

	if err := uow.RetrievalEntryRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	return toRetrievalEntryResponse(entry), nil
}

func (s *retrievalService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.RetrievalEntryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	return uow.RetrievalEntryRepository().Delete(ctx, id)
}

func (s *retrievalService) List(ctx context.Context, ownerId uuid.UUID, kind string) ([]*dto.RetrievalEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "name"},
	}
	if kind != "" {
		specs = append(specs, specification.ByKind{Kind: kind})
	}

	entries, err := uow.RetrievalEntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.RetrievalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toRetrievalEntryResponse(entry))
	}
	return response, nil
}

func toRetrievalEntryResponse(entry *entity.RetrievalEntry) *dto.RetrievalEntryResponse {
	return &dto.RetrievalEntryResponse{
		Id:        entry.Id,
		Kind:      string(entry.Kind),
		Name:      entry.Name,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
