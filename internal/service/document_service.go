package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/mailer"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"
	"github.com/besmartbusiness/lawyer-app/internal/repository/unitofwork"
	"github.com/besmartbusiness/lawyer-app/pkg/embedding"
	"github.com/besmartbusiness/lawyer-app/pkg/events"
	pkgNats "github.com/besmartbusiness/lawyer-app/pkg/nats"

	"github.com/google/uuid"
)

const semanticSearchThreshold = 0.35

type IDocumentService interface {
	Save(ctx context.Context, ownerId uuid.UUID, req *dto.SaveDocumentRequest) (*dto.SaveDocumentResponse, error)
	Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context, ownerId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
	Send(ctx context.Context, ownerId uuid.UUID, req *dto.SendDocumentRequest) error
	Search(ctx context.Context, ownerId uuid.UUID, query string) ([]*dto.DocumentSearchResponse, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.Provider
	eventPublisher    *pkgNats.Publisher
	emailService      mailer.IEmailService
	log               logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.Provider,
	eventPublisher *pkgNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		emailService:      emailService,
		log:               log,
	}
}

func citationsFromDto(in []dto.CitationSuggestion) []entity.Citation {
	out := make([]entity.Citation, 0, len(in))
	for _, c := range in {
		out = append(out, entity.Citation{
			Kind:        entity.CitationKind(c.Type),
			Reference:   c.Citation,
			Explanation: c.Explanation,
		})
	}
	return out
}

func citationsToDto(in []entity.Citation) []dto.CitationSuggestion {
	out := make([]dto.CitationSuggestion, 0, len(in))
	for _, c := range in {
		out = append(out, dto.CitationSuggestion{
			Type:        string(c.Kind),
			Citation:    c.Reference,
			Explanation: c.Explanation,
		})
	}
	return out
}

// Save creates a new document when no id is supplied and updates the record
// in place when one is. Title and content must both be non-empty before any
// store interaction happens; id and created_at never change once set.
func (s *documentService) Save(ctx context.Context, ownerId uuid.UUID, req *dto.SaveDocumentRequest) (*dto.SaveDocumentResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, serverutils.NewValidationError("Titel und Inhalt dürfen nicht leer sein.")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.Id != nil {
		doc, err := uow.DocumentRepository().FindOne(ctx,
			specification.ByID{ID: *req.Id},
			specification.OwnedBy{OwnerID: ownerId},
		)
		if err != nil {
			return nil, serverutils.NewPersistenceError("Das Dokument konnte nicht gespeichert werden.", err)
		}
		if doc != nil {
			now := time.Now()
			doc.Title = req.Title
			doc.Content = req.Content
			doc.Notes = req.Notes
			doc.Citations = citationsFromDto(req.Citations)
			doc.UpdatedAt = &now

			if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
				return nil, serverutils.NewPersistenceError("Das Dokument konnte nicht gespeichert werden.", err)
			}

			s.afterSave(ctx, doc, false)
			return &dto.SaveDocumentResponse{Id: doc.Id, Created: false, CreatedAt: doc.CreatedAt}, nil
		}
		// Unknown or foreign id: fall through and create a fresh record.
	}

	doc := entity.Document{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Notes:     req.Notes,
		Citations: citationsFromDto(req.Citations),
		OwnerId:   ownerId,
		CreatedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, serverutils.NewPersistenceError("Das Dokument konnte nicht gespeichert werden.", err)
	}

	s.afterSave(ctx, &doc, true)
	return &dto.SaveDocumentResponse{Id: doc.Id, Created: true, CreatedAt: doc.CreatedAt}, nil
}

// afterSave queues the embedding rebuild and announces the write. Both are
// auxiliary; a failure is logged without failing the save.
func (s *documentService) afterSave(ctx context.Context, doc *entity.Document, created bool) {
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.log.Warn("document", "failed to queue embedding job", map[string]interface{}{
				"error":       err.Error(),
				"document_id": doc.Id.String(),
			})
		}
	}

	if s.eventPublisher != nil {
		eventType := "DOCUMENT_UPDATED"
		if created {
			eventType = "DOCUMENT_CREATED"
		}
		evt := events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"document_id": doc.Id,
				"title":       doc.Title,
				"owner_id":    doc.OwnerId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("document", "failed to publish document event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (s *documentService) Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	return toDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, ownerId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, toDocumentResponse(doc))
	}
	return response, nil
}

func (s *documentService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// Send mails a saved document to the given address.
func (s *documentService) Send(ctx context.Context, ownerId uuid.UUID, req *dto.SendDocumentRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return serverutils.NewNotFoundError("Das Dokument wurde nicht gefunden.")
	}

	if err := s.emailService.SendDocument(req.ToEmail, doc.Title, doc.Content); err != nil {
		return serverutils.NewPersistenceError("Das Dokument konnte nicht versendet werden.", err)
	}
	return nil
}

// Search runs a semantic vector search over the owner's archive and falls
// back to a literal title/content match when the query yields no embedding
// hits.
func (s *documentService) Search(ctx context.Context, ownerId uuid.UUID, query string) ([]*dto.DocumentSearchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	embeddingRes, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		s.log.Warn("document", "embedding query failed, falling back to literal search", map[string]interface{}{
			"error": err.Error(),
		})
		return s.literalSearch(ctx, uow, ownerId, query)
	}

	scored, err := uow.DocumentEmbeddingRepository().SearchSimilarWithScore(
		ctx, embeddingRes.Embedding.Values, 10, ownerId, semanticSearchThreshold)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return s.literalSearch(ctx, uow, ownerId, query)
	}

	// Deduplicate chunks of the same document, best score first.
	response := make([]*dto.DocumentSearchResponse, 0)
	seen := make(map[uuid.UUID]bool)
	for _, sr := range scored {
		if seen[sr.Embedding.DocumentId] {
			continue
		}
		seen[sr.Embedding.DocumentId] = true

		doc, err := uow.DocumentRepository().FindOne(ctx,
			specification.ByID{ID: sr.Embedding.DocumentId},
			specification.OwnedBy{OwnerID: ownerId},
		)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}

		score := sr.Similarity
		response = append(response, &dto.DocumentSearchResponse{
			Id:             doc.Id,
			Title:          doc.Title,
			Content:        doc.Content,
			CreatedAt:      doc.CreatedAt,
			UpdatedAt:      doc.UpdatedAt,
			SearchType:     "semantic",
			RelevanceScore: &score,
		})
	}

	return response, nil
}

func (s *documentService) literalSearch(ctx context.Context, uow unitofwork.UnitOfWork, ownerId uuid.UUID, query string) ([]*dto.DocumentSearchResponse, error) {
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.TitleOrContentLike{Query: query},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentSearchResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, &dto.DocumentSearchResponse{
			Id:         doc.Id,
			Title:      doc.Title,
			Content:    doc.Content,
			CreatedAt:  doc.CreatedAt,
			UpdatedAt:  doc.UpdatedAt,
			SearchType: "literal",
		})
	}
	return response, nil
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Content:   doc.Content,
		Notes:     doc.Notes,
		Citations: citationsToDto(doc.Citations),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
