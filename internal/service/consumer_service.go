package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"
	"github.com/besmartbusiness/lawyer-app/internal/repository/unitofwork"
	"github.com/besmartbusiness/lawyer-app/pkg/embedding"
	"github.com/besmartbusiness/lawyer-app/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage rebuilds the embedding rows of one document. Malformed or
// orphaned messages are acked so they never loop; retriable failures are
// nacked.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		// Deleted between save and consume.
		msg.Ack()
		return
	}

	updatedAt := "-"
	if doc.UpdatedAt != nil {
		updatedAt = doc.UpdatedAt.Format(time.RFC3339)
	}

	content := fmt.Sprintf(`Titel: %s

%s

Notizen:
%s

Erstellt: %s
Geändert: %s`,
		doc.Title,
		doc.Content,
		doc.Notes,
		doc.CreatedAt.Format(time.RFC3339),
		updatedAt,
	)

	// 1500 chars per chunk with 200 overlap keeps each chunk well inside
	// the embedding model's context.
	chunks := utils.SplitText(content, 1500, 200)

	var newEmbeddings []*entity.DocumentEmbedding
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of document %s: %v", i, payload.DocumentId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			Chunk:          chunk,
			EmbeddingValue: res.Embedding.Values,
			DocumentId:     doc.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Document embedded: %d chunks for %s", len(newEmbeddings), payload.DocumentId)
	msg.Ack()
}
