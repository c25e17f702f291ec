package service

import (
	"context"
	"strings"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/pkg/drafting/command"
	"github.com/besmartbusiness/lawyer-app/pkg/drafting/prompt"
	"github.com/besmartbusiness/lawyer-app/pkg/llm"

	"github.com/google/uuid"
)

type IDraftingService interface {
	Draft(ctx context.Context, ownerId uuid.UUID, notes string, metadata *dto.CaseMetadataPayload) (string, error)
}

type draftingService struct {
	retrieval IRetrievalService
	provider  llm.Provider
	log       logger.ILogger
}

func NewDraftingService(retrieval IRetrievalService, provider llm.Provider, log logger.ILogger) IDraftingService {
	return &draftingService{
		retrieval: retrieval,
		provider:  provider,
		log:       log,
	}
}

// Draft turns freeform notes into a finished document. Command tokens in the
// notes are resolved against the retrieval store first; misses are dropped
// without surfacing to the caller, so the returned text never carries a
// literal error string. Only a failure of the generation backend itself is
// reported.
func (s *draftingService) Draft(ctx context.Context, ownerId uuid.UUID, notes string, metadata *dto.CaseMetadataPayload) (string, error) {
	parsed := command.Parse(notes)

	input := prompt.DraftInput{
		Notes: parsed.CleanNotes,
	}
	if metadata != nil {
		input.Metadata = &prompt.CaseMetadata{
			Court:      metadata.Court,
			CaseNumber: metadata.CaseNumber,
			Claimant:   metadata.Claimant,
			Defendant:  metadata.Defendant,
			Subject:    metadata.Subject,
		}
	}

	// Every template token is resolved; the first hit becomes the structural
	// basis and later hits are redundant for a single document.
	for _, match := range parsed.Templates() {
		result := s.retrieval.Lookup(ctx, ownerId, entity.RetrievalKindTemplate, match.Name)
		if !result.Found {
			s.log.Debug("drafting", "template token dropped", map[string]interface{}{
				"name": match.Name,
			})
			continue
		}
		if input.Template == nil {
			input.Template = &prompt.ResolvedBlock{Name: match.Name, Content: result.Content}
		}
	}

	for _, match := range parsed.TextBlocks() {
		result := s.retrieval.Lookup(ctx, ownerId, entity.RetrievalKindTextBlock, match.Name)
		if !result.Found {
			s.log.Debug("drafting", "text block token dropped", map[string]interface{}{
				"name": match.Name,
			})
			continue
		}
		input.TextBlocks = append(input.TextBlocks, prompt.ResolvedBlock{
			Name:    match.Name,
			Content: result.Content,
		})
	}

	system, user := prompt.BuildDraftPrompt(input)

	text, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.4))
	if err != nil {
		s.log.Error("drafting", "generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", serverutils.NewGenerationError("Der Entwurf konnte nicht erstellt werden. Bitte versuchen Sie es erneut.", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", serverutils.NewGenerationError("Der Entwurf konnte nicht erstellt werden. Bitte versuchen Sie es erneut.", nil)
	}

	return text, nil
}
