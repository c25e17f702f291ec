package service

import (
	"context"
	"encoding/json"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/pkg/drafting/prompt"
	"github.com/besmartbusiness/lawyer-app/pkg/llm"
)

type ICitationService interface {
	Suggest(ctx context.Context, notes string) ([]entity.Citation, error)
}

type citationService struct {
	provider       llm.Provider
	maxSuggestions int
	log            logger.ILogger
}

func NewCitationService(provider llm.Provider, maxSuggestions int, log logger.ILogger) ICitationService {
	if maxSuggestions <= 0 {
		maxSuggestions = 5
	}
	return &citationService{
		provider:       provider,
		maxSuggestions: maxSuggestions,
		log:            log,
	}
}

// Suggest proposes paragraph and judgment citations for the notes. The list
// is advisory; callers must be able to drop it entirely when this fails.
func (s *citationService) Suggest(ctx context.Context, notes string) ([]entity.Citation, error) {
	system, user := prompt.BuildCitationPrompt(notes, "", s.maxSuggestions)

	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.2), llm.WithJSONResponse())
	if err != nil {
		return nil, serverutils.NewGenerationError("Es konnten keine Fundstellen vorgeschlagen werden.", err)
	}

	var citations []entity.Citation
	if err := json.Unmarshal(llm.CleanJSONResponse(raw), &citations); err != nil {
		s.log.Warn("citation", "malformed citation response", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewGenerationError("Es konnten keine Fundstellen vorgeschlagen werden.", err)
	}

	// Entries must keep a known type tag so the client can group them.
	valid := make([]entity.Citation, 0, len(citations))
	for _, c := range citations {
		if c.Kind != entity.CitationKindParagraph && c.Kind != entity.CitationKindJudgment {
			continue
		}
		if c.Reference == "" {
			continue
		}
		valid = append(valid, c)
	}

	if len(valid) > s.maxSuggestions {
		valid = valid[:s.maxSuggestions]
	}

	return valid, nil
}
