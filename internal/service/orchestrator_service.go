package service

import (
	"context"
	"sync"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/repository/memory"

	"github.com/google/uuid"
)

// IDraftingNotifier pushes pipeline results to connected clients as each
// branch resolves, so the draft can show before the citations arrive.
type IDraftingNotifier interface {
	NotifyDraftReady(ownerId uuid.UUID, revision int64, documentText string)
	NotifyDraftFailed(ownerId uuid.UUID, revision int64, message string)
	NotifyCitationsReady(ownerId uuid.UUID, revision int64, citations []dto.CitationSuggestion)
}

type IOrchestratorService interface {
	Compose(ctx context.Context, ownerId uuid.UUID, req *dto.ComposeDraftRequest) (*dto.ComposeDraftResponse, error)
	FinishDictation(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, notes string, metadata *dto.CaseMetadataPayload) (*dto.StopRecordingResponse, *dto.ComposeDraftResponse, error)
	Status(ownerId uuid.UUID) *dto.PipelineStatusResponse
}

type pipelineFlags struct {
	drafting   bool
	suggesting bool
}

type orchestratorService struct {
	drafting  IDraftingService
	citations ICitationService
	dictation IDictationService
	sessions  *memory.RecordingRepository
	notifier  IDraftingNotifier
	log       logger.ILogger

	// Draft after dictation is a policy of this coordinator, not of the
	// capture state machine.
	draftAfterDictation bool

	mu        sync.RWMutex
	flags     map[uuid.UUID]*pipelineFlags
	revisions map[uuid.UUID]int64
}

func NewOrchestratorService(
	drafting IDraftingService,
	citations ICitationService,
	dictation IDictationService,
	sessions *memory.RecordingRepository,
	notifier IDraftingNotifier,
	draftAfterDictation bool,
	log logger.ILogger,
) IOrchestratorService {
	return &orchestratorService{
		drafting:            drafting,
		citations:           citations,
		dictation:           dictation,
		sessions:            sessions,
		notifier:            notifier,
		draftAfterDictation: draftAfterDictation,
		log:                 log,
		flags:               make(map[uuid.UUID]*pipelineFlags),
		revisions:           make(map[uuid.UUID]int64),
	}
}

func (s *orchestratorService) setFlags(ownerId uuid.UUID, mutate func(*pipelineFlags)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flags[ownerId]
	if !ok {
		f = &pipelineFlags{}
		s.flags[ownerId] = f
	}
	mutate(f)
}

func (s *orchestratorService) nextRevision(ownerId uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revisions[ownerId]++
	return s.revisions[ownerId]
}

type draftOutcome struct {
	text string
	err  error
}

type citationOutcome struct {
	citations []entity.Citation
	err       error
}

// Compose runs drafting and citation suggestion concurrently over the same
// notes snapshot and joins them independently. The draft branch is decisive:
// if it fails the whole attempt is reported failed and no partial text is
// exposed. The citation branch is advisory and soft-fails into an empty list.
//
// Each result carries the revision it was computed for. A client holding a
// newer revision simply discards the stale push instead of overwriting
// fresher edits.
func (s *orchestratorService) Compose(ctx context.Context, ownerId uuid.UUID, req *dto.ComposeDraftRequest) (*dto.ComposeDraftResponse, error) {
	revision := s.nextRevision(ownerId)
	s.setFlags(ownerId, func(f *pipelineFlags) {
		f.drafting = true
		f.suggesting = true
	})

	draftCh := make(chan draftOutcome, 1)
	citeCh := make(chan citationOutcome, 1)

	go func() {
		text, err := s.drafting.Draft(ctx, ownerId, req.Notes, req.Metadata)
		draftCh <- draftOutcome{text: text, err: err}
	}()

	go func() {
		citations, err := s.citations.Suggest(ctx, req.Notes)
		citeCh <- citationOutcome{citations: citations, err: err}
	}()

	// Join the draft branch first and publish it immediately; the citation
	// branch keeps running and is joined on its own.
	draft := <-draftCh
	s.setFlags(ownerId, func(f *pipelineFlags) { f.drafting = false })

	if draft.err != nil {
		if s.notifier != nil {
			s.notifier.NotifyDraftFailed(ownerId, revision, draft.err.Error())
		}
		// Drain the citation branch so the flag always clears.
		cite := <-citeCh
		s.setFlags(ownerId, func(f *pipelineFlags) { f.suggesting = false })
		if cite.err != nil {
			s.log.Warn("orchestrator", "citation branch also failed", map[string]interface{}{
				"error": cite.err.Error(),
			})
		}
		return nil, draft.err
	}

	if s.notifier != nil {
		s.notifier.NotifyDraftReady(ownerId, revision, draft.text)
	}

	response := &dto.ComposeDraftResponse{
		DocumentText: draft.text,
		Citations:    make([]dto.CitationSuggestion, 0),
		Revision:     revision,
	}

	cite := <-citeCh
	s.setFlags(ownerId, func(f *pipelineFlags) { f.suggesting = false })

	if cite.err != nil {
		s.log.Warn("orchestrator", "citation suggestion failed, draft delivered without citations", map[string]interface{}{
			"error": cite.err.Error(),
		})
		response.CitationError = "Es konnten keine Fundstellen vorgeschlagen werden."
		return response, nil
	}

	for _, c := range cite.citations {
		response.Citations = append(response.Citations, dto.CitationSuggestion{
			Type:        string(c.Kind),
			Citation:    c.Reference,
			Explanation: c.Explanation,
		})
	}
	if s.notifier != nil {
		s.notifier.NotifyCitationsReady(ownerId, revision, response.Citations)
	}

	return response, nil
}

// FinishDictation stops the capture pipeline and, when the policy says so,
// chains straight into a compose over the transcript-augmented notes.
func (s *orchestratorService) FinishDictation(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, notes string, metadata *dto.CaseMetadataPayload) (*dto.StopRecordingResponse, *dto.ComposeDraftResponse, error) {
	stop, err := s.dictation.Stop(ctx, ownerId, sessionId, notes)
	if err != nil {
		return nil, nil, err
	}

	if !s.draftAfterDictation {
		return stop, nil, nil
	}

	draft, err := s.Compose(ctx, ownerId, &dto.ComposeDraftRequest{
		Notes:    stop.Notes,
		Metadata: metadata,
	})
	if err != nil {
		// The transcript survived; only the chained draft failed.
		return stop, nil, err
	}
	return stop, draft, nil
}

// Status is the read-only busy snapshot. Overall busy is the OR of the
// sub-task flags so the client can disable input consistently.
func (s *orchestratorService) Status(ownerId uuid.UUID) *dto.PipelineStatusResponse {
	_, recording := s.sessions.ActiveForOwner(ownerId)

	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flags[ownerId]
	if !ok {
		f = &pipelineFlags{}
	}

	return &dto.PipelineStatusResponse{
		Recording:          recording,
		Drafting:           f.drafting,
		SuggestingCitation: f.suggesting,
		Busy:               recording || f.drafting || f.suggesting,
	}
}
