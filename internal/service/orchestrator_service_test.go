package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDrafting struct {
	text string
	err  error
}

func (s stubDrafting) Draft(ctx context.Context, ownerId uuid.UUID, notes string, metadata *dto.CaseMetadataPayload) (string, error) {
	return s.text, s.err
}

type stubCitations struct {
	citations []entity.Citation
	err       error
}

func (s stubCitations) Suggest(ctx context.Context, notes string) ([]entity.Citation, error) {
	return s.citations, s.err
}

type stubDictation struct {
	stop    *dto.StopRecordingResponse
	stopErr error
}

func (s stubDictation) Start(ctx context.Context, ownerId uuid.UUID, req *dto.StartRecordingRequest) (*dto.StartRecordingResponse, error) {
	return nil, nil
}

func (s stubDictation) AppendChunk(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, data []byte) error {
	return nil
}

func (s stubDictation) Stop(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, notes string) (*dto.StopRecordingResponse, error) {
	return s.stop, s.stopErr
}

func (s stubDictation) Status(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID) (*dto.SessionSnapshotResponse, error) {
	return nil, nil
}

// recordingNotifier captures pushed events for assertions.
type recordingNotifier struct {
	mu            sync.Mutex
	draftReady    []int64
	draftFailed   []int64
	citationsSeen []int64
}

func (n *recordingNotifier) NotifyDraftReady(ownerId uuid.UUID, revision int64, documentText string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.draftReady = append(n.draftReady, revision)
}

func (n *recordingNotifier) NotifyDraftFailed(ownerId uuid.UUID, revision int64, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.draftFailed = append(n.draftFailed, revision)
}

func (n *recordingNotifier) NotifyCitationsReady(ownerId uuid.UUID, revision int64, citations []dto.CitationSuggestion) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.citationsSeen = append(n.citationsSeen, revision)
}

func newOrchestratorForTest(drafting IDraftingService, citations ICitationService, dictation IDictationService, notifier IDraftingNotifier, draftAfter bool) IOrchestratorService {
	return NewOrchestratorService(drafting, citations, dictation, memory.NewRecordingRepository(), notifier, draftAfter, nopLogger{})
}

func TestCompose_CitationFailureDoesNotBlockDraft(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newOrchestratorForTest(
		stubDrafting{text: "Fertiger Schriftsatz."},
		stubCitations{err: errors.New("citation backend down")},
		stubDictation{},
		notifier,
		false,
	)
	ownerId := uuid.New()

	resp, err := svc.Compose(context.Background(), ownerId, &dto.ComposeDraftRequest{Notes: "Notizen"})
	require.NoError(t, err)

	assert.Equal(t, "Fertiger Schriftsatz.", resp.DocumentText)
	assert.Empty(t, resp.Citations)
	assert.NotEmpty(t, resp.CitationError)
	assert.Len(t, notifier.draftReady, 1)
	assert.Empty(t, notifier.citationsSeen)

	status := svc.Status(ownerId)
	assert.False(t, status.Busy)
}

func TestCompose_DraftFailureIsDecisive(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newOrchestratorForTest(
		stubDrafting{err: errors.New("generation failed")},
		stubCitations{citations: []entity.Citation{{Kind: entity.CitationKindParagraph, Reference: "§ 280 BGB"}}},
		stubDictation{},
		notifier,
		false,
	)
	ownerId := uuid.New()

	resp, err := svc.Compose(context.Background(), ownerId, &dto.ComposeDraftRequest{Notes: "Notizen"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Len(t, notifier.draftFailed, 1)
	assert.Empty(t, notifier.draftReady)

	// Flags must clear even when a branch failed.
	status := svc.Status(ownerId)
	assert.False(t, status.Drafting)
	assert.False(t, status.SuggestingCitation)
	assert.False(t, status.Busy)
}

func TestCompose_BothBranchesDelivered(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newOrchestratorForTest(
		stubDrafting{text: "Schriftsatz"},
		stubCitations{citations: []entity.Citation{
			{Kind: entity.CitationKindParagraph, Reference: "§ 536 BGB", Explanation: "Mietminderung"},
			{Kind: entity.CitationKindJudgment, Reference: "BGH, Urteil vom 12.03.2020 - VIII ZR 31/19"},
		}},
		stubDictation{},
		notifier,
		false,
	)

	resp, err := svc.Compose(context.Background(), uuid.New(), &dto.ComposeDraftRequest{Notes: "Notizen"})
	require.NoError(t, err)

	require.Len(t, resp.Citations, 2)
	assert.Equal(t, "paragraph", resp.Citations[0].Type)
	assert.Equal(t, "§ 536 BGB", resp.Citations[0].Citation)
	assert.Equal(t, "judgment", resp.Citations[1].Type)
	assert.Empty(t, resp.CitationError)
	assert.Len(t, notifier.citationsSeen, 1)
}

func TestCompose_RevisionIncrementsPerAttempt(t *testing.T) {
	svc := newOrchestratorForTest(
		stubDrafting{text: "Schriftsatz"},
		stubCitations{},
		stubDictation{},
		nil,
		false,
	)
	ownerId := uuid.New()

	first, err := svc.Compose(context.Background(), ownerId, &dto.ComposeDraftRequest{Notes: "a"})
	require.NoError(t, err)
	second, err := svc.Compose(context.Background(), ownerId, &dto.ComposeDraftRequest{Notes: "b"})
	require.NoError(t, err)

	assert.Equal(t, first.Revision+1, second.Revision)

	// Revisions are per owner, not global.
	other, err := svc.Compose(context.Background(), uuid.New(), &dto.ComposeDraftRequest{Notes: "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.Revision)
}

func TestFinishDictation_PolicyOffOnlyStops(t *testing.T) {
	stop := &dto.StopRecordingResponse{Notes: "Notizen\n\n--- Diktat ---\nDiktattext"}
	svc := newOrchestratorForTest(stubDrafting{text: "x"}, stubCitations{}, stubDictation{stop: stop}, nil, false)

	gotStop, draft, err := svc.FinishDictation(context.Background(), uuid.New(), uuid.New(), "Notizen", nil)
	require.NoError(t, err)
	assert.Equal(t, stop, gotStop)
	assert.Nil(t, draft)
}

func TestFinishDictation_PolicyOnChainsCompose(t *testing.T) {
	stop := &dto.StopRecordingResponse{Notes: "Notizen mit Diktat"}
	svc := newOrchestratorForTest(stubDrafting{text: "Entwurf aus Diktat"}, stubCitations{}, stubDictation{stop: stop}, nil, true)

	gotStop, draft, err := svc.FinishDictation(context.Background(), uuid.New(), uuid.New(), "Notizen", nil)
	require.NoError(t, err)
	require.NotNil(t, gotStop)
	require.NotNil(t, draft)
	assert.Equal(t, "Entwurf aus Diktat", draft.DocumentText)
}

func TestFinishDictation_StopFailureShortCircuits(t *testing.T) {
	svc := newOrchestratorForTest(stubDrafting{text: "x"}, stubCitations{}, stubDictation{stopErr: errors.New("no audio")}, nil, true)

	gotStop, draft, err := svc.FinishDictation(context.Background(), uuid.New(), uuid.New(), "Notizen", nil)
	require.Error(t, err)
	assert.Nil(t, gotStop)
	assert.Nil(t, draft)
}
