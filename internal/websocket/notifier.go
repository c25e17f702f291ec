package websocket

import (
	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/pkg/dictation"

	"github.com/google/uuid"
)

// Event types pushed to the client. The draft and citation events carry the
// revision they were computed for so a client holding newer notes can drop
// stale pushes.
const (
	EventDraftReady     = "draft.ready"
	EventDraftFailed    = "draft.failed"
	EventCitationsReady = "citations.ready"
	EventDictationState = "dictation.state"
)

// PipelineNotifier adapts the hub to the service-layer notifier contracts.
type PipelineNotifier struct {
	hub *Hub
}

func NewPipelineNotifier(hub *Hub) *PipelineNotifier {
	return &PipelineNotifier{hub: hub}
}

func (n *PipelineNotifier) NotifyDraftReady(ownerId uuid.UUID, revision int64, documentText string) {
	n.hub.SendEvent(ownerId, EventDraftReady, map[string]interface{}{
		"revision":      revision,
		"document_text": documentText,
	})
}

func (n *PipelineNotifier) NotifyDraftFailed(ownerId uuid.UUID, revision int64, message string) {
	n.hub.SendEvent(ownerId, EventDraftFailed, map[string]interface{}{
		"revision": revision,
		"message":  message,
	})
}

func (n *PipelineNotifier) NotifyCitationsReady(ownerId uuid.UUID, revision int64, citations []dto.CitationSuggestion) {
	n.hub.SendEvent(ownerId, EventCitationsReady, map[string]interface{}{
		"revision":  revision,
		"citations": citations,
	})
}

func (n *PipelineNotifier) NotifySessionState(ownerId uuid.UUID, snapshot dictation.Snapshot) {
	n.hub.SendEvent(ownerId, EventDictationState, snapshot)
}
