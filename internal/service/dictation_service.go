package service

import (
	"context"
	"strings"
	"sync"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/repository/memory"
	"github.com/besmartbusiness/lawyer-app/pkg/blob"
	"github.com/besmartbusiness/lawyer-app/pkg/dictation"
	"github.com/besmartbusiness/lawyer-app/pkg/transcribe"

	"github.com/google/uuid"
)

// transcriptDelimiter separates appended transcript text from whatever the
// user already typed. Transcripts never overwrite existing notes.
const transcriptDelimiter = "--- Diktat ---"

// IDictationNotifier pushes session state changes to connected clients.
type IDictationNotifier interface {
	NotifySessionState(ownerId uuid.UUID, snapshot dictation.Snapshot)
}

type IDictationService interface {
	Start(ctx context.Context, ownerId uuid.UUID, req *dto.StartRecordingRequest) (*dto.StartRecordingResponse, error)
	AppendChunk(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, data []byte) error
	Stop(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, notes string) (*dto.StopRecordingResponse, error)
	Status(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID) (*dto.SessionSnapshotResponse, error)
}

type dictationService struct {
	sessions    *memory.RecordingRepository
	blobStore   blob.Store
	transcriber transcribe.Provider
	notifier    IDictationNotifier
	log         logger.ILogger

	// startMu serializes Start so the active-session check and the save are
	// one step. Without it two simultaneous starts could both pass the check.
	startMu sync.Mutex
}

func NewDictationService(
	sessions *memory.RecordingRepository,
	blobStore blob.Store,
	transcriber transcribe.Provider,
	notifier IDictationNotifier,
	log logger.ILogger,
) IDictationService {
	return &dictationService{
		sessions:    sessions,
		blobStore:   blobStore,
		transcriber: transcriber,
		notifier:    notifier,
		log:         log,
	}
}

func (s *dictationService) notify(session *dictation.Session) {
	if s.notifier != nil {
		s.notifier.NotifySessionState(session.OwnerId, session.Snapshot())
	}
}

// Start opens a new recording session. An owner with a session still between
// Recording and a terminal state is rejected; two concurrent captures would
// race on the notes. A reported device acquisition failure lands the session
// in Failed with the reason instead of leaving it idle.
func (s *dictationService) Start(ctx context.Context, ownerId uuid.UUID, req *dto.StartRecordingRequest) (*dto.StartRecordingResponse, error) {
	if req == nil {
		req = &dto.StartRecordingRequest{}
	}

	s.startMu.Lock()
	defer s.startMu.Unlock()

	if active, found := s.sessions.ActiveForOwner(ownerId); found {
		s.log.Warn("dictation", "start rejected, session already active", map[string]interface{}{
			"session_id": active.Id.String(),
		})
		return nil, serverutils.NewRecordingError("Es läuft bereits eine Aufnahme. Bitte beenden Sie diese zuerst.", nil)
	}

	session := dictation.NewSession(ownerId, req.MimeType)

	if req.DeviceError != "" {
		reason := "Der Zugriff auf das Mikrofon wurde verweigert."
		session.Fail(reason)
		s.sessions.Save(session)
		s.notify(session)
		s.log.Warn("dictation", "device acquisition failed", map[string]interface{}{
			"session_id":   session.Id.String(),
			"device_error": req.DeviceError,
		})
		return nil, serverutils.NewRecordingError(reason, nil)
	}

	if err := session.StartRecording(); err != nil {
		session.Fail("Die Aufnahme konnte nicht gestartet werden.")
		return nil, serverutils.NewRecordingError("Die Aufnahme konnte nicht gestartet werden.", err)
	}
	s.sessions.Save(session)
	s.notify(session)

	return &dto.StartRecordingResponse{
		SessionId: session.Id,
		State:     string(session.State()),
	}, nil
}

func (s *dictationService) ownedSession(ownerId, sessionId uuid.UUID) (*dictation.Session, error) {
	session, found := s.sessions.Get(sessionId)
	if !found || session.OwnerId != ownerId {
		return nil, serverutils.NewNotFoundError("Die Aufnahme wurde nicht gefunden.")
	}
	return session, nil
}

func (s *dictationService) AppendChunk(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, data []byte) error {
	session, err := s.ownedSession(ownerId, sessionId)
	if err != nil {
		return err
	}

	if err := session.AppendChunk(data); err != nil {
		return serverutils.NewRecordingError("Die Aufnahme nimmt keine Audiodaten mehr an.", err)
	}
	return nil
}

// Stop drives the session through its remaining states: assemble the chunks,
// upload the blob, transcribe, and append the transcript to the notes. Each
// step's failure lands the session in Failed with a step-specific message and
// never auto-retries.
func (s *dictationService) Stop(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID, notes string) (*dto.StopRecordingResponse, error) {
	session, err := s.ownedSession(ownerId, sessionId)
	if err != nil {
		return nil, err
	}

	if err := session.RequestStop(); err != nil {
		return nil, serverutils.NewRecordingError("Die Aufnahme kann in diesem Zustand nicht beendet werden.", err)
	}
	s.notify(session)

	audio, err := session.Assemble()
	if err != nil {
		// Assemble already moved the session to Failed with its reason.
		s.notify(session)
		return nil, serverutils.NewRecordingError(session.FailureReason(), err)
	}
	s.notify(session)

	ref, err := s.blobStore.Put(ctx, audio, session.MimeType)
	if err != nil {
		session.Fail("Die Audiodatei konnte nicht hochgeladen werden.")
		s.notify(session)
		return nil, serverutils.NewUploadError("Die Audiodatei konnte nicht hochgeladen werden.", err)
	}
	if err := session.MarkUploaded(ref); err != nil {
		return nil, serverutils.NewUploadError("Die Audiodatei konnte nicht hochgeladen werden.", err)
	}
	s.notify(session)

	transcript, err := s.transcriber.Transcribe(ctx, ref)
	if err != nil {
		session.Fail("Das Diktat konnte nicht transkribiert werden.")
		s.notify(session)
		return nil, serverutils.NewTranscriptionError("Das Diktat konnte nicht transkribiert werden.", err)
	}
	if err := session.Complete(transcript); err != nil {
		return nil, serverutils.NewTranscriptionError("Das Diktat konnte nicht transkribiert werden.", err)
	}
	s.notify(session)

	s.log.Info("dictation", "session completed", map[string]interface{}{
		"session_id": session.Id.String(),
		"chunks":     session.Snapshot().ChunkCount,
	})

	return &dto.StopRecordingResponse{
		SessionId:  session.Id,
		State:      string(session.State()),
		Transcript: transcript,
		Notes:      AppendTranscript(notes, transcript),
	}, nil
}

func (s *dictationService) Status(ctx context.Context, ownerId uuid.UUID, sessionId uuid.UUID) (*dto.SessionSnapshotResponse, error) {
	session, err := s.ownedSession(ownerId, sessionId)
	if err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	return &dto.SessionSnapshotResponse{
		SessionId:      snap.Id,
		State:          string(snap.State),
		ElapsedSeconds: snap.ElapsedSeconds,
		ChunkCount:     snap.ChunkCount,
		Transcript:     snap.Transcript,
		FailureReason:  snap.FailureReason,
	}, nil
}

// AppendTranscript joins a transcript onto existing notes behind a visible
// delimiter. Empty notes just become the transcript.
func AppendTranscript(notes, transcript string) string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return notes
	}
	trimmed := strings.TrimRight(notes, " \t\n")
	if trimmed == "" {
		return transcript
	}
	return trimmed + "\n\n" + transcriptDelimiter + "\n" + transcript
}
