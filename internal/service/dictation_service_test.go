package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/internal/repository/memory"
	"github.com/besmartbusiness/lawyer-app/pkg/dictation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	ref  string
	err  error
	puts int
	data []byte
}

func (s *fakeBlobStore) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.puts++
	s.data = data
	if s.err != nil {
		return "", s.err
	}
	return s.ref, nil
}

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
	lastRef    string
}

func (p *fakeTranscriber) Transcribe(ctx context.Context, audioRef string) (string, error) {
	p.calls++
	p.lastRef = audioRef
	if p.err != nil {
		return "", p.err
	}
	return p.transcript, nil
}

type sessionStateNotifier struct {
	states []string
}

func (n *sessionStateNotifier) NotifySessionState(ownerId uuid.UUID, snapshot dictation.Snapshot) {
	n.states = append(n.states, string(snapshot.State))
}

func webmStart() *dto.StartRecordingRequest {
	return &dto.StartRecordingRequest{MimeType: "audio/webm"}
}

func TestDictation_HappyPathAppendsTranscript(t *testing.T) {
	store := &fakeBlobStore{ref: "http://localhost:3000/uploads/a.webm"}
	transcriber := &fakeTranscriber{transcript: "Der Mieter hat die Miete gemindert."}
	notifier := &sessionStateNotifier{}
	svc := NewDictationService(memory.NewRecordingRepository(), store, transcriber, notifier, nopLogger{})
	ownerId := uuid.New()

	started, err := svc.Start(context.Background(), ownerId, webmStart())
	require.NoError(t, err)
	assert.Equal(t, "recording", started.State)

	require.NoError(t, svc.AppendChunk(context.Background(), ownerId, started.SessionId, []byte("chunk-1")))
	require.NoError(t, svc.AppendChunk(context.Background(), ownerId, started.SessionId, []byte("chunk-2")))

	stopped, err := svc.Stop(context.Background(), ownerId, started.SessionId, "Mietmangel seit Januar.")
	require.NoError(t, err)

	assert.Equal(t, "completed", stopped.State)
	assert.Equal(t, "Der Mieter hat die Miete gemindert.", stopped.Transcript)
	assert.Equal(t, "Mietmangel seit Januar.\n\n--- Diktat ---\nDer Mieter hat die Miete gemindert.", stopped.Notes)
	assert.Equal(t, []byte("chunk-1chunk-2"), store.data)
	assert.Equal(t, store.ref, transcriber.lastRef)
	assert.Contains(t, notifier.states, "transcribing")
	assert.Equal(t, "completed", notifier.states[len(notifier.states)-1])
}

func TestDictation_SecondStartRejectedWhileActive(t *testing.T) {
	svc := NewDictationService(memory.NewRecordingRepository(), &fakeBlobStore{ref: "r"}, &fakeTranscriber{}, nil, nopLogger{})
	ownerId := uuid.New()

	_, err := svc.Start(context.Background(), ownerId, webmStart())
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), ownerId, webmStart())
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeRecordingFailed, appErr.Code)

	// A different owner is unaffected.
	_, err = svc.Start(context.Background(), uuid.New(), webmStart())
	assert.NoError(t, err)
}

func TestDictation_SimultaneousStartsAdmitExactlyOne(t *testing.T) {
	svc := NewDictationService(memory.NewRecordingRepository(), &fakeBlobStore{ref: "r"}, &fakeTranscriber{}, nil, nopLogger{})
	ownerId := uuid.New()

	const attempts = 16
	var wg sync.WaitGroup
	var started int32
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Start(context.Background(), ownerId, webmStart()); err == nil {
				atomic.AddInt32(&started, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), started)
}

func TestDictation_DeviceDenialFailsSessionWithReason(t *testing.T) {
	sessions := memory.NewRecordingRepository()
	notifier := &sessionStateNotifier{}
	svc := NewDictationService(sessions, &fakeBlobStore{ref: "r"}, &fakeTranscriber{}, notifier, nopLogger{})
	ownerId := uuid.New()

	_, err := svc.Start(context.Background(), ownerId, &dto.StartRecordingRequest{
		MimeType:    "audio/webm",
		DeviceError: "NotAllowedError",
	})
	require.Error(t, err)

	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeRecordingFailed, appErr.Code)
	assert.Equal(t, "Der Zugriff auf das Mikrofon wurde verweigert.", appErr.Message)
	assert.Equal(t, []string{"failed"}, notifier.states)

	// The failed session is terminal and does not block the next start.
	_, err = svc.Start(context.Background(), ownerId, webmStart())
	assert.NoError(t, err)
}

func TestDictation_EmptyRecordingNeverReachesTranscriber(t *testing.T) {
	store := &fakeBlobStore{ref: "r"}
	transcriber := &fakeTranscriber{}
	sessions := memory.NewRecordingRepository()
	svc := NewDictationService(sessions, store, transcriber, nil, nopLogger{})
	ownerId := uuid.New()

	started, err := svc.Start(context.Background(), ownerId, webmStart())
	require.NoError(t, err)

	_, err = svc.Stop(context.Background(), ownerId, started.SessionId, "Notizen")
	require.Error(t, err)

	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeRecordingFailed, appErr.Code)
	assert.Equal(t, "Die Aufnahme enthält keine Audiodaten.", appErr.Message)

	assert.Zero(t, store.puts)
	assert.Zero(t, transcriber.calls)

	session, found := sessions.Get(started.SessionId)
	require.True(t, found)
	assert.Equal(t, dictation.StateFailed, session.State())
}

func TestDictation_UploadFailureFailsSession(t *testing.T) {
	store := &fakeBlobStore{err: errors.New("disk full")}
	transcriber := &fakeTranscriber{}
	sessions := memory.NewRecordingRepository()
	svc := NewDictationService(sessions, store, transcriber, nil, nopLogger{})
	ownerId := uuid.New()

	started, err := svc.Start(context.Background(), ownerId, webmStart())
	require.NoError(t, err)
	require.NoError(t, svc.AppendChunk(context.Background(), ownerId, started.SessionId, []byte("audio")))

	_, err = svc.Stop(context.Background(), ownerId, started.SessionId, "")
	require.Error(t, err)

	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeUploadFailed, appErr.Code)
	assert.Zero(t, transcriber.calls)

	session, _ := sessions.Get(started.SessionId)
	assert.Equal(t, dictation.StateFailed, session.State())
	assert.Equal(t, "Die Audiodatei konnte nicht hochgeladen werden.", session.FailureReason())
}

func TestDictation_TranscriptionFailureFailsSession(t *testing.T) {
	transcriber := &fakeTranscriber{err: errors.New("model unavailable")}
	sessions := memory.NewRecordingRepository()
	svc := NewDictationService(sessions, &fakeBlobStore{ref: "r"}, transcriber, nil, nopLogger{})
	ownerId := uuid.New()

	started, err := svc.Start(context.Background(), ownerId, webmStart())
	require.NoError(t, err)
	require.NoError(t, svc.AppendChunk(context.Background(), ownerId, started.SessionId, []byte("audio")))

	_, err = svc.Stop(context.Background(), ownerId, started.SessionId, "")
	require.Error(t, err)

	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeTranscriptionFailed, appErr.Code)

	session, _ := sessions.Get(started.SessionId)
	assert.Equal(t, dictation.StateFailed, session.State())

	// Terminal state: a failed session cannot be stopped again.
	_, err = svc.Stop(context.Background(), ownerId, started.SessionId, "")
	require.Error(t, err)
}

func TestDictation_SessionIsOwnerScoped(t *testing.T) {
	svc := NewDictationService(memory.NewRecordingRepository(), &fakeBlobStore{ref: "r"}, &fakeTranscriber{}, nil, nopLogger{})
	ownerId := uuid.New()

	started, err := svc.Start(context.Background(), ownerId, webmStart())
	require.NoError(t, err)

	err = svc.AppendChunk(context.Background(), uuid.New(), started.SessionId, []byte("x"))
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestAppendTranscript(t *testing.T) {
	assert.Equal(t, "Diktat", AppendTranscript("", "Diktat"))
	assert.Equal(t, "Notizen\n\n--- Diktat ---\nDiktat", AppendTranscript("Notizen\n", "Diktat"))
	assert.Equal(t, "Notizen", AppendTranscript("Notizen", "  "))
}
