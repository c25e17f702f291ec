package dictation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_FullLifecycle(t *testing.T) {
	s := NewSession(uuid.New(), "audio/webm")
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.Active())

	require.NoError(t, s.StartRecording())
	assert.Equal(t, StateRecording, s.State())
	assert.True(t, s.Active())

	require.NoError(t, s.AppendChunk([]byte("abc")))
	require.NoError(t, s.AppendChunk([]byte("def")))

	require.NoError(t, s.RequestStop())
	assert.Equal(t, StateStopping, s.State())

	audio, err := s.Assemble()
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdef"), audio)
	assert.Equal(t, StateUploading, s.State())

	require.NoError(t, s.MarkUploaded("http://localhost/uploads/x.webm"))
	assert.Equal(t, StateTranscribing, s.State())
	assert.Equal(t, "http://localhost/uploads/x.webm", s.BlobRef())

	require.NoError(t, s.Complete("Das Diktat."))
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, "Das Diktat.", s.Transcript())
	assert.False(t, s.Active())
}

func TestSession_EmptyRecordingFailsBeforeUpload(t *testing.T) {
	s := NewSession(uuid.New(), "")
	require.NoError(t, s.StartRecording())
	require.NoError(t, s.RequestStop())

	audio, err := s.Assemble()
	assert.Error(t, err)
	assert.Nil(t, audio)
	assert.Equal(t, StateFailed, s.State())
	assert.NotEmpty(t, s.FailureReason())

	// A failed session accepts no further transitions.
	assert.Error(t, s.MarkUploaded("ref"))
	assert.Error(t, s.Complete("text"))
}

func TestSession_TransitionsAreStrictlySequential(t *testing.T) {
	s := NewSession(uuid.New(), "")

	assert.Error(t, s.AppendChunk([]byte("x")), "append before start")
	assert.Error(t, s.RequestStop(), "stop before start")
	_, err := s.Assemble()
	assert.Error(t, err, "assemble before stop")

	require.NoError(t, s.StartRecording())
	assert.Error(t, s.StartRecording(), "double start")

	require.NoError(t, s.AppendChunk([]byte("x")))
	require.NoError(t, s.RequestStop())
	assert.Error(t, s.AppendChunk([]byte("y")), "append after stop")
}

func TestSession_FailIsTerminalAndIdempotent(t *testing.T) {
	s := NewSession(uuid.New(), "")
	require.NoError(t, s.StartRecording())

	s.Fail("Gerätezugriff verweigert.")
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, "Gerätezugriff verweigert.", s.FailureReason())

	// Failing again keeps the first reason.
	s.Fail("anderer Grund")
	assert.Equal(t, "Gerätezugriff verweigert.", s.FailureReason())
}

func TestSession_FailDoesNotOverrideCompleted(t *testing.T) {
	s := NewSession(uuid.New(), "")
	require.NoError(t, s.StartRecording())
	require.NoError(t, s.AppendChunk([]byte("x")))
	require.NoError(t, s.RequestStop())
	_, err := s.Assemble()
	require.NoError(t, err)
	require.NoError(t, s.MarkUploaded("ref"))
	require.NoError(t, s.Complete("fertig"))

	s.Fail("zu spät")
	assert.Equal(t, StateCompleted, s.State())
	assert.Empty(t, s.FailureReason())
}

func TestSession_SnapshotReflectsState(t *testing.T) {
	s := NewSession(uuid.New(), "")
	require.NoError(t, s.StartRecording())
	require.NoError(t, s.AppendChunk([]byte("chunk")))

	snap := s.Snapshot()
	assert.Equal(t, s.Id, snap.Id)
	assert.Equal(t, StateRecording, snap.State)
	assert.Equal(t, 1, snap.ChunkCount)
	assert.GreaterOrEqual(t, snap.ElapsedSeconds, 0)
}

func TestSession_AppendIgnoresEmptyChunks(t *testing.T) {
	s := NewSession(uuid.New(), "")
	require.NoError(t, s.StartRecording())
	require.NoError(t, s.AppendChunk(nil))
	require.NoError(t, s.AppendChunk([]byte{}))

	assert.Equal(t, 0, s.Snapshot().ChunkCount)
}
