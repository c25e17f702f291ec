package dictation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle position of one recording session.
type State string

const (
	StateIdle         State = "idle"
	StateRecording    State = "recording"
	StateStopping     State = "stopping"
	StateUploading    State = "uploading"
	StateTranscribing State = "transcribing"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Session accumulates audio chunks between an explicit start and stop.
// Transitions are strictly sequential; any invalid transition is an error
// and any step failure lands in StateFailed with a user-facing reason.
type Session struct {
	mu sync.Mutex

	Id        uuid.UUID
	OwnerId   uuid.UUID
	MimeType  string
	StartedAt time.Time

	state         State
	chunks        [][]byte
	blobRef       string
	transcript    string
	failureReason string
}

// Snapshot is a read-only view of a session handed to callers.
type Snapshot struct {
	Id             uuid.UUID `json:"id"`
	State          State     `json:"state"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	ChunkCount     int       `json:"chunk_count"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	Transcript     string    `json:"transcript,omitempty"`
}

func NewSession(ownerId uuid.UUID, mimeType string) *Session {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	return &Session{
		Id:       uuid.New(),
		OwnerId:  ownerId,
		MimeType: mimeType,
		state:    StateIdle,
	}
}

func (s *Session) invalid(action string) error {
	return fmt.Errorf("cannot %s while session is %s", action, s.state)
}

// StartRecording moves Idle -> Recording once the input device is acquired.
func (s *Session) StartRecording() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return s.invalid("start recording")
	}
	s.state = StateRecording
	s.StartedAt = time.Now()
	return nil
}

// AppendChunk adds captured audio data. Only legal while Recording.
func (s *Session) AppendChunk(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return s.invalid("append audio")
	}
	if len(data) > 0 {
		buf := make([]byte, len(data))
		copy(buf, data)
		s.chunks = append(s.chunks, buf)
	}
	return nil
}

// RequestStop moves Recording -> Stopping on the explicit user stop action.
func (s *Session) RequestStop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return s.invalid("stop")
	}
	s.state = StateStopping
	return nil
}

// Assemble joins the accumulated chunks into one payload and moves
// Stopping -> Uploading. A recording with zero captured bytes fails here,
// before anything is uploaded.
func (s *Session) Assemble() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStopping {
		return nil, s.invalid("assemble audio")
	}

	total := 0
	for _, c := range s.chunks {
		total += len(c)
	}
	if total == 0 {
		s.state = StateFailed
		s.failureReason = "Die Aufnahme enthält keine Audiodaten."
		return nil, fmt.Errorf("empty recording")
	}

	blob := make([]byte, 0, total)
	for _, c := range s.chunks {
		blob = append(blob, c...)
	}
	s.state = StateUploading
	return blob, nil
}

// MarkUploaded stores the blob reference and moves Uploading -> Transcribing.
func (s *Session) MarkUploaded(blobRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUploading {
		return s.invalid("mark uploaded")
	}
	s.blobRef = blobRef
	s.state = StateTranscribing
	return nil
}

// Complete records the transcript and moves Transcribing -> Completed.
func (s *Session) Complete(transcript string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTranscribing {
		return s.invalid("complete")
	}
	s.transcript = transcript
	s.state = StateCompleted
	return nil
}

// Fail moves any non-terminal state to Failed with a specific reason.
// The session never auto-retries; a fresh start creates a new session.
func (s *Session) Fail(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCompleted || s.state == StateFailed {
		return
	}
	s.state = StateFailed
	s.failureReason = reason
}

// Active reports whether the session is between start and a terminal state.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateRecording, StateStopping, StateUploading, StateTranscribing:
		return true
	}
	return false
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) BlobRef() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobRef
}

func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

func (s *Session) FailureReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failureReason
}

// Snapshot returns the current read-only view. ElapsedSeconds is derived
// from the wall clock for UI feedback only.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := 0
	if !s.StartedAt.IsZero() {
		elapsed = int(time.Since(s.StartedAt).Seconds())
	}

	return Snapshot{
		Id:             s.Id,
		State:          s.state,
		ElapsedSeconds: elapsed,
		ChunkCount:     len(s.chunks),
		FailureReason:  s.failureReason,
		Transcript:     s.transcript,
	}
}
