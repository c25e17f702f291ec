package dto

import "github.com/google/uuid"

// StartRecordingRequest reports the client's device acquisition outcome.
// DeviceError is set when the browser could not open the microphone; the
// session then lands directly in failed instead of silently staying idle.
type StartRecordingRequest struct {
	MimeType    string `json:"mime_type"`
	DeviceError string `json:"device_error"`
}

type StartRecordingResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	State     string    `json:"state"`
}

// AppendChunkRequest carries one base64-encoded audio segment. Chunks arrive
// in capture order and are concatenated on stop.
type AppendChunkRequest struct {
	Chunk string `json:"chunk" validate:"required"`
}

type SessionSnapshotResponse struct {
	SessionId      uuid.UUID `json:"session_id"`
	State          string    `json:"state"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	ChunkCount     int       `json:"chunk_count"`
	Transcript     string    `json:"transcript,omitempty"`
	FailureReason  string    `json:"failure_reason,omitempty"`
}

// StopRecordingResponse reports the terminal outcome of the capture pipeline.
// Notes carries the caller's notes with the transcript appended when the
// pipeline completed.
type StopRecordingResponse struct {
	SessionId  uuid.UUID `json:"session_id"`
	State      string    `json:"state"`
	Transcript string    `json:"transcript,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// StopRecordingRequest lets the caller hand over the notes the transcript
// should be appended to.
type StopRecordingRequest struct {
	Notes string `json:"notes"`
}
