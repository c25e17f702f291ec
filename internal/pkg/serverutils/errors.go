package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced to clients. The message next to a code is what the
// user sees, so it stays in German; the wrapped error is for the logs.
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeRecordingFailed     = "RECORDING_FAILED"
	CodeUploadFailed        = "UPLOAD_FAILED"
	CodeTranscriptionFailed = "TRANSCRIPTION_FAILED"
	CodeGenerationFailed    = "GENERATION_FAILED"
	CodePersistenceFailed   = "PERSISTENCE_FAILED"
	CodeInternal            = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code string, httpStatus int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func NewValidationError(message string) *AppError {
	return NewAppError(CodeValidationFailed, fiber.StatusBadRequest, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, fiber.StatusNotFound, message, nil)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(CodeUnauthorized, fiber.StatusUnauthorized, message, nil)
}

func NewGenerationError(message string, err error) *AppError {
	return NewAppError(CodeGenerationFailed, fiber.StatusBadGateway, message, err)
}

func NewTranscriptionError(message string, err error) *AppError {
	return NewAppError(CodeTranscriptionFailed, fiber.StatusBadGateway, message, err)
}

func NewUploadError(message string, err error) *AppError {
	return NewAppError(CodeUploadFailed, fiber.StatusBadGateway, message, err)
}

func NewRecordingError(message string, err error) *AppError {
	return NewAppError(CodeRecordingFailed, fiber.StatusConflict, message, err)
}

func NewPersistenceError(message string, err error) *AppError {
	return NewAppError(CodePersistenceFailed, fiber.StatusInternalServerError, message, err)
}

// AsAppError unwraps err to an AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
