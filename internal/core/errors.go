package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound    = "room_not_found"
	ErrCodeInvalidLocation = "invalid_location"
	ErrCodeBadRequest      = "bad_request"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidLocation = errors.New("invalid location data")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
