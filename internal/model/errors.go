package model

import (
	"errors"
	"net/http"
)

// Repository-level sentinels, translated to AppError by the services.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// ErrorKind classifies operational errors by their domain meaning.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuth
	KindNotFound
	KindConflict
	KindInternal
)

// AppError is an expected domain error that is safe to show to clients.
// Anything that is not an AppError is treated as non-operational: logged
// server-side and rendered as a generic 500.
type AppError struct {
	Kind        ErrorKind
	Status      int
	Message     string
	Operational bool
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports malformed or missing input (400).
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Operational: true}
}

// NewAuthError reports a failed or missing authentication (401).
func NewAuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message, Operational: true}
}

// NewNotFoundError reports a missing or not-owned resource (404).
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message, Operational: true}
}

// NewConflictError reports a uniqueness violation (409).
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Status: http.StatusConflict, Message: message, Operational: true}
}

// NewInternalError reports an expected server-side failure (500).
func NewInternalError(message string) *AppError {
	return &AppError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message, Operational: true}
}
