// Package apperr defines the error taxonomy every workflow service maps
// store and policy failures through. Handlers render these as
// {success:false, error, code} and never expose raw driver errors.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeMissingFields      Code = "MISSING_FIELDS"
	CodeMissingCredentials Code = "MISSING_CREDENTIALS"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeDuplicateEntry     Code = "DUPLICATE_ENTRY"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeNoToken            Code = "NO_TOKEN"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeInvalidUser        Code = "INVALID_USER"
	CodeNotApproved        Code = "NOT_APPROVED"
	CodeJobNotApproved     Code = "JOB_NOT_APPROVED"
	CodeAlreadyApplied     Code = "ALREADY_APPLIED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeServer             Code = "SERVER_ERROR"
)

// Error carries a stable machine code, the HTTP status the transport layer
// should render, and optional field-level context for validation and
// duplicate-entry failures.
type Error struct {
	Code    Code
	Status  int
	Message string
	Field   string
	Details map[string]string
}

func (e *Error) Error() string { return e.Message }

func New(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func MissingFields(message string) *Error {
	return New(CodeMissingFields, http.StatusBadRequest, message)
}

func MissingCredentials(message string) *Error {
	return New(CodeMissingCredentials, http.StatusBadRequest, message)
}

func Validation(message string, details map[string]string) *Error {
	e := New(CodeValidation, http.StatusBadRequest, message)
	e.Details = details
	return e
}

func Duplicate(field string) *Error {
	e := New(CodeDuplicateEntry, http.StatusBadRequest, "Duplicate entry: "+field+" already exists")
	e.Field = field
	return e
}

func InvalidCredentials() *Error {
	return New(CodeInvalidCredentials, http.StatusUnauthorized, "Invalid credentials")
}

func NoToken() *Error {
	return New(CodeNoToken, http.StatusUnauthorized, "Not authorized to access this route")
}

func InvalidToken() *Error {
	return New(CodeInvalidToken, http.StatusUnauthorized, "Not authorized to access this route")
}

func UserNotFound() *Error {
	return New(CodeUserNotFound, http.StatusUnauthorized, "User not found")
}

func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, http.StatusForbidden, message)
}

func InvalidUser(message string) *Error {
	return New(CodeInvalidUser, http.StatusForbidden, message)
}

func NotApproved(message string) *Error {
	return New(CodeNotApproved, http.StatusForbidden, message)
}

func JobNotApproved(message string) *Error {
	return New(CodeJobNotApproved, http.StatusForbidden, message)
}

func AlreadyApplied() *Error {
	return New(CodeAlreadyApplied, http.StatusBadRequest, "You have already applied for this job")
}

func NotFound(message string) *Error {
	return New(CodeNotFound, http.StatusNotFound, message)
}

func Server() *Error {
	return New(CodeServer, http.StatusInternalServerError, "Server error")
}

// From returns err as a taxonomy error, classifying anything unknown as
// SERVER_ERROR so no raw store error escapes a service boundary.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Server()
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
