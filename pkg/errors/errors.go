package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidID           = "INVALID_ID"
	CodeInvalidPrice        = "INVALID_PRICE"
	CodeInvalidDomain       = "INVALID_DOMAIN"
	CodeInvalidSoldValue    = "INVALID_SOLD_VALUE"
	CodeNotFound            = "NOT_FOUND"
	CodeMismatch            = "MISMATCH"
	CodeDuplicateUniversity = "DUPLICATE_UNIVERSITY"
	CodeDuplicateUsername   = "DUPLICATE_USERNAME"
	CodeDomainMismatch      = "DOMAIN_MISMATCH"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodePersistence         = "PERSISTENCE_ERROR"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeInternal            = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	// Field names the offending input, when there is one.
	Field  string
	Status int
	Err    error
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func Validation(field, message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
		Status:  http.StatusBadRequest,
	}
}

func InvalidID(field string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidID,
		Message: "invalid object id",
		Field:   field,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidPrice(field string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidPrice,
		Message: "price must be a non-negative whole number",
		Field:   field,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidDomain(field string) *AppError {
	return &AppError{
		Code:    CodeInvalidDomain,
		Message: "not a valid university email domain",
		Field:   field,
		Status:  http.StatusBadRequest,
	}
}

// InvalidSoldValue reports a sold flag that is neither "true" nor "false".
func InvalidSoldValue() *AppError {
	return &AppError{
		Code:    CodeInvalidSoldValue,
		Message: "Sold is not a proper value",
		Field:   "sold",
		Status:  http.StatusUnprocessableEntity,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

// NotFoundMessage is NotFound with a caller-supplied message.
func NotFoundMessage(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

func Mismatch(message string) *AppError {
	return &AppError{
		Code:    CodeMismatch,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

func DuplicateUniversity(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicateUniversity,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func DuplicateUsername() *AppError {
	return &AppError{
		Code:    CodeDuplicateUsername,
		Message: "username is already taken",
		Field:   "username",
		Status:  http.StatusConflict,
	}
}

func DomainMismatch() *AppError {
	return &AppError{
		Code:    CodeDomainMismatch,
		Message: "email domain does not match the university",
		Field:   "email",
		Status:  http.StatusBadRequest,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

// Persistence reports a store call that failed or matched nothing.
func Persistence(message string, err error) *AppError {
	return &AppError{
		Code:    CodePersistence,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As is a shorthand for errors.As against *AppError.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
