// Package errors defines the service error taxonomy shared by handlers,
// middleware and remote-service adapters.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error category exposed to clients.
type ErrorCode string

const (
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUpstream     ErrorCode = "UPSTREAM_FAILURE"
	CodeInternal     ErrorCode = "INTERNAL"
)

// Reason codes attached to Unauthorized errors so callers can distinguish
// token failures without parsing message text.
const (
	ReasonTokenMissing   = "token_missing"
	ReasonTokenMalformed = "token_malformed"
	ReasonTokenInvalid   = "token_invalid"
	ReasonTokenExpired   = "token_expired"
)

// ServiceError carries an error category, an HTTP status and optional
// structured details.
type ServiceError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WithDetails attaches a key/value pair to the error and returns it.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Reason returns the reason detail, if one was attached.
func (e *ServiceError) Reason() string {
	if e.Details == nil {
		return ""
	}
	if r, ok := e.Details["reason"].(string); ok {
		return r
	}
	return ""
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// InvalidToken builds a 401 error with a token reason code. All token
// verification failures collapse into this single kind.
func InvalidToken(reason string, err error) *ServiceError {
	se := &ServiceError{
		Code:       CodeUnauthorized,
		Message:    "Token expired or unauthorized access",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
	return se.WithDetails("reason", reason)
}

// Forbidden builds a 403 error.
func Forbidden(message string) *ServiceError {
	return &ServiceError{Code: CodeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// BadRequest builds a 400 error.
func BadRequest(message string) *ServiceError {
	return &ServiceError{Code: CodeBadRequest, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NotFound builds a 404 error.
func NotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// Upstream wraps a remote database or payment provider failure. Upstream
// failures are reported to clients as 401, never as a 5xx.
func Upstream(message string, err error) *ServiceError {
	return &ServiceError{Code: CodeUpstream, Message: message, HTTPStatus: http.StatusUnauthorized, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// GetServiceError extracts a *ServiceError from an error chain, or nil.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se
	}
	return nil
}
