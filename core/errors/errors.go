package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"

	// Membership and event state rules
	ErrCreatorCannotLeave ErrorCode = "CREATOR_CANNOT_LEAVE"
	ErrNotGroupMember     ErrorCode = "NOT_GROUP_MEMBER"
	ErrNotSignedUp        ErrorCode = "NOT_SIGNED_UP"

	// Storage failures
	ErrCreateFailed ErrorCode = "CREATE_FAILED"
	ErrGetFailed    ErrorCode = "GET_FAILED"
	ErrUpdateFailed ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed ErrorCode = "DELETE_FAILED"
)

// Kind groups error codes into the outcomes callers branch on.
type Kind string

const (
	KindNotFound     Kind = "NotFound"
	KindForbidden    Kind = "Forbidden"
	KindInvalidState Kind = "InvalidState"
	KindValidation   Kind = "ValidationError"
	KindUnauthorized Kind = "Unauthorized"
	KindConflict     Kind = "Conflict"
	KindInternal     Kind = "Internal"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind reports which taxonomy bucket the error code belongs to.
func (e *AppError) Kind() Kind {
	switch e.Code {
	case ErrNotFound:
		return KindNotFound
	case ErrForbidden, ErrNotGroupMember:
		return KindForbidden
	case ErrCreatorCannotLeave, ErrNotSignedUp:
		return KindInvalidState
	case ErrInvalidInput, ErrInvalidRequestData:
		return KindValidation
	case ErrUnauthorized, ErrTokenExpired, ErrInvalidTokenFormat, ErrMissingAuthorizationHeader:
		return KindUnauthorized
	case ErrAlreadyExists:
		return KindConflict
	default:
		return KindInternal
	}
}

// KindOf unwraps err looking for an *AppError. Plain errors are Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr.Kind()
	}
	return KindInternal
}

// CodeOf returns the code carried by err, or ErrInternalServer.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr.Code
	}
	return ErrInternalServer
}

// AsAppError returns err as an *AppError, wrapping plain errors with code and
// message. A nil err yields nil.
func AsAppError(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr
	}
	return NewAppError(code, message, err)
}
