package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorCode names an application failure condition. Recoverable codes double
// as the value of the `status` query parameter on redirects, so their
// spelling is part of the external contract.
type ErrorCode string

const (
	// Recoverable, user-facing
	CodeFailedLogin          ErrorCode = "FailedLogin"
	CodeIllegalAccessAttempt ErrorCode = "IllegalAccessAttempt"
	CodeIllegalFileType      ErrorCode = "IllegalFileType"

	// Fatal
	CodeStoreCorrupt        ErrorCode = "StoreCorrupt"
	CodeStorageWriteFailure ErrorCode = "StorageWriteFailure"
	CodeInternal            ErrorCode = "InternalError"
)

// AppError is a typed application error carried through the request pipeline
// and translated into a user-visible outcome by the terminal error handler.
type AppError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Internal   error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// WithInternal wraps an underlying error for logging.
func (e *AppError) WithInternal(err error) *AppError {
	e.Internal = err
	return e
}

// Recoverable reports whether the error belongs to the closed set of
// conditions that resolve as a redirect instead of a failure response.
func (e *AppError) Recoverable() bool {
	switch e.Code {
	case CodeFailedLogin, CodeIllegalAccessAttempt, CodeIllegalFileType:
		return true
	}
	return false
}

// New creates a new AppError.
func New(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewFailedLogin() *AppError {
	return New(CodeFailedLogin, "password-username pair did not exist", fiber.StatusUnauthorized)
}

func NewIllegalAccessAttempt() *AppError {
	return New(CodeIllegalAccessAttempt, "login required", fiber.StatusUnauthorized)
}

func NewIllegalFileType(allowed []string) *AppError {
	return New(CodeIllegalFileType, fmt.Sprintf("file type not allowed, expected one of %v", allowed), fiber.StatusBadRequest)
}

func NewStoreCorrupt(err error) *AppError {
	return New(CodeStoreCorrupt, "user record store is not well-formed", fiber.StatusInternalServerError).
		WithInternal(err)
}

func NewStorageWriteFailure(operation string, err error) *AppError {
	return New(CodeStorageWriteFailure, fmt.Sprintf("storage failure during %s", operation), fiber.StatusInternalServerError).
		WithInternal(err)
}

func NewInternalError(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return New(CodeInternal, message, fiber.StatusInternalServerError)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// FromError converts any error to an AppError, defaulting to internal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return New(CodeInternal, fiberErr.Message, fiberErr.Code)
	}

	return NewInternalError("").WithInternal(err)
}
