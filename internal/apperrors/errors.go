package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on status code and message so a wrapped copy of a predefined
// error still satisfies errors.Is against the original.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Could not validate credentials", nil)
	ErrForbidden          = New(http.StatusForbidden, "Not enough permissions", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrConflict           = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Incorrect email or password", nil)
	ErrEmailTaken         = New(http.StatusConflict, "Email already registered", nil)
)

// Business logic error types
var (
	ErrInsufficientStock   = New(http.StatusBadRequest, "Insufficient stock", nil)
	ErrProductNotFound     = New(http.StatusNotFound, "Product not found", nil)
	ErrOrderNotFound       = New(http.StatusNotFound, "Order not found", nil)
	ErrTransactionNotFound = New(http.StatusNotFound, "Transaction not found", nil)
	ErrUpstream            = New(http.StatusInternalServerError, "Payment provider error", nil)
)

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	return New(base.Code, base.Message, err)
}

// WithMessage returns a copy of base with a more specific message.
func WithMessage(base *Error, message string) *Error {
	return New(base.Code, message, nil)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// FromError converts any error into an *Error, defaulting to 500.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// Respond writes err as {"error": message} with its status code. Server
// side failures are logged with their cause; the cause never reaches the
// client.
func Respond(c *gin.Context, logger *zap.Logger, err error) {
	appErr := FromError(err)
	if appErr.Code >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", appErr.Code),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}
