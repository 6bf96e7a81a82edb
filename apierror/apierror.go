// Package apierror carries status-classified errors from any point of the
// request chain to a single terminal renderer, which writes them out as
// {"message": ..., "data": ...} with the classified HTTP status.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"feedboard/logger"
)

// FieldError is one entry of the aggregated validation detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an error with an HTTP status classification. Errors without
// one default to 500 at the renderer.
type Error struct {
	Status  int
	Message string
	Data    []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation reports aggregated field-level failures (422).
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Data: fields}
}

// MissingAsset reports an absent (or silently dropped) upload (422).
func MissingAsset(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

// Unauthenticated reports a missing, malformed or expired bearer token (401).
func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Unauthorized reports a credential mismatch at sign-in (401).
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden reports an ownership violation (403).
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Internal wraps a storage or otherwise unexpected failure (500).
func Internal(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, cause: cause}
}

// FromBinding converts a gin binding failure into an aggregated 422.
// validator.ValidationErrors become per-field entries; anything else
// (malformed JSON, wrong content type) yields a bare validation error.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation("validation failed, entered data is incorrect")
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return Validation("validation failed, entered data is incorrect", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	default:
		return "is invalid"
	}
}

// Middleware is the terminal error renderer. Handlers record failures via
// c.Error and return; the last recorded error decides the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			apiErr = Internal("internal server error", err)
		}

		if apiErr.Status >= http.StatusInternalServerError {
			logger.Log.Errorw("request failed",
				"path", c.Request.URL.Path,
				"error", apiErr.Error(),
			)
		}

		body := gin.H{"message": apiErr.Message}
		if apiErr.Data != nil {
			body["data"] = apiErr.Data
		}
		c.JSON(apiErr.Status, body)
	}
}
