package helpers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Stable machine-readable error kinds carried in the "code" field of
// every error envelope.
const (
	KindNotFound            = "not_found"
	KindConflict            = "conflict"
	KindValidationError     = "validation_error"
	KindUpstreamAuthError   = "upstream_auth_error"
	KindUpstreamUnavailable = "upstream_unavailable"
	KindUpstreamError       = "upstream_error"
	KindUpstreamTimeout     = "upstream_timeout"
	KindInternalError       = "internal_error"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// Validate checks the struct fields against the specified validation tags.
func Validate(val interface{}) error {
	return Validator.Struct(val)
}

// HandleSuccess sends a structured JSON response for successful requests.
func HandleSuccess(context *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"error":   nil,
		"data":    data,
	})
}

// HandleError sends a structured JSON response for errors. The kind is a
// stable identifier clients can switch on; message is for humans.
func HandleError(context *fiber.Ctx, statusCode int, kind string, message string, err error) error {
	var detail interface{}
	if err != nil {
		detail = err.Error()
	}
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"code":    kind,
		"message": message,
		"error":   detail,
		"data":    nil,
	})
}
