package handler

import (
	"github.com/gofiber/fiber/v2"

	"craftified/internal/http/middleware"
)

// errorPayload is the standardized error response body consumed by the
// storefront: {success:false, error, details}.
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - message: short error summary (e.g., "Upload failed")
// - details: optional diagnostic detail, empty for client input errors
func writeError(c *fiber.Ctx, status int, message, details string) error {
	res := errorPayload{
		Success:   false,
		Error:     message,
		Details:   details,
		RequestID: requestIDFromCtx(c),
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request", "")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not found", "")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed", "")
		default:
			return writeError(c, status, "Internal server error", "")
		}
	}
}
