package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the envelope wrapping every API payload.
type APIResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// Respond writes a success envelope with the given status, message and payload.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(APIResponse{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// RespondWithError writes a failure envelope. The status is derived from the
// error's code; the message never carries internal detail for 5xx errors.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := HTTPStatus(err)

	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) && status < fiber.StatusInternalServerError {
		message = appErr.Message
	}

	return c.Status(status).JSON(APIResponse{
		Success:    false,
		StatusCode: status,
		Message:    message,
	})
}
