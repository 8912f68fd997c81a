package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/apperr"
)

// SuccessResponse is the envelope for successful answers.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for failures.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, status int, data interface{}, meta ...interface{}) error {
	response := SuccessResponse{
		Success: true,
		Data:    data,
	}

	if len(meta) > 0 {
		response.Meta = meta[0]
	}

	return c.Status(status).JSON(response)
}

// Message answers 200 with a message and no data, for mutations the client
// only needs to acknowledge.
func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{Success: true, Message: message})
}

func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// ValidationError answers 422 with a field -> message map.
func ValidationError(c *fiber.Ctx, message string, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success: false,
		Error:   "Validation Error",
		Message: message,
		Details: errors,
	})
}

// Fail writes the response for an error coming out of a service.
func Fail(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindValidation:
			return ValidationError(c, appErr.Message, appErr.Fields)
		case apperr.KindUnauthorized:
			return Unauthorized(c, appErr.Message)
		}
	}
	status := apperr.HTTPStatus(err)
	return Error(c, status, errors.New(apperr.PublicMessage(err)))
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

// Unauthorized answers 401 and points the client at the login page, carrying
// the requested path so it can come back after login.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, fiber.NewError(fiber.StatusUnauthorized, message), fiber.Map{
		"redirect": LoginRedirect(c.OriginalURL()),
	})
}
