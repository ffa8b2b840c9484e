package handlers

import (
	"errors"

	"vibecart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var notFoundMessages = map[string]string{
	"cart":    "Cart not found",
	"item":    "Item not found in cart",
	"order":   "Order not found",
	"product": "Product not found",
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func list[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// statusError carries an unexpected failure out of a handler so that middleware sees the
// request as failed. ErrorHandler renders it.
type statusError struct {
	status  int
	message string
	err     error
}

func (e *statusError) Error() string {
	return e.message + ": " + e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

// ErrorHandler renders errors returned by handlers in the response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return c.Status(se.status).JSON(fiber.Map{
			"success": false,
			"message": se.message,
			"error":   se.err.Error(),
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// fail maps a service error onto the response envelope. fallback is the message used for
// unexpected failures, which are returned as errors rather than written so that no
// middleware records them as a completed response.
func fail(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return badRequest(c, validationErr.Message, nil)
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		msg, ok := notFoundMessages[notFoundErr.Resource]
		if !ok {
			msg = notFoundErr.Error()
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": msg,
		})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(fallback)
	return &statusError{status: fiber.StatusInternalServerError, message: fallback, err: err}
}
