package controller

import (
	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/service"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch errors.Cause(err) {
	case service.ErrSessionNotFound:
		return fiber.StatusNotFound
	case service.ErrForbidden:
		return fiber.StatusForbidden
	case service.ErrInvalidRequest:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
