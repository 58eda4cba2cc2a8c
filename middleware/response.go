package middleware

import (
	"errors"

	"warrantyhub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// JsonResponse writes the standard envelope. Failures also carry the message under "error".
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	body := fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	}
	if !status {
		body["error"] = message
	}
	return c.Status(statusCode).JSON(body)
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}

// HandleServiceError maps a workflow error to its HTTP status.
func HandleServiceError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return JsonResponse(c, fiber.StatusBadRequest, false, ve.Error(), ve.Fields)
	}

	var se *services.Error
	message := "Something went wrong!"
	if errors.As(err, &se) {
		message = se.Message
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, message, nil)
	case errors.Is(err, services.ErrActiveClaim), errors.Is(err, services.ErrValidation):
		return JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInUse):
		return JsonResponse(c, fiber.StatusConflict, false, message, nil)
	}

	logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).WithError(err).Error("Request failed")
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
}

// ErrorHandler renders errors that escape the handlers in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error!"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logrus.WithField("path", c.Path()).WithError(err).Error("Unhandled error")
	}

	return JsonResponse(c, code, false, message, nil)
}
