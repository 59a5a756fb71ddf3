package response

import (
	"errors"
	"log/slog"

	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// Error writes err as a JSON error body with the status it maps to.
// Internal failures are logged with their cause and answered generically.
func Error(c *fiber.Ctx, log *slog.Logger, err error) error {
	status := autherror.StatusCode(err)

	var validationErr *autherror.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"errors":  validationErr.Fields,
		})
	}

	if status == fiber.StatusInternalServerError && log != nil {
		log.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   autherror.PublicMessage(err),
	})
}

// ErrorHandler is the app-level fiber error handler. Fiber errors such as
// unknown routes keep their own status, everything else goes through Error.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"error":   fiberErr.Message,
			})
		}
		return Error(c, log, err)
	}
}
