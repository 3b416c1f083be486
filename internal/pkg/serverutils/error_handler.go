// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"healthlync-be/internal/pkg/apperrors"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// standard response envelope. Internal error details never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(FailResponse(fiberErr.Code, fiberErr.Message))
		}

		switch {
		case apperrors.IsValidation(err):
			return ctx.Status(fiber.StatusBadRequest).JSON(FailResponse(fiber.StatusBadRequest, err.Error()))
		case apperrors.IsNotFound(err):
			return ctx.Status(fiber.StatusNotFound).JSON(FailResponse(fiber.StatusNotFound, err.Error()))
		case apperrors.IsTimeout(err):
			return ctx.Status(fiber.StatusGatewayTimeout).JSON(FailResponse(fiber.StatusGatewayTimeout, err.Error()))
		case apperrors.IsProvider(err):
			return ctx.Status(fiber.StatusInternalServerError).JSON(FailResponse(fiber.StatusInternalServerError, "Upstream provider error"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(FailResponse(fiber.StatusInternalServerError, "Internal server error"))
		}
	}
}
