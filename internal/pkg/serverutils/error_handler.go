package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors bubbling out of handlers into the
// standard envelope. AppErrors keep their status and user-facing message;
// anything else becomes an opaque 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := AsAppError(err); ok {
			return ctx.Status(appErr.HTTPStatus).JSON(BaseResponse[any]{
				Success: false,
				Code:    appErr.HTTPStatus,
				Message: appErr.Message,
				Data:    fiber.Map{"error_code": appErr.Code},
			})
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
