package middleware

import (
	"time"

	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every HTTP request once it has been handled. Errors
// from the chain are rendered here so the logged status is the one sent.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				logger.Get().Error("Error handler failed to render response",
					zap.Error(handlerErr), zap.NamedError("cause", err))
				if sendErr := c.SendStatus(fiber.StatusInternalServerError); sendErr != nil {
					logger.Get().Debug("Failed to send fallback status", zap.Error(sendErr))
				}
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		}

		if status >= fiber.StatusInternalServerError {
			logger.Get().Error("HTTP Request", fields...)
		} else {
			logger.Get().Info("HTTP Request", fields...)
		}
		return nil
	}
}
