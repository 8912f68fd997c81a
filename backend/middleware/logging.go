package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func LoggingMiddleware(logger *zap.SugaredLogger) fiber.Handler {
	log := logger.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// let the app's error handler write the response before we read the status
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		}
		if caller := Caller(c); caller.Authenticated() {
			fields = append(fields, "user_id", caller.UserID)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Errorw("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
		return nil
	}
}
