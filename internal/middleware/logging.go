package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/groupshare/backend/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		details := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"user_agent":  c.Get("User-Agent"),
			"ip":          c.IP(),
			"request_id":  requestID,
		}

		deviceID := logger.GetDeviceIDFromContext(c)
		if deviceID != nil {
			if statusCode >= 400 {
				logger.ErrorWithDevice(*deviceID, "http_request", err, details)
			} else {
				logger.InfoWithDevice(*deviceID, "http_request", details)
			}
		} else {
			if statusCode >= 400 {
				logger.Error("http_request", err, details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}

func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if statusCode != fiber.StatusNotFound && statusCode != fiber.StatusConflict {
			return err
		}

		details := map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"ip":     c.IP(),
		}

		deviceID := logger.GetDeviceIDFromContext(c)
		if statusCode == fiber.StatusNotFound {
			details["reason"] = "not_found"
		} else {
			details["reason"] = "conflict"
		}

		if deviceID != nil {
			logger.WarnWithDevice(*deviceID, "request_rejected", details)
		} else {
			logger.Warn("request_rejected", details)
		}

		return err
	}
}
