package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const deviceIDKey = "deviceID"

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Device-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// DeviceIdentity pulls the caller's opaque device id out of the request and
// stashes it in locals. Devices are self-identified; there is no end-user
// authentication in this service. The header wins over the query parameter.
func DeviceIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceID := strings.TrimSpace(c.Get("X-Device-ID"))
		if deviceID == "" {
			deviceID = strings.TrimSpace(c.Query("device_id"))
		}
		if deviceID != "" {
			c.Locals(deviceIDKey, deviceID)
		}
		return c.Next()
	}
}

// GetDeviceID returns the device id extracted by DeviceIdentity, or ""
// when the request carried none.
func GetDeviceID(c *fiber.Ctx) string {
	if value := c.Locals(deviceIDKey); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
