package middleware

import (
	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
)

// ClientIDKey is the locals key holding the client id, on both the fiber
// context and the upgraded websocket connection.
const ClientIDKey = "clientID"

// EnsureClientID requires every request to identify its client, through the
// X-Client-ID header or the clientId query parameter.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDKey) != nil {
			return c.Next()
		}

		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}

		if clientID == "" {
			log.WithField("path", c.Path()).Debug("request without client id")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Client ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(ClientIDKey, clientID)
		return c.Next()
	}
}

// ClientID returns the id stored by EnsureClientID, or "" outside it.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(ClientIDKey).(string)
	return id
}
