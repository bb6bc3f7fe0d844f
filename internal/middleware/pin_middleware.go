package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// PinRequired gates the catalog routes behind the shared access PIN. Once a
// session has presented the PIN it stays authorized for its whole lifetime.
// For parity with the original surface the PIN is also accepted as a plain
// ?pin= query parameter on any gated request; that puts the secret in URLs
// and server logs and is a known weakness of the product, kept as is.
func PinRequired(pin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess != nil && sess.IsAuthorized() {
			return c.Next()
		}

		if candidate := c.Query("pin"); candidate != "" && PinMatches(pin, candidate) {
			if sess != nil {
				sess.Authorize()
			}
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "A valid access PIN is required",
		})
	}
}

// PinMatches compares the shared secret in constant time. An unconfigured
// PIN denies everything.
func PinMatches(pin, candidate string) bool {
	if pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(candidate)) == 1
}
