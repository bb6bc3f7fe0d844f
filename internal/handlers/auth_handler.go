package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"listino/internal/middleware"
)

// AuthHandler handles the PIN gate.
type AuthHandler struct {
	pin string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(pin string) *AuthHandler {
	return &AuthHandler{
		pin: pin,
	}
}

// RegisterRoutes registers the auth routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/auth/pin", h.HandleSubmitPin)
}

// HandleSubmitPin checks the submitted PIN against the shared secret and
// marks the session authorized on a match. There is no rate limiting and no
// per-user identity; the grant is binary and lasts for the session.
func (h *AuthHandler) HandleSubmitPin(c *fiber.Ctx) error {
	var req struct {
		Pin string `json:"pin"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing PIN request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if !middleware.PinMatches(h.pin, req.Pin) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid PIN",
		})
	}

	sess := middleware.SessionFromCtx(c)
	sess.Authorize()
	return c.JSON(fiber.Map{
		"message": "Access granted",
	})
}
