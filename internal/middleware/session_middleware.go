package middleware

import (
	"github.com/gofiber/fiber/v2"

	"listino/internal/session"
)

// SessionCookie is the cookie carrying the session identifier.
const SessionCookie = "listino_session"

const sessionLocal = "session"

// WithSession resolves the caller's session from the cookie, creating a
// fresh one on first contact, and stores it in the request locals for the
// handlers downstream.
func WithSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := manager.Get(c.Cookies(SessionCookie))
		if !ok {
			sess = manager.Create()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID(),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

// SessionFromCtx pulls the session stored by WithSession.
func SessionFromCtx(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}
