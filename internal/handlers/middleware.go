package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"rezoom/feedback-api/internal/services"
)

// SessionUserKey holds the logged-in email, both in the session and in
// c.Locals for authenticated routes.
const SessionUserKey = "user"

// RequireAuth rejects requests without a logged-in session.
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load session",
			})
		}

		email, ok := sess.Get(SessionUserKey).(string)
		if !ok || email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "login required",
			})
		}

		c.Locals(SessionUserKey, email)
		return c.Next()
	}
}

// RateLimit throttles per logged-in user, or per client IP before login.
// A nil limiter disables it.
func RateLimit(limiter *services.LimiterManager) fiber.Handler {
	if limiter == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if email := currentUser(c); email != "" {
			key = "user:" + email
		}

		if !limiter.Allow(key) {
			log.Printf("⚠️  Rate limit exceeded for %s on %s\n", key, c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		}

		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) string {
	email, _ := c.Locals(SessionUserKey).(string)
	return email
}
