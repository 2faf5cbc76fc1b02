package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "unobhala/internal/log"
)

// RequireAdmin gates the back-office on the session login flag.
func RequireAdmin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/admin/login")
		}
		if !boolFlag(sess, sessAdminLoggedIn) {
			applog.Security(c, "access.denied.admin", nil)
			return c.Redirect("/admin/login")
		}
		return c.Next()
	}
}
