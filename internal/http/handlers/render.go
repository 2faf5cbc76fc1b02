package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// render saves the session and renders a template with the flash notice and
// cart count every page shows.
func render(c *fiber.Ctx, sess *session.Session, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	kind, msg := popFlash(sess)
	if msg != "" {
		data["FlashKind"] = kind
		data["FlashMsg"] = msg
	}
	data["CartCount"] = cartFromSession(sess).Count()
	if tok, ok := c.Locals("CSRFToken").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	}
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}
