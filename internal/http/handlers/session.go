package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"unobhala/internal/services"
)

// Session keys. The cart is stored as JSON bytes and validated on every read;
// the two flags gate the admission form and the admin routes.
const (
	sessCart          = "cart"
	sessAdmissionPaid = "admission_paid"
	sessAdminLoggedIn = "admin_logged_in"
	sessFlashKind     = "flash_kind"
	sessFlashMsg      = "flash_msg"
)

func NewSessionStore() *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:sid",
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

func cartFromSession(sess *session.Session) services.Cart {
	raw, _ := sess.Get(sessCart).([]byte)
	return services.DecodeCart(raw)
}

func putCart(sess *session.Session, cart services.Cart) {
	sess.Set(sessCart, cart.Encode())
}

func boolFlag(sess *session.Session, key string) bool {
	v, _ := sess.Get(key).(bool)
	return v
}

// flash queues a one-shot notice for the next rendered page.
func flash(sess *session.Session, kind, msg string) {
	sess.Set(sessFlashKind, kind)
	sess.Set(sessFlashMsg, msg)
}

func popFlash(sess *session.Session) (kind, msg string) {
	kind, _ = sess.Get(sessFlashKind).(string)
	msg, _ = sess.Get(sessFlashMsg).(string)
	if msg != "" {
		sess.Delete(sessFlashKind)
		sess.Delete(sessFlashMsg)
	}
	return kind, msg
}

// flashRedirect saves the session before redirecting so the notice survives.
func flashRedirect(c *fiber.Ctx, sess *session.Session, kind, msg, location string) error {
	flash(sess, kind, msg)
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(location)
}

// formValues copies every POSTed field, preserving the payload for gateway
// re-validation.
func formValues(c *fiber.Ctx) url.Values {
	vals := url.Values{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		vals.Add(string(k), string(v))
	})
	return vals
}
