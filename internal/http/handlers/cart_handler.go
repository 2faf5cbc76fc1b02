package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "unobhala/internal/log"
	"unobhala/internal/services"
)

type CartHandler struct {
	Store *session.Store
	Cart  *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	cart := cartFromSession(sess)
	return render(c, sess, "cart", fiber.Map{
		"Items":    cart,
		"Subtotal": cart.Total(),
		"Total":    cart.Total(),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return flashRedirect(c, sess, "danger", "Product not found", "/shop")
	}
	cart, err := h.Cart.Add(cartFromSession(sess), int64(id))
	if errors.Is(err, services.ErrProductNotFound) {
		return flashRedirect(c, sess, "danger", "Product not found", "/shop")
	}
	if err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product_id": id})
		return flashRedirect(c, sess, "danger", "Something went wrong. Try again.", "/shop")
	}
	putCart(sess, cart)
	return flashRedirect(c, sess, "success", "Product added to cart", "/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/cart")
	}
	putCart(sess, services.RemoveOne(cartFromSession(sess), int64(id)))
	return flashRedirect(c, sess, "info", "Cart updated", "/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	sess.Delete(sessCart)
	return flashRedirect(c, sess, "warning", "Cart cleared", "/cart")
}
