package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "unobhala/internal/log"
	"unobhala/internal/metrics"
	"unobhala/internal/services"
	"unobhala/internal/validate"
)

type OrderHandler struct {
	Store    *session.Store
	Checkout *services.CheckoutService
}

// CheckoutForm shows the recomputed totals for the current cart.
func (h *OrderHandler) CheckoutForm(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	cart := cartFromSession(sess)
	if len(cart) == 0 {
		return flashRedirect(c, sess, "warning", "Your cart is empty", "/shop")
	}
	_, subtotal, err := h.Checkout.ValidateCart(cart)
	if errors.Is(err, services.ErrEmptyCart) {
		return flashRedirect(c, sess, "danger", "Invalid cart data", "/cart")
	}
	if err != nil {
		applog.Error(c, "checkout.validate", err, nil)
		return flashRedirect(c, sess, "danger", "Something went wrong. Try again.", "/cart")
	}
	return render(c, sess, "checkout", fiber.Map{
		"Subtotal":    subtotal,
		"DeliveryFee": 0.0,
		"Total":       subtotal,
	})
}

// PlaceOrder validates the cart against the catalog, creates the pending
// order and hands the browser to the gateway redirect page.
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	cart := cartFromSession(sess)
	if len(cart) == 0 {
		return flashRedirect(c, sess, "warning", "Your cart is empty", "/shop")
	}

	items, subtotal, err := h.Checkout.ValidateCart(cart)
	if errors.Is(err, services.ErrEmptyCart) {
		return flashRedirect(c, sess, "danger", "Invalid cart data", "/cart")
	}
	if err != nil {
		applog.Error(c, "checkout.validate", err, nil)
		return flashRedirect(c, sess, "danger", "Something went wrong. Try again.", "/cart")
	}

	name, okName := validate.Name(c.FormValue("name"))
	phone, okPhone := validate.Phone(c.FormValue("phone"))
	if !okName || !okPhone {
		applog.Security(c, "validation.fail", map[string]any{"form": "checkout"})
		return flashRedirect(c, sess, "danger", "Please fill all required fields", "/checkout")
	}

	orderID, err := h.Checkout.CreateOrder(name, phone, items, subtotal)
	if err != nil {
		metrics.RecordCheckout("create_order", false)
		applog.Error(c, "order.create", err, nil)
		return flashRedirect(c, sess, "danger", "Checkout failed. Try again.", "/cart")
	}
	metrics.RecordCheckout("create_order", true)
	applog.Audit(c, "order.create", map[string]any{"order_id": orderID, "subtotal": subtotal})

	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/payfast/checkout/" + strconv.FormatInt(orderID, 10))
}

// GatewayRedirect renders the auto-submitting form for a pending order.
func (h *OrderHandler) GatewayRedirect(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c, "Order not found")
	}
	redirect, err := h.Checkout.PaymentRequest(int64(id))
	if errors.Is(err, services.ErrOrderNotFound) {
		return notFound(c, "Order not found")
	}
	if err != nil {
		return err
	}
	return render(c, sess, "payfast_redirect", fiber.Map{
		"ProcessURL": redirect.ProcessURL,
		"Fields":     redirect.Fields,
	})
}

// PaymentSuccess only renders when the order really is paid in the database;
// the return-URL query parameter is never trusted on its own.
func (h *OrderHandler) PaymentSuccess(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	orderID, err := strconv.ParseInt(c.Query("order_id"), 10, 64)
	if err != nil {
		return c.Redirect("/shop")
	}
	if _, err := h.Checkout.PaidOrder(orderID); err != nil {
		return flashRedirect(c, sess, "danger", "Payment not verified.", "/shop")
	}
	sess.Delete(sessCart)
	return render(c, sess, "payment_success", fiber.Map{"OrderID": orderID})
}

func (h *OrderHandler) PaymentCancel(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	return flashRedirect(c, sess, "warning", "Payment was cancelled.", "/cart")
}

// Notification consumes the processor's server-to-server callback for orders.
func (h *OrderHandler) Notification(c *fiber.Ctx) error {
	payload := formValues(c)
	res, err := h.Checkout.HandleNotification(c.Context(), payload)

	switch {
	case err == nil:
		if res.Applied {
			metrics.RecordNotification("order", string(res.Target))
			applog.Audit(c, "itn.applied", map[string]any{"order_id": res.OrderID, "status": string(res.Target)})
		} else if res.Target != "" {
			// Authentic replay or a stale notification for a settled order.
			metrics.RecordNotification("order", "replay")
			applog.Security(c, "itn.conflict", map[string]any{"order_id": res.OrderID, "target": string(res.Target)})
		} else {
			metrics.RecordNotification("order", "intermediate")
		}
		return c.SendString("OK")
	case errors.Is(err, services.ErrInvalidNotification):
		metrics.RecordNotification("order", "invalid")
		applog.Security(c, "itn.invalid", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ITN")
	case errors.Is(err, services.ErrMerchantMismatch):
		metrics.RecordNotification("order", "merchant_mismatch")
		applog.Security(c, "itn.merchant", nil)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid merchant")
	case errors.Is(err, services.ErrMissingReference):
		metrics.RecordNotification("order", "no_reference")
		return c.Status(fiber.StatusBadRequest).SendString("No order id")
	case errors.Is(err, services.ErrOrderNotFound):
		metrics.RecordNotification("order", "not_found")
		return c.Status(fiber.StatusNotFound).SendString("Order not found")
	case errors.Is(err, services.ErrAmountMismatch):
		metrics.RecordNotification("order", "amount_mismatch")
		applog.Security(c, "itn.amount", map[string]any{"order_id": res.OrderID})
		return c.Status(fiber.StatusBadRequest).SendString("Amount mismatch")
	default:
		metrics.RecordNotification("order", "error")
		applog.Error(c, "itn.handle", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("Validation failed")
	}
}
