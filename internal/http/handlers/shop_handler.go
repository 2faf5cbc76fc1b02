package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "unobhala/internal/log"
	"unobhala/internal/repos"
	"unobhala/internal/services"
	"unobhala/internal/validate"
)

type ShopHandler struct {
	Store    *session.Store
	Products *repos.ProductRepo
	Posts    *services.PostService
}

func (h *ShopHandler) Home(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "home", nil)
}

func (h *ShopHandler) History(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "history", nil)
}

func (h *ShopHandler) Contact(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "contact", nil)
}

func (h *ShopHandler) News(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	posts, err := h.Posts.List()
	if err != nil {
		applog.Error(c, "news.load", err, nil)
		return render(c, sess, "news", fiber.Map{"Posts": []repos.PostView{}})
	}
	return render(c, sess, "news", fiber.Map{"Posts": posts})
}

// Shop lists the catalog, optionally filtered by a free-text query.
func (h *ShopHandler) Shop(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	q := ""
	if raw := strings.TrimSpace(c.Query("q")); raw != "" {
		valid, ok := validate.Q(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return render(c, sess, "shop", fiber.Map{"Products": []any{}, "Query": ""})
		}
		q = valid
	}
	products, err := h.Products.Search(q)
	if err != nil {
		applog.Error(c, "shop.search", err, nil)
		return render(c, sess, "shop", fiber.Map{"Products": []any{}, "Query": q})
	}
	return render(c, sess, "shop", fiber.Map{"Products": products, "Query": q})
}

func (h *ShopHandler) ProductDetail(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c, "Product not found")
	}
	p, err := h.Products.Get(int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "Product not found")
	}
	if err != nil {
		return err
	}
	return render(c, sess, "product_detail", fiber.Map{"Product": p})
}
