package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"unobhala/internal/domain"
	applog "unobhala/internal/log"
	"unobhala/internal/money"
	"unobhala/internal/repos"
	"unobhala/internal/secrets"
	"unobhala/internal/services"
	"unobhala/internal/uploads"
)

type AdminHandler struct {
	Store      *session.Store
	Auth       *services.AuthService
	Orders     *repos.OrderRepo
	Admissions *repos.AdmissionRepo
	Products   *repos.ProductRepo
	Posts      *services.PostService
	Cipher     *secrets.Cipher
	Uploads    *uploads.Saver
}

func (h *AdminHandler) LoginForm(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	if boolFlag(sess, sessAdminLoggedIn) {
		return c.Redirect("/admin/dashboard")
	}
	return render(c, sess, "admin_login", fiber.Map{"Error": ""})
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if err := h.Auth.Login(username, password); err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"username": username})
		return render(c, sess, "admin_login", fiber.Map{"Error": "Invalid username or password."})
	}
	sess.Set(sessAdminLoggedIn, true)
	applog.Audit(c, "admin.login", nil)
	return flashRedirect(c, sess, "success", "Logged in successfully!", "/admin/dashboard")
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	sess.Delete(sessAdminLoggedIn)
	applog.Audit(c, "admin.logout", nil)
	return flashRedirect(c, sess, "info", "Logged out successfully.", "/admin/login")
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	totalOrders, _ := h.Orders.Count()
	revenue, _ := h.Orders.PaidRevenue()
	newAdmissions, _ := h.Admissions.CountNew()
	totalProducts, _ := h.Products.Count()
	posts, err := h.Posts.List()
	if err != nil {
		applog.Error(c, "admin.dashboard.posts", err, nil)
	}
	return render(c, sess, "admin_dashboard", fiber.Map{
		"TotalOrders":   totalOrders,
		"TotalRevenue":  money.Round2(revenue),
		"NewAdmissions": newAdmissions,
		"TotalProducts": totalProducts,
		"Posts":         posts,
	})
}

// OrderView is an order with decrypted customer fields and joined items.
type OrderView struct {
	Order domain.Order
	Name  string
	Phone string
	Items []repos.ItemView
}

// BookOrders lists orders newest first with optional name/phone substring
// filters. Customer fields are encrypted at rest, so filtering happens after
// decryption rather than in SQL.
func (h *AdminHandler) BookOrders(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	nameFilter := strings.ToLower(strings.TrimSpace(c.FormValue("name")))
	phoneFilter := strings.TrimSpace(c.FormValue("phone"))

	orders, err := h.Orders.ListLatest()
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return render(c, sess, "admin_bookorders", fiber.Map{"Orders": []OrderView{}})
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		name, _ := h.Cipher.Decrypt(o.CustomerName)
		phone, _ := h.Cipher.Decrypt(o.CustomerPhone)
		if nameFilter != "" && !strings.Contains(strings.ToLower(name), nameFilter) {
			continue
		}
		if phoneFilter != "" && !strings.Contains(phone, phoneFilter) {
			continue
		}
		items, _ := h.Orders.Items(o.ID)
		views = append(views, OrderView{Order: o, Name: name, Phone: phone, Items: items})
	}
	return render(c, sess, "admin_bookorders", fiber.Map{
		"Orders":      views,
		"NameFilter":  nameFilter,
		"PhoneFilter": phoneFilter,
	})
}

func (h *AdminHandler) AdmissionsPage(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	admissions, err := h.Admissions.ListLatest()
	if err != nil {
		applog.Error(c, "admin.admissions.list", err, nil)
		admissions = nil
	}
	return render(c, sess, "admin_admissions", fiber.Map{"Admissions": admissions})
}

func (h *AdminHandler) MarkAdmissionPaid(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c, "Admission not found")
	}
	if err := h.Admissions.MarkPaid(int64(id), "150.00"); err != nil {
		applog.Error(c, "admin.admissions.markpaid", err, map[string]any{"admission_id": id})
		return flashRedirect(c, sess, "danger", "Could not update admission.", "/admin/admissions")
	}
	applog.Audit(c, "admin.admissions.markpaid", map[string]any{"admission_id": id})
	return flashRedirect(c, sess, "success", "Admission marked as paid.", "/admin/admissions")
}

// CreatePost saves a news post with any uploaded media files.
func (h *AdminHandler) CreatePost(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	title := c.FormValue("title")
	description := c.FormValue("description")

	var paths, types []string
	if mf, err := c.MultipartForm(); err == nil {
		for _, fh := range mf.File["media"] {
			path, err := h.Uploads.Save(c, fh)
			if err != nil {
				applog.Security(c, "admin.post.upload.reject", map[string]any{"file": fh.Filename})
				continue
			}
			paths = append(paths, path)
			types = append(types, uploads.MediaType(fh.Filename))
		}
	}

	id, err := h.Posts.Create(title, description, paths, types)
	if err != nil {
		applog.Error(c, "admin.post.create", err, nil)
		return flashRedirect(c, sess, "danger", "Could not create post.", "/admin/dashboard")
	}
	applog.Audit(c, "admin.post.create", map[string]any{"post_id": id})
	return flashRedirect(c, sess, "success", "Post published.", "/admin/dashboard")
}

// DeletePost removes a post, its media rows and the files on disk.
func (h *AdminHandler) DeletePost(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c, "Post not found")
	}
	if err := h.Posts.Delete(int64(id)); err != nil {
		applog.Error(c, "admin.post.delete", err, map[string]any{"post_id": id})
		return flashRedirect(c, sess, "danger", "Could not delete post.", "/admin/dashboard")
	}
	applog.Audit(c, "admin.post.delete", map[string]any{"post_id": id})
	return flashRedirect(c, sess, "info", "Post deleted successfully.", "/admin/dashboard")
}
