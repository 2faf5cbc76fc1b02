package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"unobhala/internal/config"
	"unobhala/internal/http/handlers"
	applog "unobhala/internal/log"
	"unobhala/internal/metrics"
	"unobhala/internal/payfast"
	"unobhala/internal/repos"
	"unobhala/internal/secrets"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	cipher, err := secrets.LoadOrCreate(cfg.KeyPath)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 10 * 1024 * 1024, // upload cap
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	// The processor's server-to-server callbacks carry no CSRF token.
	itnPaths := map[string]bool{
		"/payment/itn":           true,
		"/admission-payment-itn": true,
	}
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return itnPaths[c.Path()]
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{
				"Message": "Security check failed. Please refresh and try again.",
			})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	deps := handlers.NewDeps(db, cfg, cipher, payfast.NewClient(cfg.ValidateURL))

	// ---------- Public pages ----------
	app.Get("/", deps.Shop.Home)
	app.Get("/history", deps.Shop.History)
	app.Get("/contact", deps.Shop.Contact)
	app.Get("/news", deps.Shop.News)
	app.Get("/shop", deps.Shop.Shop)
	app.Get("/product/:id", deps.Shop.ProductDetail)

	// ---------- Cart ----------
	app.Get("/cart", deps.Cart.View)
	app.Get("/add-to-cart/:id", deps.Cart.Add)
	app.Post("/add-to-cart/:id", deps.Cart.Add)
	app.Post("/remove-from-cart/:id", deps.Cart.Remove)
	app.Post("/clear-cart", deps.Cart.Clear)

	// ---------- Checkout & payment ----------
	app.Get("/checkout", deps.Order.CheckoutForm)
	app.Post("/checkout", deps.Order.PlaceOrder)
	app.Get("/payfast/checkout/:id", deps.Order.GatewayRedirect)
	app.Get("/payment/success", deps.Order.PaymentSuccess)
	app.Get("/payment/cancel", deps.Order.PaymentCancel)
	app.Post("/payment/itn", deps.Order.Notification)

	// ---------- Admissions ----------
	app.Get("/admissions", deps.Admission.Info)
	app.Get("/admission-payment", deps.Admission.Form)
	app.Post("/submit-admission", deps.Admission.Submit)
	app.Get("/admission-sent", deps.Admission.Sent)
	app.Get("/admission/success", deps.Admission.FeeSuccess)
	app.Post("/admission-payment-itn", deps.Admission.FeeNotification)

	// ---------- Admin ----------
	app.Get("/admin/login", deps.Admin.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{
				"Error": "Too many attempts. Please try again later.",
			})
		},
	}), deps.Admin.Login)
	app.Get("/admin/logout", deps.Admin.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Store))
	admin.Get("/dashboard", deps.Admin.Dashboard)
	admin.Get("/book-orders", deps.Admin.BookOrders)
	admin.Post("/book-orders", deps.Admin.BookOrders)
	admin.Get("/admissions", deps.Admin.AdmissionsPage)
	admin.Post("/mark_paid/:id", deps.Admin.MarkAdmissionPaid)
	admin.Post("/posts", deps.Admin.CreatePost)
	admin.Post("/delete-post/:id", deps.Admin.DeletePost)

	// ---------- Ops ----------
	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
