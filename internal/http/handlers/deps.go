package handlers

import (
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"

	"unobhala/internal/config"
	"unobhala/internal/payfast"
	"unobhala/internal/repos"
	"unobhala/internal/secrets"
	"unobhala/internal/services"
	"unobhala/internal/uploads"
)

type Deps struct {
	Store     *session.Store
	Shop      *ShopHandler
	Cart      *CartHandler
	Order     *OrderHandler
	Admission *AdmissionHandler
	Admin     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, cipher *secrets.Cipher, validator payfast.Validator) *Deps {
	store := NewSessionStore()
	saver := &uploads.Saver{Dir: cfg.UploadDir}

	productRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	admissionRepo := repos.NewAdmissionRepo(db)
	postRepo := repos.NewPostRepo(db)

	cartSvc := services.NewCartService(productRepo)
	checkoutSvc := services.NewCheckoutService(productRepo, orderRepo, cipher, validator, services.Gateway{
		MerchantID:  cfg.MerchantID,
		MerchantKey: cfg.MerchantKey,
		ProcessURL:  cfg.ProcessURL,
		ReturnURL:   cfg.ReturnURL,
		CancelURL:   cfg.CancelURL,
		NotifyURL:   cfg.NotifyURL,
	})
	admissionSvc := services.NewAdmissionService(admissionRepo, validator, cfg.MerchantID, cfg.AdmissionFee)
	postSvc := services.NewPostService(postRepo, cfg.UploadDir)
	authSvc := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash)

	return &Deps{
		Store:     store,
		Shop:      &ShopHandler{Store: store, Products: productRepo, Posts: postSvc},
		Cart:      &CartHandler{Store: store, Cart: cartSvc},
		Order:     &OrderHandler{Store: store, Checkout: checkoutSvc},
		Admission: &AdmissionHandler{Store: store, Admission: admissionSvc, Uploads: saver},
		Admin: &AdminHandler{
			Store:      store,
			Auth:       authSvc,
			Orders:     orderRepo,
			Admissions: admissionRepo,
			Products:   productRepo,
			Posts:      postSvc,
			Cipher:     cipher,
			Uploads:    saver,
		},
	}
}
