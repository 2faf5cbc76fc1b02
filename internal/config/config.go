package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	UploadDir string
	KeyPath   string
	LogFile   string

	// PayFast gateway settings. Sandbox defaults are the published
	// PayFast test merchant; live credentials must come from the env.
	MerchantID  string
	MerchantKey string
	ProcessURL  string
	ValidateURL string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string

	// Admissions fee gating the application form, in rand.
	AdmissionFee       float64
	AdmissionNotifyURL string

	AdminUsername     string
	AdminPasswordHash string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:      getEnv("PORT", "5000"),
		DBDSN:     getEnv("DB_DSN", "unobhala.db"),
		UploadDir: getEnv("UPLOAD_DIR", "./web/static/uploads"),
		KeyPath:   getEnv("KEY_PATH", "./secret.key"),
		LogFile:   getEnv("LOG_FILE", "./unobhala.log"),

		MerchantID:  getEnv("PAYFAST_MERCHANT_ID", "10000100"),
		MerchantKey: getEnv("PAYFAST_MERCHANT_KEY", "46f0cd694581a"),
		ProcessURL:  getEnv("PAYFAST_PROCESS_URL", "https://sandbox.payfast.co.za/eng/process"),
		ValidateURL: getEnv("PAYFAST_VALIDATE_URL", "https://sandbox.payfast.co.za/eng/query/validate"),
		ReturnURL:   getEnv("RETURN_URL", "http://127.0.0.1:5000/payment/success"),
		CancelURL:   getEnv("CANCEL_URL", "http://127.0.0.1:5000/payment/cancel"),
		NotifyURL:   getEnv("NOTIFY_URL", "http://127.0.0.1:5000/payment/itn"),

		AdmissionFee:       150.00,
		AdmissionNotifyURL: getEnv("ADMISSION_NOTIFY_URL", "http://127.0.0.1:5000/admission-payment-itn"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s merchant=%s", cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.MerchantID)
	return cfg
}
