package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	AppPassword    string // empty disables the login gate
	PaymentNote    string // appended to generated buyer messages
	CatalogTimeout time.Duration
}

func Load() Config {
	// Best-effort local dev overrides; real env always wins.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "decantly.db" // sqlite file next to the binary
	}
	logFile := os.Getenv("LOG_FILE")

	timeout := 10 * time.Second
	if v := os.Getenv("CATALOG_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		} else {
			log.Printf("[config] invalid CATALOG_TIMEOUT_SECONDS=%q, keeping %s", v, timeout)
		}
	}

	cfg := Config{
		Port:           port,
		DBDSN:          dsn,
		LogFile:        logFile,
		AppPassword:    os.Getenv("APP_PASSWORD"),
		PaymentNote:    os.Getenv("PAYMENT_NOTE"),
		CatalogTimeout: timeout,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s auth=%v", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AppPassword != "")
	return cfg
}
