package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	SMTPAddr    string
	SMTPFrom    string
	FeedTimeout time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "orderdesk.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")

	smtpAddr := os.Getenv("SMTP_ADDR")
	smtpFrom := os.Getenv("SMTP_FROM")
	if smtpFrom == "" {
		smtpFrom = "noreply@orderdesk.local"
	}

	feedTimeout := 15 * time.Second
	if v := os.Getenv("FEED_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			feedTimeout = time.Duration(n) * time.Second
		}
	}

	cfg := Config{
		Port:        port,
		DBDSN:       dsn,
		LogFile:     logFile,
		SMTPAddr:    smtpAddr,
		SMTPFrom:    smtpFrom,
		FeedTimeout: feedTimeout,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s SMTP_ADDR=%s FEED_TIMEOUT=%s", cfg.Port, cfg.DBDSN, cfg.SMTPAddr, cfg.FeedTimeout)
	return cfg
}
